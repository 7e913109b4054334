// Package vg is a retained-mode 2D vector graphics pipeline on top of
// gogpu/wgpu.
//
// # Overview
//
// Applications describe a frame as drawing instructions (quads, circles,
// filled or stroked paths, images and glyph runs). A Canvas batches them by
// physical texture into as few meshes as possible, tessellating all
// geometry on the CPU, and renders each mesh with one scissored indexed
// draw call.
//
// # Quick Start
//
//	import "github.com/gogpu/vg"
//
//	cv, err := vg.NewCanvas(device, vg.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer cv.Close()
//
//	cv.BeginFrame()
//	cv.FillRect(geom.NewRect(10, 10, 200, 100), paint.RGB(1, 0, 0))
//	cv.PaintWithClip(geom.NewRect(0, 0, 100, 100), func(cv *vg.Canvas) {
//	    cv.DrawCircle(geom.Pt(50, 50), 80, paint.Filled(paint.Black))
//	})
//	cv.Paint()
//	err = cv.Finish(pass)
//
// # Architecture
//
// The library is organized into:
//   - atlas: packs glyphs and images into a few large textures
//   - path, paint: path building, flattening and tessellation into meshes
//   - scene: instruction lists and batching by texture
//   - render: GPU buffers, bind groups and draw submission
//   - gpu: the device surface, backed by gogpu/wgpu's HAL
//   - text, asset: glyph and image producers feeding the atlas
//
// # Coordinate System
//
// Logical pixels with the origin at the top-left, X right and Y down.
package vg
