package text

import (
	"fmt"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/paint"
	"github.com/gogpu/vg/scene"
)

// GlyphCache stores glyph masks. *atlas.Manager implements it.
type GlyphCache interface {
	GetOrInsert(key atlas.Key, rasterize func() (atlas.Bitmap, error)) (atlas.Tile, error)
}

// GlyphKey returns the atlas key of glyph gid of face at size.
func GlyphKey(face *Face, gid uint16, size float32) atlas.Key {
	return atlas.GlyphKey(atlas.GlyphID{Font: face.ID(), Glyph: uint32(gid), Size: size, Scale: 1}, false)
}

// Layout shapes s on one line with its baseline starting at origin,
// stores every glyph mask in cache and returns the glyph run to draw.
// Glyphs without pixels, such as spaces, advance the pen but are not part
// of the run.
func Layout(cache GlyphCache, face *Face, s string, size float32, origin geom.Point, color paint.Color) (scene.GlyphRun, error) {
	if size <= 0 {
		return scene.GlyphRun{}, ErrInvalidSize
	}
	shaped := face.Shape(s, size)
	run := scene.GlyphRun{Glyphs: make([]scene.Glyph, 0, len(shaped)), Color: color}

	for _, g := range shaped {
		box, err := face.GlyphBox(g.GID, size)
		if err != nil {
			return scene.GlyphRun{}, err
		}
		if box.IsEmpty() {
			continue
		}
		key := GlyphKey(face, g.GID, size)
		_, err = cache.GetOrInsert(key, func() (atlas.Bitmap, error) {
			bm, _, err := face.RasterizeGlyph(g.GID, size)
			return bm, err
		})
		if err != nil {
			return scene.GlyphRun{}, fmt.Errorf("text: cache glyph %d: %w", g.GID, err)
		}
		pen := origin.Add(geom.Pt(g.X, g.Y))
		run.Glyphs = append(run.Glyphs, scene.Glyph{Key: key, Rect: box.Rect(pen)})
	}
	return run, nil
}

// Measure returns the advance width of s at size.
func Measure(face *Face, s string, size float32) float32 {
	var w float32
	for _, g := range face.Shape(s, size) {
		w += g.XAdvance
	}
	return w
}
