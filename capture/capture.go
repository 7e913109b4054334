// Package capture records prepared frames to disk for offline inspection
// and regression tests. A capture file is a msgpack-encoded Frame inside a
// zstd stream.
package capture

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gogpu/vg/render"
)

// Version is written into every frame; Read rejects other versions.
const Version = 1

// ErrVersion is returned when reading a capture of an unknown version.
var ErrVersion = errors.New("capture: unsupported version")

// MeshRecord is one draw: a flattened mesh, its texture and its clip.
type MeshRecord struct {
	Texture string     `msgpack:"tex"`
	Clip    [4]float32 `msgpack:"clip"`
	// Vertices holds 8 floats per vertex: x, y, u, v, r, g, b, a.
	Vertices []float32 `msgpack:"v"`
	Indices  []uint32  `msgpack:"i"`
}

// VertexCount returns the number of vertices in the record.
func (m MeshRecord) VertexCount() int { return len(m.Vertices) / 8 }

// Frame is everything drawn in one frame, in draw order.
type Frame struct {
	Version int          `msgpack:"version"`
	Width   uint32       `msgpack:"w"`
	Height  uint32       `msgpack:"h"`
	Meshes  []MeshRecord `msgpack:"meshes"`
}

// FromRenderables builds a frame from the renderables of a width x height
// target.
func FromRenderables(width, height uint32, items []render.Renderable) Frame {
	f := Frame{Version: Version, Width: width, Height: height, Meshes: make([]MeshRecord, 0, len(items))}
	for _, it := range items {
		m := &it.Mesh
		rec := MeshRecord{
			Texture:  m.Texture.String(),
			Clip:     [4]float32{it.Clip.Origin.X, it.Clip.Origin.Y, it.Clip.Size.Width, it.Clip.Size.Height},
			Vertices: make([]float32, 0, 8*len(m.Vertices)),
			Indices:  append([]uint32(nil), m.Indices...),
		}
		for _, v := range m.Vertices {
			rec.Vertices = append(rec.Vertices,
				v.Pos.X, v.Pos.Y, v.UV.X, v.UV.Y,
				v.Color.R, v.Color.G, v.Color.B, v.Color.A)
		}
		f.Meshes = append(f.Meshes, rec)
	}
	return f
}

// Write encodes frame to w.
func Write(w io.Writer, frame Frame) error {
	if frame.Version == 0 {
		frame.Version = Version
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(frame); err != nil {
		zw.Close()
		return fmt.Errorf("capture: encode: %w", err)
	}
	return zw.Close()
}

// Read decodes a frame written by Write.
func Read(r io.Reader) (Frame, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return Frame{}, err
	}
	defer zr.Close()

	var f Frame
	if err := msgpack.NewDecoder(zr).Decode(&f); err != nil {
		return Frame{}, fmt.Errorf("capture: decode: %w", err)
	}
	if f.Version != Version {
		return Frame{}, fmt.Errorf("%w: %d", ErrVersion, f.Version)
	}
	return f, nil
}

// WriteFile writes frame to the named file, replacing it.
func WriteFile(name string, frame Frame) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Write(f, frame); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a frame from the named file.
func ReadFile(name string) (Frame, error) {
	f, err := os.Open(name)
	if err != nil {
		return Frame{}, err
	}
	defer f.Close()
	return Read(f)
}
