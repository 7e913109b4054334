package capture

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/paint"
	"github.com/gogpu/vg/render"
)

func testItems() []render.Renderable {
	var m paint.Mesh
	m.AddVertex(geom.Pt(0, 0), paint.RGB(1, 0, 0), geom.Pt(0.5, 0.5))
	m.AddVertex(geom.Pt(10, 0), paint.RGB(1, 0, 0), geom.Pt(0.5, 0.5))
	m.AddVertex(geom.Pt(10, 10), paint.RGB(1, 0, 0), geom.Pt(0.5, 0.5))
	m.AddTriangle(0, 1, 2)
	m.Texture = paint.AtlasRenderTexture(atlas.TextureID{Kind: atlas.KindColor})
	return []render.Renderable{{Clip: geom.NewRect(0, 5, 90, 50.5), Mesh: m}}
}

func TestRoundTrip(t *testing.T) {
	frame := FromRenderables(800, 600, testItems())
	var buf bytes.Buffer
	if err := Write(&buf, frame); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Width != 800 || got.Height != 600 || len(got.Meshes) != 1 {
		t.Fatalf("frame = %dx%d with %d meshes", got.Width, got.Height, len(got.Meshes))
	}
	m := got.Meshes[0]
	if m.VertexCount() != 3 || len(m.Indices) != 3 {
		t.Errorf("mesh has %d vertices, %d indices", m.VertexCount(), len(m.Indices))
	}
	if m.Clip != [4]float32{0, 5, 90, 50.5} {
		t.Errorf("clip = %v", m.Clip)
	}
	if m.Vertices[8] != 10 || m.Vertices[12] != 1 {
		t.Errorf("second vertex = %v", m.Vertices[8:16])
	}
	if m.Texture != frame.Meshes[0].Texture {
		t.Errorf("texture = %q, want %q", m.Texture, frame.Meshes[0].Texture)
	}
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := msgpack.NewEncoder(zw).Encode(Frame{Version: 99}); err != nil {
		t.Fatal(err)
	}
	zw.Close()

	if _, err := Read(&buf); !errors.Is(err, ErrVersion) {
		t.Errorf("err = %v, want ErrVersion", err)
	}
	if _, err := Read(bytes.NewReader([]byte("plain"))); err == nil {
		t.Error("uncompressed input decoded")
	}
}

func TestFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "frame.msgpack.zst")
	if err := WriteFile(name, FromRenderables(64, 32, nil)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if f.Width != 64 || len(f.Meshes) != 0 {
		t.Errorf("frame = %+v", f)
	}
}
