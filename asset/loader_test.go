package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/internal/gputest"
)

func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func newManager(t *testing.T) (*atlas.Manager, *gputest.Device) {
	t.Helper()
	dev := gputest.NewDevice()
	m, err := atlas.NewManager(dev, atlas.Config{DefaultSize: 256, Padding: 1})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(m.Close)
	return m, dev
}

func TestLoadAllConcurrent(t *testing.T) {
	m, dev := newManager(t)
	var sources []Source
	for i := range 16 {
		sources = append(sources, Source{
			ID:   atlas.ImageID(i + 1),
			Data: encodePNG(t, 8, 4+i%3, color.NRGBA{R: uint8(i * 10), G: 0x80, B: 0x20, A: 0xFF}),
		})
	}

	l := NewLoader(m, nil, Options{Concurrency: 4})
	tiles, err := l.LoadAll(context.Background(), sources)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(tiles) != len(sources) {
		t.Fatalf("got %d tiles, want %d", len(tiles), len(sources))
	}

	tile := tiles[6]
	gpuTex, ok := m.GPUTexture(tile.Texture)
	if !ok {
		t.Fatal("tile texture has no GPU texture")
	}
	px := dev.Texture(gpuTex).Pixel(tile.Bounds.X, tile.Bounds.Y)
	if px[0] != 50 || px[1] != 0x80 || px[3] != 0xFF {
		t.Errorf("uploaded pixel = %v, want [50 128 32 255]", px)
	}

	// Loading again hits the cache.
	before := m.Stats().Misses
	if _, err := l.LoadAll(context.Background(), sources); err != nil {
		t.Fatalf("second LoadAll: %v", err)
	}
	if m.Stats().Misses != before {
		t.Error("second load decoded images again")
	}
}

func TestLoadFromFSWithZstd(t *testing.T) {
	m, _ := newManager(t)
	raw := encodePNG(t, 3, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd.NewWriter: %v", err)
	}
	compressed := enc.EncodeAll(raw, nil)
	enc.Close()

	fsys := fstest.MapFS{
		"img/plain.png":      {Data: raw},
		"img/packed.png.zst": {Data: compressed},
	}
	l := NewLoader(m, fsys, Options{})
	tiles, err := l.LoadAll(context.Background(), []Source{
		{ID: 1, Path: "img/plain.png"},
		{ID: 2, Path: "img/packed.png.zst"},
	})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	for id, tile := range tiles {
		if tile.Bounds.Width != 3 || tile.Bounds.Height != 3 {
			t.Errorf("image %d tile = %v, want 3x3", id, tile.Bounds)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	m, _ := newManager(t)
	l := NewLoader(m, fstest.MapFS{}, Options{})

	if _, err := l.Load(Source{ID: 1}); !errors.Is(err, ErrNoData) {
		t.Errorf("empty source: err = %v, want ErrNoData", err)
	}
	if _, err := l.Load(Source{ID: 2, Data: []byte("not an image")}); err == nil {
		t.Error("garbage data decoded")
	}
	if _, err := l.Load(Source{ID: 3, Path: "missing.png"}); err == nil {
		t.Error("missing file loaded")
	}
	if _, ok := m.Get(atlas.ImageKey(2)); ok {
		t.Error("failed image left a tile behind")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.LoadAll(ctx, []Source{{ID: 4, Data: encodePNG(t, 1, 1, color.NRGBA{A: 255})}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled load: err = %v, want context.Canceled", err)
	}
}

func TestToBitmapScales(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	bm := ToBitmap(img, 40)
	if bm.Width != 40 || bm.Height != 20 {
		t.Errorf("scaled to %dx%d, want 40x20", bm.Width, bm.Height)
	}
	if len(bm.Pixels) != 40*20*4 {
		t.Errorf("pixel bytes = %d, want %d", len(bm.Pixels), 40*20*4)
	}

	bm = ToBitmap(image.NewGray(image.Rect(2, 2, 7, 9)), 0)
	if bm.Width != 5 || bm.Height != 7 {
		t.Errorf("unscaled bitmap %dx%d, want 5x7", bm.Width, bm.Height)
	}
}
