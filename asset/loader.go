// Package asset decodes images concurrently and stores them in the atlas.
//
// Decoders for PNG, JPEG, GIF, BMP, TIFF and WebP are registered. Files
// ending in .zst are zstd-decompressed before decoding.
package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"path"
	"runtime"
	"sync"

	"github.com/klauspost/compress/zstd"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/internal/vglog"
)

// ErrNoData is returned for a source with neither data nor a path.
var ErrNoData = errors.New("asset: source has no data")

// ImageCache stores decoded images. *atlas.Manager implements it; its
// GetOrInsert is safe to call from the loader's worker goroutines.
type ImageCache interface {
	GetOrInsert(key atlas.Key, rasterize func() (atlas.Bitmap, error)) (atlas.Tile, error)
}

// Source is one image to load: inline Data, or Path inside the loader's
// file system.
type Source struct {
	ID   atlas.ImageID
	Path string
	Data []byte
}

// Options configures a Loader.
type Options struct {
	// Concurrency bounds the number of images decoded at once. Zero uses
	// GOMAXPROCS.
	Concurrency int

	// MaxSize downscales images whose larger side exceeds it, keeping the
	// aspect ratio. Zero disables scaling.
	MaxSize int
}

// Loader decodes images into an ImageCache.
type Loader struct {
	cache ImageCache
	fsys  fs.FS
	opts  Options
}

// NewLoader returns a loader reading paths from fsys, which may be nil if
// every source carries its data inline.
func NewLoader(cache ImageCache, fsys fs.FS, opts Options) *Loader {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	return &Loader{cache: cache, fsys: fsys, opts: opts}
}

// LoadAll decodes every source and inserts it under its image key. It
// stops at the first error or when ctx is cancelled. Images already in the
// cache are not decoded again.
func (l *Loader) LoadAll(ctx context.Context, sources []Source) (map[atlas.ImageID]atlas.Tile, error) {
	var (
		mu    sync.Mutex
		tiles = make(map[atlas.ImageID]atlas.Tile, len(sources))
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(l.opts.Concurrency)

	for _, src := range sources {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tile, err := l.cache.GetOrInsert(atlas.ImageKey(src.ID), func() (atlas.Bitmap, error) {
				return l.decode(src)
			})
			if err != nil {
				return fmt.Errorf("asset: image %d (%s): %w", src.ID, src.Path, err)
			}
			mu.Lock()
			tiles[src.ID] = tile
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	vglog.Logger().Info("asset: images loaded", "count", len(tiles))
	return tiles, nil
}

// Load decodes a single source.
func (l *Loader) Load(src Source) (atlas.Tile, error) {
	tiles, err := l.LoadAll(context.Background(), []Source{src})
	if err != nil {
		return atlas.Tile{}, err
	}
	return tiles[src.ID], nil
}

func (l *Loader) read(src Source) ([]byte, error) {
	data := src.Data
	if data == nil {
		if src.Path == "" || l.fsys == nil {
			return nil, ErrNoData
		}
		var err error
		if data, err = fs.ReadFile(l.fsys, src.Path); err != nil {
			return nil, err
		}
	}
	if path.Ext(src.Path) != ".zst" {
		return data, nil
	}
	zr, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func (l *Loader) decode(src Source) (atlas.Bitmap, error) {
	data, err := l.read(src)
	if err != nil {
		return atlas.Bitmap{}, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return atlas.Bitmap{}, fmt.Errorf("decode: %w", err)
	}
	vglog.Logger().Debug("asset: decoded", "id", src.ID, "format", format, "bounds", img.Bounds().String())
	return ToBitmap(img, l.opts.MaxSize), nil
}

// ToBitmap converts img to straight-alpha RGBA8, downscaling it when its
// larger side exceeds maxSize (if maxSize > 0).
func ToBitmap(img image.Image, maxSize int) atlas.Bitmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && max(w, h) > maxSize {
		if w >= h {
			w, h = maxSize, max(1, h*maxSize/w)
		} else {
			w, h = max(1, w*maxSize/h), maxSize
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	return atlas.Bitmap{Width: w, Height: h, Pixels: dst.Pix}
}
