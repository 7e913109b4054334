package text

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
)

// GlyphBox is the pixel box of a rasterized glyph relative to its pen
// position, y down: the mask's top-left corner is at Offset.
type GlyphBox struct {
	Offset  geom.Point
	Width   int
	Height  int
	Advance float32
}

// IsEmpty reports whether the glyph has no pixels, as for a space.
func (b GlyphBox) IsEmpty() bool { return b.Width <= 0 || b.Height <= 0 }

// Rect returns the glyph's rectangle for a pen at pen.
func (b GlyphBox) Rect(pen geom.Point) geom.Rect {
	return geom.NewRect(pen.X+b.Offset.X, pen.Y+b.Offset.Y, float32(b.Width), float32(b.Height))
}

// GlyphBox returns the pixel box of glyph gid at size pixels per em.
func (f *Face) GlyphBox(gid uint16, size float32) (GlyphBox, error) {
	if size <= 0 {
		return GlyphBox{}, ErrInvalidSize
	}
	var buf sfnt.Buffer
	bounds, advance, err := f.sfnt.GlyphBounds(&buf, sfnt.GlyphIndex(gid), toFixed(size), xfont.HintingNone)
	if err != nil {
		return GlyphBox{}, fmt.Errorf("text: bounds of glyph %d: %w", gid, err)
	}
	x0 := math.Floor(float64(fromFixed(bounds.Min.X)))
	y0 := math.Floor(float64(fromFixed(bounds.Min.Y)))
	x1 := math.Ceil(float64(fromFixed(bounds.Max.X)))
	y1 := math.Ceil(float64(fromFixed(bounds.Max.Y)))
	return GlyphBox{
		Offset:  geom.Pt(float32(x0), float32(y0)),
		Width:   int(x1 - x0),
		Height:  int(y1 - y0),
		Advance: fromFixed(advance),
	}, nil
}

// RasterizeGlyph renders the coverage mask of glyph gid at size pixels per
// em. The bitmap covers the glyph's GlyphBox and holds one byte per pixel,
// suitable for a mask atlas texture.
func (f *Face) RasterizeGlyph(gid uint16, size float32) (atlas.Bitmap, GlyphBox, error) {
	box, err := f.GlyphBox(gid, size)
	if err != nil {
		return atlas.Bitmap{}, GlyphBox{}, err
	}
	if box.IsEmpty() {
		return atlas.Bitmap{}, box, nil
	}

	var buf sfnt.Buffer
	segs, err := f.sfnt.LoadGlyph(&buf, sfnt.GlyphIndex(gid), toFixed(size), nil)
	if err != nil {
		return atlas.Bitmap{}, GlyphBox{}, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}

	dx, dy := -box.Offset.X, -box.Offset.Y
	r := vector.NewRasterizer(box.Width, box.Height)
	r.DrawOp = draw.Src
	for _, seg := range segs {
		a := seg.Args
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			r.MoveTo(fromFixed(a[0].X)+dx, fromFixed(a[0].Y)+dy)
		case sfnt.SegmentOpLineTo:
			r.LineTo(fromFixed(a[0].X)+dx, fromFixed(a[0].Y)+dy)
		case sfnt.SegmentOpQuadTo:
			r.QuadTo(
				fromFixed(a[0].X)+dx, fromFixed(a[0].Y)+dy,
				fromFixed(a[1].X)+dx, fromFixed(a[1].Y)+dy)
		case sfnt.SegmentOpCubeTo:
			r.CubeTo(
				fromFixed(a[0].X)+dx, fromFixed(a[0].Y)+dy,
				fromFixed(a[1].X)+dx, fromFixed(a[1].Y)+dy,
				fromFixed(a[2].X)+dx, fromFixed(a[2].Y)+dy)
		}
	}
	r.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, box.Width, box.Height))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return atlas.Bitmap{Width: box.Width, Height: box.Height, Pixels: mask.Pix}, box, nil
}
