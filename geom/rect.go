package geom

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Size is a width/height pair.
type Size struct {
	Width, Height float32
}

// Rect is an axis-aligned rectangle given by its top-left origin and size.
// Y grows downwards.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect creates a rectangle from origin and size components.
func NewRect(x, y, width, height float32) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// RectFromPoints creates the rectangle spanning min and max.
func RectFromPoints(min, max Point) Rect {
	return Rect{Origin: min, Size: Size{Width: max.X - min.X, Height: max.Y - min.Y}}
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return r.Origin }

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.Origin.X + r.Size.Width, Y: r.Origin.Y + r.Size.Height}
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point { return r.Origin }

// TopRight returns the top-right corner.
func (r Rect) TopRight() Point { return Point{X: r.Origin.X + r.Size.Width, Y: r.Origin.Y} }

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() Point { return Point{X: r.Origin.X, Y: r.Origin.Y + r.Size.Height} }

// BottomRight returns the bottom-right corner.
func (r Rect) BottomRight() Point { return r.Max() }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: r.Origin.X + r.Size.Width/2, Y: r.Origin.Y + r.Size.Height/2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Contains reports whether p lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	max := r.Max()
	return p.X >= r.Origin.X && p.X < max.X && p.Y >= r.Origin.Y && p.Y < max.Y
}

// Intersect returns the intersection of two rectangles.
// Disjoint rectangles produce an empty rectangle at the clamped origin.
func (r Rect) Intersect(o Rect) Rect {
	rmax, omax := r.Max(), o.Max()
	x0 := max(r.Origin.X, o.Origin.X)
	y0 := max(r.Origin.Y, o.Origin.Y)
	x1 := min(rmax.X, omax.X)
	y1 := min(rmax.Y, omax.Y)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{Origin: Point{X: x0, Y: y0}, Size: Size{Width: x1 - x0, Height: y1 - y0}}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	rmax, omax := r.Max(), o.Max()
	return RectFromPoints(
		Point{X: min(r.Origin.X, o.Origin.X), Y: min(r.Origin.Y, o.Origin.Y)},
		Point{X: max(rmax.X, omax.X), Y: max(rmax.Y, omax.Y)},
	)
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g,%g %gx%g)", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

// Bounds returns the bounding rectangle of pts.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return RectFromPoints(lo, hi)
}

// ScissorRect is a clip rectangle in framebuffer pixels.
type ScissorRect struct {
	X, Y, Width, Height uint32
}

// Scissor converts the rectangle to framebuffer pixels clamped to a
// screen of the given size. Fractional edges are rounded outwards.
func (r Rect) Scissor(screenWidth, screenHeight uint32) ScissorRect {
	max := r.Max()
	x0 := Clamp(math.Floor(float64(r.Origin.X)), 0, float64(screenWidth))
	y0 := Clamp(math.Floor(float64(r.Origin.Y)), 0, float64(screenHeight))
	x1 := Clamp(math.Ceil(float64(max.X)), x0, float64(screenWidth))
	y1 := Clamp(math.Ceil(float64(max.Y)), y0, float64(screenHeight))
	return ScissorRect{
		X:      uint32(x0),
		Y:      uint32(y0),
		Width:  uint32(x1 - x0),
		Height: uint32(y1 - y0),
	}
}

// Clamp restricts v to the range [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
