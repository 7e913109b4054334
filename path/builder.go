package path

import (
	"fmt"
	"math"

	"github.com/gogpu/vg/geom"
)

// circleFactor is the cubic Bézier control distance, relative to the
// radius, that best approximates a quarter circle.
const circleFactor = 0.5519150244935106

// Verb is a builder command.
type Verb uint8

const (
	VerbBegin Verb = iota
	VerbLine
	VerbQuad
	VerbCubic
	VerbEnd   // end of an open contour
	VerbClose // end of a closed contour
)

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case VerbBegin:
		return "Begin"
	case VerbLine:
		return "Line"
	case VerbQuad:
		return "Quad"
	case VerbCubic:
		return "Cubic"
	case VerbEnd:
		return "End"
	case VerbClose:
		return "Close"
	default:
		return fmt.Sprintf("Verb(%d)", v)
	}
}

// Builder records contours as verbs and points.
//
// Begin starts a contour and End or Close finishes it. Edges appended while
// no contour is open start one at their end point. A closed contour records
// its first point again, so a closed rectangle has five points.
type Builder struct {
	verbs []Verb
	pts   []geom.Point
	open  bool
	first geom.Point
	last  geom.Point
}

// NewBuilder returns an empty builder with room for n points.
func NewBuilder(n int) *Builder {
	return &Builder{pts: make([]geom.Point, 0, n), verbs: make([]Verb, 0, n)}
}

// Verbs returns the recorded verbs.
func (b *Builder) Verbs() []Verb { return b.verbs }

// Points returns the recorded points: one per Begin, Line and Close, two
// per Quad, three per Cubic.
func (b *Builder) Points() []geom.Point { return b.pts }

// IsOpen reports whether a contour is in progress.
func (b *Builder) IsOpen() bool { return b.open }

// Current returns the last point added.
func (b *Builder) Current() geom.Point { return b.last }

// Reset clears the builder, keeping its storage.
func (b *Builder) Reset() {
	b.verbs = b.verbs[:0]
	b.pts = b.pts[:0]
	b.open = false
}

func checkNaN(pts ...geom.Point) {
	for _, p := range pts {
		if p.IsNaN() {
			panic("path: NaN coordinate")
		}
	}
}

// Begin starts a new contour at p, ending any open contour first.
func (b *Builder) Begin(p geom.Point) {
	checkNaN(p)
	if b.open {
		b.End(false)
	}
	b.open = true
	b.first = p
	b.last = p
	b.pts = append(b.pts, p)
	b.verbs = append(b.verbs, VerbBegin)
}

func (b *Builder) ensureOpen(p geom.Point) bool {
	if b.open {
		return true
	}
	b.Begin(p)
	return false
}

// LineTo adds a straight edge to p.
func (b *Builder) LineTo(p geom.Point) {
	checkNaN(p)
	if !b.ensureOpen(p) {
		return
	}
	b.pts = append(b.pts, p)
	b.verbs = append(b.verbs, VerbLine)
	b.last = p
}

// QuadTo adds a quadratic Bézier edge with control point c.
func (b *Builder) QuadTo(c, p geom.Point) {
	checkNaN(c, p)
	if !b.ensureOpen(p) {
		return
	}
	b.pts = append(b.pts, c, p)
	b.verbs = append(b.verbs, VerbQuad)
	b.last = p
}

// CubicTo adds a cubic Bézier edge with control points c1 and c2.
func (b *Builder) CubicTo(c1, c2, p geom.Point) {
	checkNaN(c1, c2, p)
	if !b.ensureOpen(p) {
		return
	}
	b.pts = append(b.pts, c1, c2, p)
	b.verbs = append(b.verbs, VerbCubic)
	b.last = p
}

// End finishes the open contour. With close set, an edge back to the first
// point is recorded. End without an open contour does nothing.
func (b *Builder) End(close bool) {
	if !b.open {
		return
	}
	b.open = false
	if close {
		b.pts = append(b.pts, b.first)
		b.verbs = append(b.verbs, VerbClose)
		b.last = b.first
		return
	}
	b.verbs = append(b.verbs, VerbEnd)
}

// Close is End(true).
func (b *Builder) Close() { b.End(true) }

// ArcTo adds a circular arc around center from startAngle to endAngle.
//
// Angles are in radians, measured from the +X axis towards +Y, which is
// clockwise on a y-down canvas. With clockwise set the arc sweeps towards
// increasing angles, otherwise towards decreasing ones; the sweep is at
// most one full turn. The arc is connected to the open contour with a
// line, or starts a new contour. It is emitted as cubic pieces of at most
// 90 degrees.
func (b *Builder) ArcTo(center geom.Point, radius, startAngle, endAngle float32, clockwise bool) {
	checkNaN(center)
	if math.IsNaN(float64(radius + startAngle + endAngle)) {
		panic("path: NaN arc parameter")
	}
	radius = float32(math.Abs(float64(radius)))
	sweep := float64(endAngle - startAngle)
	const turn = 2 * math.Pi
	switch {
	case sweep > turn:
		sweep = turn
	case sweep < -turn:
		sweep = -turn
	}
	if clockwise && sweep < 0 {
		sweep += turn
	} else if !clockwise && sweep > 0 {
		sweep -= turn
	}

	start := arcPoint(center, radius, float64(startAngle))
	if b.open {
		if start != b.last {
			b.LineTo(start)
		}
	} else {
		b.Begin(start)
	}
	if sweep == 0 || radius == 0 {
		return
	}

	n := int(math.Ceil(math.Abs(sweep)/(math.Pi/2) - 1e-6))
	step := sweep / float64(n)
	k := float32(4.0 / 3.0 * math.Tan(step/4))
	a0 := float64(startAngle)
	for i := range n {
		a1 := a0 + step
		if i == n-1 {
			a1 = float64(startAngle) + sweep
		}
		p0 := arcPoint(center, radius, a0)
		p1 := arcPoint(center, radius, a1)
		t0 := geom.Pt(float32(-math.Sin(a0)), float32(math.Cos(a0))).Mul(radius * k)
		t1 := geom.Pt(float32(-math.Sin(a1)), float32(math.Cos(a1))).Mul(radius * k)
		b.CubicTo(p0.Add(t0), p1.Sub(t1), p1)
		a0 = a1
	}
}

func arcPoint(c geom.Point, r float32, angle float64) geom.Point {
	s, cos := math.Sincos(angle)
	return geom.Pt(c.X+r*float32(cos), c.Y+r*float32(s))
}

// Polygon adds a contour through pts.
func (b *Builder) Polygon(pts []geom.Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	b.Begin(pts[0])
	for _, p := range pts[1:] {
		b.LineTo(p)
	}
	b.End(closed)
}

// Rect adds a closed rectangle: top-left, top-right, bottom-right,
// bottom-left.
func (b *Builder) Rect(r geom.Rect) {
	b.Polygon([]geom.Point{r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft()}, true)
}

// RoundRect adds a closed rectangle with rounded corners. Radii are clamped
// to the rectangle; a zero radius gives a sharp corner, so all-zero radii
// produce exactly the contour of Rect.
func (b *Builder) RoundRect(r geom.Rect, corners geom.Corners) {
	c := corners.Clamped(r.Size)
	lo, hi := r.Min(), r.Max()

	b.Begin(geom.Pt(lo.X, lo.Y+c.TopLeft))
	if c.TopLeft > 0 {
		d := c.TopLeft * circleFactor
		b.CubicTo(
			geom.Pt(lo.X, lo.Y+c.TopLeft-d),
			geom.Pt(lo.X+c.TopLeft-d, lo.Y),
			geom.Pt(lo.X+c.TopLeft, lo.Y))
	}
	b.LineTo(geom.Pt(hi.X-c.TopRight, lo.Y))
	if c.TopRight > 0 {
		d := c.TopRight * circleFactor
		b.CubicTo(
			geom.Pt(hi.X-c.TopRight+d, lo.Y),
			geom.Pt(hi.X, lo.Y+c.TopRight-d),
			geom.Pt(hi.X, lo.Y+c.TopRight))
	}
	b.LineTo(geom.Pt(hi.X, hi.Y-c.BottomRight))
	if c.BottomRight > 0 {
		d := c.BottomRight * circleFactor
		b.CubicTo(
			geom.Pt(hi.X, hi.Y-c.BottomRight+d),
			geom.Pt(hi.X-c.BottomRight+d, hi.Y),
			geom.Pt(hi.X-c.BottomRight, hi.Y))
	}
	b.LineTo(geom.Pt(lo.X+c.BottomLeft, hi.Y))
	if c.BottomLeft > 0 {
		d := c.BottomLeft * circleFactor
		b.CubicTo(
			geom.Pt(lo.X+c.BottomLeft-d, hi.Y),
			geom.Pt(lo.X, hi.Y-c.BottomLeft+d),
			geom.Pt(lo.X, hi.Y-c.BottomLeft))
	}
	b.Close()
}

// Circle adds a closed circle as four cubic quadrants, starting at the
// leftmost point and passing through the top, right and bottom.
func (b *Builder) Circle(center geom.Point, radius float32) {
	b.Ellipse(center, radius, radius)
}

// Ellipse adds a closed axis-aligned ellipse as four cubic quadrants.
func (b *Builder) Ellipse(center geom.Point, rx, ry float32) {
	rx = float32(math.Abs(float64(rx)))
	ry = float32(math.Abs(float64(ry)))
	dx, dy := rx*circleFactor, ry*circleFactor
	at := func(x, y float32) geom.Point { return geom.Pt(center.X+x, center.Y+y) }

	b.Begin(at(-rx, 0))
	b.CubicTo(at(-rx, -dy), at(-dx, -ry), at(0, -ry))
	b.CubicTo(at(dx, -ry), at(rx, -dy), at(rx, 0))
	b.CubicTo(at(rx, dy), at(dx, ry), at(0, ry))
	b.CubicTo(at(-dx, ry), at(-rx, dy), at(-rx, 0))
	b.Close()
}
