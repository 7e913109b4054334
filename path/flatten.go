package path

import (
	"math"

	"github.com/gogpu/vg/geom"
)

// DefaultTolerance is the maximum allowed deviation, in canvas units,
// between a curve and its flattened polyline.
const DefaultTolerance = 0.25

// maxSubdivision bounds the recursion depth of curve flattening.
const maxSubdivision = 16

// Contour is a run of points in a GeometryPath.
type Contour struct {
	Start  int // index of the first point
	End    int // one past the last point
	Closed bool
}

// GeometryPath is a flattened path: straight polylines grouped into
// contours. A closed contour repeats its first point at the end.
type GeometryPath struct {
	Points   []geom.Point
	Contours []Contour
}

// ContourPoints returns the points of contour i.
func (g *GeometryPath) ContourPoints(i int) []geom.Point {
	c := g.Contours[i]
	return g.Points[c.Start:c.End]
}

// Bounds returns the bounding rectangle of all points.
func (g *GeometryPath) Bounds() geom.Rect {
	return geom.Bounds(g.Points)
}

// IsEmpty reports whether the path has no points.
func (g *GeometryPath) IsEmpty() bool { return len(g.Points) == 0 }

// Flatten converts the recorded contours into polylines. Curves are
// subdivided with de Casteljau's algorithm until they deviate from their
// chords by at most tolerance. A non-positive tolerance selects
// DefaultTolerance. An unfinished contour is treated as open.
func (b *Builder) Flatten(tolerance float32) *GeometryPath {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	f := flattener{tol: float64(tolerance), out: &GeometryPath{}}
	pts := b.pts
	pi := 0
	next := func() geom.Point {
		p := pts[pi]
		pi++
		return p
	}
	for _, v := range b.verbs {
		switch v {
		case VerbBegin:
			f.finish(false)
			f.begin(next())
		case VerbLine:
			f.lineTo(next())
		case VerbQuad:
			c := next()
			f.quadTo(c, next())
		case VerbCubic:
			c1 := next()
			c2 := next()
			f.cubicTo(c1, c2, next())
		case VerbEnd:
			f.finish(false)
		case VerbClose:
			f.lineTo(next())
			f.finish(true)
		}
	}
	f.finish(false)
	return f.out
}

type flattener struct {
	tol     float64
	out     *GeometryPath
	start   int
	open    bool
	current geom.Point
}

func (f *flattener) begin(p geom.Point) {
	f.start = len(f.out.Points)
	f.open = true
	f.current = p
	f.out.Points = append(f.out.Points, p)
}

func (f *flattener) finish(closed bool) {
	if !f.open {
		return
	}
	f.open = false
	f.out.Contours = append(f.out.Contours, Contour{Start: f.start, End: len(f.out.Points), Closed: closed})
}

func (f *flattener) lineTo(p geom.Point) {
	f.out.Points = append(f.out.Points, p)
	f.current = p
}

func (f *flattener) quadTo(c, p geom.Point) {
	p0 := f.current
	f.flattenQuad(
		float64(p0.X), float64(p0.Y),
		float64(c.X), float64(c.Y),
		float64(p.X), float64(p.Y), 0)
	// land exactly on the end point
	f.out.Points[len(f.out.Points)-1] = p
	f.current = p
}

func (f *flattener) cubicTo(c1, c2, p geom.Point) {
	p0 := f.current
	f.flattenCubic(
		float64(p0.X), float64(p0.Y),
		float64(c1.X), float64(c1.Y),
		float64(c2.X), float64(c2.Y),
		float64(p.X), float64(p.Y), 0)
	f.out.Points[len(f.out.Points)-1] = p
	f.current = p
}

func (f *flattener) emit(x, y float64) {
	f.out.Points = append(f.out.Points, geom.Pt(float32(x), float32(y)))
}

// flattenQuad subdivides until the curve midpoint is within tolerance of
// the chord midpoint.
func (f *flattener) flattenQuad(x0, y0, cx, cy, x1, y1 float64, depth int) {
	midX := 0.25*x0 + 0.5*cx + 0.25*x1
	midY := 0.25*y0 + 0.5*cy + 0.25*y1
	dx := midX - 0.5*(x0+x1)
	dy := midY - 0.5*(y0+y1)
	if dx*dx+dy*dy <= f.tol*f.tol || depth >= maxSubdivision {
		f.emit(x1, y1)
		return
	}

	ax, ay := 0.5*(x0+cx), 0.5*(y0+cy)
	bx, by := 0.5*(cx+x1), 0.5*(cy+y1)
	mx, my := 0.5*(ax+bx), 0.5*(ay+by)

	f.flattenQuad(x0, y0, ax, ay, mx, my, depth+1)
	f.flattenQuad(mx, my, bx, by, x1, y1, depth+1)
}

// flattenCubic uses the standard cubic flatness bound: both control points
// within tolerance of the chord, with the factor 16 from the error bound.
func (f *flattener) flattenCubic(x0, y0, c1x, c1y, c2x, c2y, x1, y1 float64, depth int) {
	ux := 3*c1x - 2*x0 - x1
	uy := 3*c1y - 2*y0 - y1
	vx := 3*c2x - x0 - 2*x1
	vy := 3*c2y - y0 - 2*y1
	distSq := math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
	if distSq <= 16*f.tol*f.tol || depth >= maxSubdivision {
		f.emit(x1, y1)
		return
	}

	ab1x, ab1y := 0.5*(x0+c1x), 0.5*(y0+c1y)
	ab2x, ab2y := 0.5*(c1x+c2x), 0.5*(c1y+c2y)
	ab3x, ab3y := 0.5*(c2x+x1), 0.5*(c2y+y1)
	bc1x, bc1y := 0.5*(ab1x+ab2x), 0.5*(ab1y+ab2y)
	bc2x, bc2y := 0.5*(ab2x+ab3x), 0.5*(ab2y+ab3y)
	mx, my := 0.5*(bc1x+bc2x), 0.5*(bc1y+bc2y)

	f.flattenCubic(x0, y0, ab1x, ab1y, bc1x, bc1y, mx, my, depth+1)
	f.flattenCubic(mx, my, bc2x, bc2y, ab3x, ab3y, x1, y1, depth+1)
}
