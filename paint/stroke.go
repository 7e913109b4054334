package paint

import (
	"math"

	"github.com/gogpu/vg/geom"
)

const (
	// miterMinAngle is the smallest turn, in radians, still drawn as a
	// miter. Sharper joins become bevels.
	miterMinAngle = 0.349066 // ~20 degrees

	// roundMinAngle is the largest angle a single round join or cap
	// triangle may span.
	roundMinAngle = 0.174533 // ~10 degrees

	// parallelEpsilon bounds the cross product below which two edges are
	// considered parallel.
	parallelEpsilon = 1e-4
)

type lineSegment struct {
	a, b geom.Point
}

func (s lineSegment) direction() geom.Point {
	return s.b.Sub(s.a).Normalize()
}

func (s lineSegment) normal() geom.Point {
	d := s.b.Sub(s.a)
	return geom.Pt(-d.Y, d.X).Normalize()
}

func (s lineSegment) translate(v geom.Point) lineSegment {
	return lineSegment{a: s.a.Add(v), b: s.b.Add(v)}
}

// intersection returns where the two segments cross. With infinite set
// the segments are extended to lines.
func (s lineSegment) intersection(o lineSegment, infinite bool) (geom.Point, bool) {
	ds := s.b.Sub(s.a)
	do := o.b.Sub(o.a)
	between := o.a.Sub(s.a)

	den := ds.Cross(do)
	if math.Abs(float64(den)) < parallelEpsilon {
		return geom.Point{}, false
	}
	u := between.Cross(ds) / den
	t := between.Cross(do) / den
	if !infinite && (t < 0 || t > 1 || u < 0 || u > 1) {
		return geom.Point{}, false
	}
	return s.a.Add(ds.Mul(t)), true
}

// polySegment is a stroked segment: the center line and both edges of the
// stroke, each offset by the half width.
type polySegment struct {
	center lineSegment
	edge1  lineSegment
	edge2  lineSegment
}

func newPolySegment(center lineSegment, halfWidth float32) polySegment {
	n := center.normal().Mul(halfWidth)
	return polySegment{
		center: center,
		edge1:  center.translate(n),
		edge2:  center.translate(n.Neg()),
	}
}

// StrokePolyline strokes the polyline through pts with style. Consecutive
// duplicate points are skipped. Every segment becomes one quad; joins and
// caps add triangles between and around them. With CapJoint the last point
// is joined back to the first.
func StrokePolyline(m *Mesh, pts []geom.Point, style StrokeStyle) {
	if len(pts) < 2 || !style.IsVisible() {
		return
	}
	h := style.Width / 2

	segments := make([]polySegment, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		if pts[i-1] == pts[i] {
			continue
		}
		segments = append(segments, newPolySegment(lineSegment{a: pts[i-1], b: pts[i]}, h))
	}
	if first, last := pts[0], pts[len(pts)-1]; style.Cap == CapJoint && first != last {
		segments = append(segments, newPolySegment(lineSegment{a: last, b: first}, h))
	}
	if len(segments) == 0 {
		return
	}

	firstSeg := &segments[0]
	lastSeg := &segments[len(segments)-1]

	pathStart1, pathStart2 := firstSeg.edge1.a, firstSeg.edge2.a
	pathEnd1, pathEnd2 := lastSeg.edge1.b, lastSeg.edge2.b

	switch style.Cap {
	case CapButt:
	case CapRound:
		AddTriangleFan(m, style.Color, firstSeg.center.a, firstSeg.center.a, pathStart1, pathStart2, false)
		AddTriangleFan(m, style.Color, lastSeg.center.b, lastSeg.center.b, pathEnd1, pathEnd2, true)
	case CapJoint:
		pathEnd1, pathEnd2, pathStart1, pathStart2 = createJoint(m, style, lastSeg, firstSeg)
	case CapSquare:
		startExt := firstSeg.direction().Mul(h)
		endExt := lastSeg.direction().Mul(h)
		pathStart1 = pathStart1.Sub(startExt)
		pathStart2 = pathStart2.Sub(startExt)
		pathEnd1 = pathEnd1.Add(endExt)
		pathEnd2 = pathEnd2.Add(endExt)
	}

	m.Reserve(4*len(segments), 6*len(segments))
	start1, start2 := pathStart1, pathStart2
	for i := range segments {
		var end1, end2, next1, next2 geom.Point
		if i+1 == len(segments) {
			end1, end2 = pathEnd1, pathEnd2
		} else {
			end1, end2, next1, next2 = createJoint(m, style, &segments[i], &segments[i+1])
		}

		base := m.VertexCount()
		m.AddVertex(start1, style.Color, WhiteUV)
		m.AddVertex(start2, style.Color, WhiteUV)
		m.AddVertex(end1, style.Color, WhiteUV)
		m.AddVertex(end2, style.Color, WhiteUV)
		m.AddTriangle(base, base+1, base+2)
		m.AddTriangle(base+2, base+1, base+3)

		start1, start2 = next1, next2
	}
}

func (s *polySegment) direction() geom.Point { return s.center.direction() }

// createJoint joins seg1 to seg2. It returns where seg1's edges end and
// where seg2's edges start, and emits the bevel or round triangles that
// fill the gap on the outer side of the turn.
func createJoint(m *Mesh, style StrokeStyle, seg1, seg2 *polySegment) (end1, end2, next1, next2 geom.Point) {
	dir1 := seg1.direction()
	dir2 := seg2.direction()

	angle := dir1.Angle(dir2)
	wrapped := angle
	if wrapped > math.Pi/2 {
		wrapped = math.Pi - wrapped
	}

	join := style.Join
	if join == JoinMiter && wrapped < miterMinAngle {
		join = JoinBevel
	}

	if join == JoinMiter {
		sec1, ok1 := seg1.edge1.intersection(seg2.edge1, true)
		if !ok1 {
			sec1 = seg1.edge1.b
		}
		sec2, ok2 := seg1.edge2.intersection(seg2.edge2, true)
		if !ok2 {
			sec2 = seg1.edge2.b
		}
		return sec1, sec2, sec1, sec2
	}

	clockwise := dir1.Cross(dir2) < 0

	outer1, outer2 := seg1.edge2, seg2.edge2
	inner1, inner2 := seg1.edge1, seg2.edge1
	if clockwise {
		outer1, outer2 = seg1.edge1, seg2.edge1
		inner1, inner2 = seg1.edge2, seg2.edge2
	}

	innerSec, found := inner1.intersection(inner2, style.AllowOverlap)
	innerStart := innerSec
	if !found {
		innerSec = inner1.b
		if angle > math.Pi/2 {
			innerStart = outer1.b
		} else {
			innerStart = inner1.b
		}
	}

	if clockwise {
		end1, end2 = outer1.b, innerSec
		next1, next2 = outer2.a, innerStart
	} else {
		end1, end2 = innerSec, outer1.b
		next1, next2 = innerStart, outer2.a
	}

	switch join {
	case JoinBevel:
		base := m.VertexCount()
		m.AddVertex(outer1.b, style.Color, WhiteUV)
		m.AddVertex(outer2.a, style.Color, WhiteUV)
		m.AddVertex(innerSec, style.Color, WhiteUV)
		m.AddTriangle(base, base+1, base+2)
	case JoinRound:
		AddTriangleFan(m, style.Color, innerSec, seg1.center.b, outer1.b, outer2.a, clockwise)
	}
	return end1, end2, next1, next2
}

// AddTriangleFan adds triangles sweeping around origin from start to end,
// each connected to connectTo. The sweep runs clockwise or counterclockwise
// in the sense of atan2, and each triangle spans at most about 10 degrees.
func AddTriangleFan(m *Mesh, c Color, connectTo, origin, start, end geom.Point, clockwise bool) {
	p1 := start.Sub(origin)
	p2 := end.Sub(origin)

	a1 := math.Atan2(float64(p1.Y), float64(p1.X))
	a2 := math.Atan2(float64(p2.Y), float64(p2.X))
	if clockwise {
		if a2 > a1 {
			a2 -= 2 * math.Pi
		}
	} else if a1 > a2 {
		a1 -= 2 * math.Pi
	}

	sweep := a2 - a1
	n := max(1, int(math.Floor(math.Abs(sweep)/roundMinAngle)))
	step := sweep / float64(n)

	m.Reserve(3*n, 3*n)
	from := start
	for t := range n {
		var to geom.Point
		if t+1 == n {
			to = end
		} else {
			to = p1.Rotate(float32(float64(t+1) * step)).Add(origin)
		}
		base := m.VertexCount()
		m.AddVertex(from, c, WhiteUV)
		m.AddVertex(to, c, WhiteUV)
		m.AddVertex(connectTo, c, WhiteUV)
		m.AddTriangle(base, base+1, base+2)
		from = to
	}
}
