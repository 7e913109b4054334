package path

import (
	"sync/atomic"

	"github.com/gogpu/vg/geom"
)

var lastPathID atomic.Uint64

// OpKind identifies a Path2D operation.
type OpKind uint8

const (
	OpMoveTo OpKind = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpArcTo
	OpClose
)

// Op is one recorded Path2D operation. Pts holds the control and end points
// in order; arc ops use Pts[0] as the center.
type Op struct {
	Kind       OpKind
	Pts        [3]geom.Point
	Radius     float32
	StartAngle float32
	EndAngle   float32
	Clockwise  bool
}

// Path2D is an editable path: an ordered list of ops, a stable identity and
// a generation counter that changes on every edit. Geometry derived from a
// path is cached under (ID, Generation), see Cache.
//
// The zero value is an empty path; it takes its identity on first use.
// A Path2D is not safe for concurrent mutation.
type Path2D struct {
	id  uint64
	gen uint64
	ops []Op
}

// NewPath2D returns an empty path with a fresh identity.
func NewPath2D() *Path2D {
	return &Path2D{id: lastPathID.Add(1)}
}

// ID returns the path's identity, stable for its lifetime.
func (p *Path2D) ID() uint64 {
	if p.id == 0 {
		p.id = lastPathID.Add(1)
	}
	return p.id
}

// Generation returns the edit counter.
func (p *Path2D) Generation() uint64 { return p.gen }

// Ops returns the recorded ops.
func (p *Path2D) Ops() []Op { return p.ops }

// Len returns the number of ops.
func (p *Path2D) Len() int { return len(p.ops) }

func (p *Path2D) push(op Op) *Path2D {
	if p.id == 0 {
		p.id = lastPathID.Add(1)
	}
	p.ops = append(p.ops, op)
	p.gen++
	return p
}

// MoveTo starts a new contour at pt.
func (p *Path2D) MoveTo(pt geom.Point) *Path2D {
	return p.push(Op{Kind: OpMoveTo, Pts: [3]geom.Point{pt}})
}

// LineTo adds a line to pt.
func (p *Path2D) LineTo(pt geom.Point) *Path2D {
	return p.push(Op{Kind: OpLineTo, Pts: [3]geom.Point{pt}})
}

// QuadTo adds a quadratic Bézier curve.
func (p *Path2D) QuadTo(c, pt geom.Point) *Path2D {
	return p.push(Op{Kind: OpQuadTo, Pts: [3]geom.Point{c, pt}})
}

// CubicTo adds a cubic Bézier curve.
func (p *Path2D) CubicTo(c1, c2, pt geom.Point) *Path2D {
	return p.push(Op{Kind: OpCubicTo, Pts: [3]geom.Point{c1, c2, pt}})
}

// ArcTo adds a circular arc; see Builder.ArcTo for the angle convention.
func (p *Path2D) ArcTo(center geom.Point, radius, startAngle, endAngle float32, clockwise bool) *Path2D {
	return p.push(Op{
		Kind:       OpArcTo,
		Pts:        [3]geom.Point{center},
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Clockwise:  clockwise,
	})
}

// Close closes the current contour.
func (p *Path2D) Close() *Path2D {
	return p.push(Op{Kind: OpClose})
}

// Rect adds a closed rectangle.
func (p *Path2D) Rect(r geom.Rect) *Path2D {
	return p.MoveTo(r.TopLeft()).
		LineTo(r.TopRight()).
		LineTo(r.BottomRight()).
		LineTo(r.BottomLeft()).
		Close()
}

// Circle adds a closed circle as four cubic quadrants.
func (p *Path2D) Circle(center geom.Point, radius float32) *Path2D {
	d := radius * circleFactor
	at := func(x, y float32) geom.Point { return geom.Pt(center.X+x, center.Y+y) }
	return p.MoveTo(at(-radius, 0)).
		CubicTo(at(-radius, -d), at(-d, -radius), at(0, -radius)).
		CubicTo(at(d, -radius), at(radius, -d), at(radius, 0)).
		CubicTo(at(radius, d), at(d, radius), at(0, radius)).
		CubicTo(at(-d, radius), at(-radius, d), at(-radius, 0)).
		Close()
}

// Clear removes all ops. The identity is kept and the generation advances.
func (p *Path2D) Clear() {
	p.ops = p.ops[:0]
	p.gen++
}

// Replay feeds the ops into b.
func (p *Path2D) Replay(b *Builder) {
	for _, op := range p.ops {
		switch op.Kind {
		case OpMoveTo:
			b.Begin(op.Pts[0])
		case OpLineTo:
			b.LineTo(op.Pts[0])
		case OpQuadTo:
			b.QuadTo(op.Pts[0], op.Pts[1])
		case OpCubicTo:
			b.CubicTo(op.Pts[0], op.Pts[1], op.Pts[2])
		case OpArcTo:
			b.ArcTo(op.Pts[0], op.Radius, op.StartAngle, op.EndAngle, op.Clockwise)
		case OpClose:
			b.Close()
		}
	}
}

// Flatten replays the path and flattens it, bypassing any cache.
func (p *Path2D) Flatten(tolerance float32) *GeometryPath {
	b := NewBuilder(len(p.ops) * 3)
	p.Replay(b)
	return b.Flatten(tolerance)
}
