package path

import (
	gpath "seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/vg/geom"
)

// FromGeom records the commands of a seehuhn.de/go/geom path as a new
// Path2D.
func FromGeom(src gpath.Path) *Path2D {
	p := NewPath2D()
	for cmd, pts := range src {
		switch cmd {
		case gpath.CmdMoveTo:
			p.MoveTo(fromVec(pts[0]))
		case gpath.CmdLineTo:
			p.LineTo(fromVec(pts[0]))
		case gpath.CmdQuadTo:
			p.QuadTo(fromVec(pts[0]), fromVec(pts[1]))
		case gpath.CmdCubeTo:
			p.CubicTo(fromVec(pts[0]), fromVec(pts[1]), fromVec(pts[2]))
		case gpath.CmdClose:
			p.Close()
		}
	}
	return p
}

// Geom returns the path as a seehuhn.de/go/geom path. Arcs are expanded to
// cubic curves.
func (p *Path2D) Geom() gpath.Path {
	b := NewBuilder(len(p.ops) * 3)
	p.Replay(b)
	return b.Geom()
}

// Geom returns the recorded contours as a seehuhn.de/go/geom path.
func (b *Builder) Geom() gpath.Path {
	verbs := b.verbs
	pts := b.pts
	return func(yield func(gpath.Command, []vec.Vec2) bool) {
		buf := make([]vec.Vec2, 3)
		i := 0
		emit := func(cmd gpath.Command, n int) bool {
			for k := range n {
				buf[k] = toVec(pts[i+k])
			}
			i += n
			return yield(cmd, buf[:n])
		}
		for _, v := range verbs {
			var ok bool
			switch v {
			case VerbBegin:
				ok = emit(gpath.CmdMoveTo, 1)
			case VerbLine:
				ok = emit(gpath.CmdLineTo, 1)
			case VerbQuad:
				ok = emit(gpath.CmdQuadTo, 2)
			case VerbCubic:
				ok = emit(gpath.CmdCubeTo, 3)
			case VerbClose:
				// the repeated first point is implied by the close command
				i++
				ok = yield(gpath.CmdClose, nil)
			case VerbEnd:
				ok = true
			}
			if !ok {
				return
			}
		}
	}
}

func fromVec(v vec.Vec2) geom.Point {
	return geom.Pt(float32(v.X), float32(v.Y))
}

func toVec(p geom.Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}
