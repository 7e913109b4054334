package path

import (
	"math"
	"testing"

	gpath "seehuhn.de/go/geom/path"

	"github.com/gogpu/vg/geom"
)

const eps = 1e-4

func near(a, b geom.Point) bool {
	return math.Abs(float64(a.X-b.X)) < eps && math.Abs(float64(a.Y-b.Y)) < eps
}

func TestBuilderRect(t *testing.T) {
	b := NewBuilder(8)
	b.Rect(geom.NewRect(1, 2, 10, 20))

	want := []geom.Point{{X: 1, Y: 2}, {X: 11, Y: 2}, {X: 11, Y: 22}, {X: 1, Y: 22}, {X: 1, Y: 2}}
	pts := b.Points()
	if len(pts) != len(want) {
		t.Fatalf("len(Points) = %d, want %d", len(pts), len(want))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("Points[%d] = %v, want %v", i, pts[i], want[i])
		}
	}
	wantVerbs := []Verb{VerbBegin, VerbLine, VerbLine, VerbLine, VerbClose}
	for i, v := range b.Verbs() {
		if v != wantVerbs[i] {
			t.Errorf("Verbs[%d] = %v, want %v", i, v, wantVerbs[i])
		}
	}
}

func TestRoundRectZeroRadiiIsRect(t *testing.T) {
	r := geom.NewRect(0, 0, 10, 10)
	rect := NewBuilder(8)
	rect.Rect(r)
	rounded := NewBuilder(8)
	rounded.RoundRect(r, geom.Corners{})

	got := rounded.Points()
	want := rect.Points()
	if len(got) != len(want) {
		t.Fatalf("points = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRoundRectControlPoints(t *testing.T) {
	b := NewBuilder(32)
	b.RoundRect(geom.NewRect(0, 0, 10, 10), geom.UniformCorners(3))

	pts := b.Points()
	if pts[0] != geom.Pt(0, 3) {
		t.Fatalf("start = %v, want (0,3)", pts[0])
	}
	// first cubic: top-left corner
	if !near(pts[1], geom.Pt(0, 1.3442549)) {
		t.Errorf("c1 = %v", pts[1])
	}
	if !near(pts[2], geom.Pt(1.3442549, 0)) {
		t.Errorf("c2 = %v", pts[2])
	}
	if pts[3] != geom.Pt(3, 0) {
		t.Errorf("end = %v", pts[3])
	}
	// line, then top-right corner cubic
	if pts[4] != geom.Pt(7, 0) {
		t.Errorf("line end = %v", pts[4])
	}
	if !near(pts[5], geom.Pt(8.6557455, 0)) {
		t.Errorf("tr c1 = %v", pts[5])
	}
	if b.Verbs()[len(b.Verbs())-1] != VerbClose {
		t.Error("round rect not closed")
	}
}

func TestCircleQuadrants(t *testing.T) {
	b := NewBuilder(16)
	b.Circle(geom.Pt(5, 5), 2)

	verbs := b.Verbs()
	want := []Verb{VerbBegin, VerbCubic, VerbCubic, VerbCubic, VerbCubic, VerbClose}
	if len(verbs) != len(want) {
		t.Fatalf("verbs = %v, want %v", verbs, want)
	}
	pts := b.Points()
	cardinal := []geom.Point{{X: 3, Y: 5}, {X: 5, Y: 3}, {X: 7, Y: 5}, {X: 5, Y: 7}, {X: 3, Y: 5}}
	for i, c := range cardinal {
		idx := i * 3
		if !near(pts[idx], c) {
			t.Errorf("cardinal %d = %v, want %v", i, pts[idx], c)
		}
	}

	g := b.Flatten(0.1)
	for _, p := range g.Points {
		if d := p.Distance(geom.Pt(5, 5)); math.Abs(float64(d-2)) > 0.1 {
			t.Errorf("flattened point %v at distance %v", p, d)
		}
	}
	if len(g.Contours) != 1 || !g.Contours[0].Closed {
		t.Errorf("contours = %+v", g.Contours)
	}
	if first, last := g.Points[0], g.Points[len(g.Points)-1]; first != last {
		t.Errorf("closed contour ends at %v, want %v", last, first)
	}
}

func TestArcTo(t *testing.T) {
	tests := []struct {
		name      string
		start     float32
		end       float32
		clockwise bool
		cubics    int
		endPoint  geom.Point
	}{
		{"quarter", 0, math.Pi / 2, true, 1, geom.Pt(0, 1)},
		{"half", 0, math.Pi, true, 2, geom.Pt(-1, 0)},
		{"counter quarter", 0, math.Pi / 2, false, 3, geom.Pt(0, 1)},
		{"full", 0, 2 * math.Pi, true, 4, geom.Pt(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(16)
			b.ArcTo(geom.Point{}, 1, tt.start, tt.end, tt.clockwise)
			n := 0
			for _, v := range b.Verbs() {
				if v == VerbCubic {
					n++
				}
			}
			if n != tt.cubics {
				t.Errorf("cubics = %d, want %d", n, tt.cubics)
			}
			if !near(b.Current(), tt.endPoint) {
				t.Errorf("end = %v, want %v", b.Current(), tt.endPoint)
			}
		})
	}
}

func TestArcToConnectsOpenContour(t *testing.T) {
	b := NewBuilder(16)
	b.Begin(geom.Pt(-5, 0))
	b.ArcTo(geom.Point{}, 1, math.Pi, 2*math.Pi, true)
	if got := b.Verbs()[1]; got != VerbLine {
		t.Errorf("second verb = %v, want Line", got)
	}
}

func TestImplicitBegin(t *testing.T) {
	b := NewBuilder(4)
	b.LineTo(geom.Pt(1, 1))
	b.LineTo(geom.Pt(2, 1))
	b.Begin(geom.Pt(5, 5))
	b.LineTo(geom.Pt(6, 5))

	want := []Verb{VerbBegin, VerbLine, VerbEnd, VerbBegin, VerbLine}
	got := b.Verbs()
	if len(got) != len(want) {
		t.Fatalf("verbs = %v, want %v", got, want)
	}
	g := b.Flatten(0)
	if len(g.Contours) != 2 || g.Contours[0].Closed || g.Contours[1].Closed {
		t.Errorf("contours = %+v", g.Contours)
	}
}

func TestBuilderNaNPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on NaN")
		}
	}()
	b := NewBuilder(1)
	b.LineTo(geom.Pt(float32(math.NaN()), 0))
}

func TestFlattenQuad(t *testing.T) {
	b := NewBuilder(4)
	b.Begin(geom.Pt(0, 0))
	b.QuadTo(geom.Pt(50, 100), geom.Pt(100, 0))
	g := b.Flatten(0.25)

	if len(g.Points) < 8 {
		t.Errorf("only %d points for a deep curve", len(g.Points))
	}
	if last := g.Points[len(g.Points)-1]; last != geom.Pt(100, 0) {
		t.Errorf("last point = %v", last)
	}
	for i := 1; i < len(g.Points); i++ {
		if g.Points[i].X < g.Points[i-1].X {
			t.Fatalf("x not monotonic at %d", i)
		}
	}
}

func TestCacheInvalidation(t *testing.T) {
	c := NewCache(4, 0)
	p := NewPath2D().Rect(geom.NewRect(0, 0, 4, 4))

	g1 := c.Geometry(p)
	g2 := c.Geometry(p)
	if g1 != g2 {
		t.Error("second lookup rebuilt geometry")
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Errorf("stats = %+v", s)
	}

	gen := p.Generation()
	p.LineTo(geom.Pt(9, 9))
	if p.Generation() == gen {
		t.Fatal("edit did not advance generation")
	}
	if _, ok := c.Get(p); ok {
		t.Error("stale entry returned after edit")
	}
	g3 := c.Geometry(p)
	if g3 == g1 {
		t.Error("edit did not rebuild geometry")
	}

	c.Invalidate(p.ID())
	if _, ok := c.Get(p); ok {
		t.Error("entry survived Invalidate")
	}
}

func TestPathIdentity(t *testing.T) {
	a, b := NewPath2D(), NewPath2D()
	if a.ID() == b.ID() {
		t.Error("paths share identity")
	}
	id := a.ID()
	a.MoveTo(geom.Pt(1, 1))
	a.Clear()
	if a.ID() != id || a.Len() != 0 {
		t.Errorf("Clear changed identity or kept ops")
	}
}

func TestZeroValuePathsHaveDistinctIdentity(t *testing.T) {
	var a Path2D
	b := new(Path2D)
	a.Rect(geom.NewRect(0, 0, 10, 10))
	b.Rect(geom.NewRect(100, 100, 20, 20))
	if a.ID() == 0 || a.ID() == b.ID() {
		t.Fatalf("ids = %d, %d, want distinct non-zero", a.ID(), b.ID())
	}

	c := NewCache(4, 0)
	c.Geometry(&a)
	if got, want := c.Geometry(b).Bounds(), geom.NewRect(100, 100, 20, 20); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}

	var empty Path2D
	if empty.ID() == 0 || empty.ID() != empty.ID() {
		t.Error("unused zero path has no stable identity")
	}
}

func TestGeomRoundTrip(t *testing.T) {
	p := NewPath2D().
		MoveTo(geom.Pt(0, 0)).
		LineTo(geom.Pt(10, 0)).
		QuadTo(geom.Pt(10, 10), geom.Pt(0, 10)).
		Close()

	var cmds []gpath.Command
	for cmd := range p.Geom() {
		cmds = append(cmds, cmd)
	}
	want := []gpath.Command{gpath.CmdMoveTo, gpath.CmdLineTo, gpath.CmdQuadTo, gpath.CmdClose}
	if len(cmds) != len(want) {
		t.Fatalf("commands = %v, want %v", cmds, want)
	}
	for i := range want {
		if cmds[i] != want[i] {
			t.Errorf("command %d = %v, want %v", i, cmds[i], want[i])
		}
	}

	back := FromGeom(p.Geom())
	if back.Len() != p.Len() {
		t.Fatalf("round trip has %d ops, want %d", back.Len(), p.Len())
	}
	for i, op := range back.Ops() {
		if op.Kind != p.Ops()[i].Kind || op.Pts != p.Ops()[i].Pts {
			t.Errorf("op %d = %+v, want %+v", i, op, p.Ops()[i])
		}
	}
}
