package paint

import (
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/internal/vglog"
	"github.com/gogpu/vg/path"
)

// Range is a half-open range of vertex indices in a DrawList's mesh.
type Range struct {
	Start, End int
}

// Len returns the number of vertices in the range.
func (r Range) Len() int { return r.End - r.Start }

// DrawList tessellates primitives into a single mesh.
//
// A middleware, when set, is applied to every vertex emitted afterwards;
// the batcher uses it to remap local UVs into atlas space.
//
// A DrawList is not safe for concurrent use.
type DrawList struct {
	mesh       Mesh
	feathering float32
	tolerance  float32
	middleware func(*Vertex)
	scratch    *path.Builder
	cache      *path.Cache
}

// NewDrawList returns an empty draw list.
func NewDrawList() *DrawList {
	return &DrawList{
		tolerance: path.DefaultTolerance,
		scratch:   path.NewBuilder(32),
	}
}

// SetFeathering sets the width of the antialiasing fringe used for
// brushes with Antialias set, and returns the previous value.
func (dl *DrawList) SetFeathering(f float32) float32 {
	old := dl.feathering
	dl.feathering = max(f, 0)
	return old
}

// SetTolerance sets the curve flattening tolerance.
func (dl *DrawList) SetTolerance(t float32) {
	if t > 0 {
		dl.tolerance = t
	}
}

// SetPathCache makes AddPath read flattened geometry through c.
func (dl *DrawList) SetPathCache(c *path.Cache) { dl.cache = c }

// SetMiddleware installs fn to be applied to every vertex emitted from now
// on and returns the previous middleware. A nil fn removes it.
func (dl *DrawList) SetMiddleware(fn func(*Vertex)) func(*Vertex) {
	old := dl.middleware
	dl.middleware = fn
	return old
}

// Mesh returns the mesh built so far. It stays owned by the draw list.
func (dl *DrawList) Mesh() *Mesh { return &dl.mesh }

// Capture runs fn and returns the range of vertices it added.
func (dl *DrawList) Capture(fn func(*DrawList)) Range {
	start := len(dl.mesh.Vertices)
	fn(dl)
	return Range{Start: start, End: len(dl.mesh.Vertices)}
}

// MapRange applies fn to every vertex in r.
func (dl *DrawList) MapRange(r Range, fn func(*Vertex)) {
	for i := r.Start; i < r.End; i++ {
		fn(&dl.mesh.Vertices[i])
	}
}

// emit runs fn and applies the middleware to the vertices it added.
func (dl *DrawList) emit(fn func(m *Mesh)) {
	start := len(dl.mesh.Vertices)
	fn(&dl.mesh)
	if dl.middleware != nil {
		dl.MapRange(Range{Start: start, End: len(dl.mesh.Vertices)}, dl.middleware)
	}
}

func (dl *DrawList) featheringFor(b Brush) float32 {
	if b.Antialias {
		return dl.feathering
	}
	return 0
}

// strokeFor closes the stroke of closed contours so they have no seam.
func strokeFor(s StrokeStyle, closed bool) StrokeStyle {
	if closed {
		s.Cap = CapJoint
	}
	return s
}

// AddQuad fills and strokes a quad. With textured set the texture is
// stretched over the quad's bounds.
func (dl *DrawList) AddQuad(q Quad, b Brush, textured bool) {
	dl.scratch.Reset()
	if q.Corners.IsZero() {
		dl.scratch.Rect(q.Rect)
	} else {
		dl.scratch.RoundRect(q.Rect, q.Corners)
	}
	dl.addConvex(q.Rect, b, textured)
}

// AddCircle fills and strokes a circle.
func (dl *DrawList) AddCircle(c Circle, b Brush, textured bool) {
	dl.scratch.Reset()
	dl.scratch.Circle(c.Center, c.Radius)
	dl.addConvex(c.Bounds(), b, textured)
}

func (dl *DrawList) addConvex(bounds geom.Rect, b Brush, textured bool) {
	g := dl.scratch.Flatten(dl.tolerance)
	if len(g.Contours) == 0 {
		vglog.Logger().Warn("paint: shape has no contour")
		return
	}
	pts := g.ContourPoints(0)
	var uv UVFunc
	if textured {
		uv = BoundsUV(bounds)
	}
	dl.emit(func(m *Mesh) {
		FillConvex(m, pts, b.Fill.Color, uv, dl.featheringFor(b))
		StrokePolyline(m, pts, strokeFor(b.Stroke, g.Contours[0].Closed))
	})
}

// AddPath fills every contour of p by ear clipping and strokes it.
func (dl *DrawList) AddPath(p *path.Path2D, b Brush, textured bool) {
	if p == nil {
		return
	}
	var g *path.GeometryPath
	if dl.cache != nil {
		g = dl.cache.Geometry(p)
	} else {
		g = p.Flatten(dl.tolerance)
	}
	dl.AddGeometry(g, b, textured)
}

// AddGeometry fills and strokes already flattened geometry.
func (dl *DrawList) AddGeometry(g *path.GeometryPath, b Brush, textured bool) {
	var uv UVFunc
	if textured {
		uv = BoundsUV(g.Bounds())
	}
	dl.emit(func(m *Mesh) {
		for i, c := range g.Contours {
			pts := g.ContourPoints(i)
			if c.Closed {
				FillConcave(m, pts, b.Fill.Color, uv)
			}
			StrokePolyline(m, pts, strokeFor(b.Stroke, c.Closed))
		}
	})
}

// AddPrimitive dispatches on the primitive's type.
func (dl *DrawList) AddPrimitive(p Primitive, b Brush, textured bool) {
	switch p := p.(type) {
	case Quad:
		dl.AddQuad(p, b, textured)
	case Circle:
		dl.AddCircle(p, b, textured)
	case PathPrimitive:
		dl.AddPath(p.Path, b, textured)
	default:
		vglog.Logger().Error("paint: unknown primitive", "type", p)
	}
}

// FillRect adds a rectangle as two triangles with UVs spanning the whole
// texture.
func (dl *DrawList) FillRect(r geom.Rect, c Color) {
	if c.IsTransparent() {
		return
	}
	dl.emit(func(m *Mesh) {
		m.Reserve(4, 6)
		base := m.VertexCount()
		m.AddVertex(r.TopLeft(), c, geom.Pt(0, 0))
		m.AddVertex(r.TopRight(), c, geom.Pt(1, 0))
		m.AddVertex(r.BottomLeft(), c, geom.Pt(0, 1))
		m.AddVertex(r.BottomRight(), c, geom.Pt(1, 1))
		m.AddTriangle(base, base+1, base+2)
		m.AddTriangle(base+2, base+1, base+3)
	})
}

// AddTriangleFan adds a fan of triangles; see the package-level function.
func (dl *DrawList) AddTriangleFan(c Color, connectTo, origin, start, end geom.Point, clockwise bool) {
	dl.emit(func(m *Mesh) {
		AddTriangleFan(m, c, connectTo, origin, start, end, clockwise)
	})
}

// Build returns the accumulated mesh and leaves the draw list empty.
func (dl *DrawList) Build() Mesh {
	m := dl.mesh
	dl.mesh = Mesh{}
	return m
}

// Reset discards the accumulated geometry.
func (dl *DrawList) Reset() {
	dl.mesh.Clear()
}
