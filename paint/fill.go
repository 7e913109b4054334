package paint

import (
	"github.com/mmp/earcut-go"

	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/internal/vglog"
)

// UVFunc maps a position to a local texture coordinate in [0,1]x[0,1].
type UVFunc func(geom.Point) geom.Point

// BoundsUV returns a UVFunc that stretches bounds over the whole texture.
// Empty bounds map everything to the origin.
func BoundsUV(bounds geom.Rect) UVFunc {
	lo := bounds.Min()
	w, h := bounds.Size.Width, bounds.Size.Height
	return func(p geom.Point) geom.Point {
		var uv geom.Point
		if w > 0 {
			uv.X = (p.X - lo.X) / w
		}
		if h > 0 {
			uv.Y = (p.Y - lo.Y) / h
		}
		return uv
	}
}

func whiteUV(geom.Point) geom.Point { return WhiteUV }

// ring returns pts without the trailing copies of the first point that
// closed contours carry.
func ring(pts []geom.Point) []geom.Point {
	for len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// FillConvex fills a convex polygon. Without feathering it emits one vertex
// per point and a fan of len(pts)-2 triangles anchored at the first point.
// With feathering > 0 every point gets an inner vertex in the fill color
// and an outer vertex, feathering units further out, that fades to
// transparent.
//
// The points must be in clockwise order on a y-down canvas, the order the
// path builder emits shapes in. A closing copy of the first point is
// ignored. A nil uv samples the white texture.
func FillConvex(m *Mesh, pts []geom.Point, c Color, uv UVFunc, feathering float32) {
	pts = ring(pts)
	n := uint32(len(pts))
	if n < 3 || c.IsTransparent() {
		return
	}
	if uv == nil {
		uv = whiteUV
	}

	if feathering <= 0 {
		m.Reserve(int(n), int(n-2)*3)
		base := m.VertexCount()
		for _, p := range pts {
			m.AddVertex(p, c, uv(p))
		}
		for i := uint32(2); i < n; i++ {
			m.AddTriangle(base, base+i-1, base+i)
		}
		return
	}

	out := c.WithAlpha(0)
	m.Reserve(int(2*n), int(3*n)*2)
	inner := m.VertexCount()
	outer := inner + 1

	for i := uint32(2); i < n; i++ {
		m.AddTriangle(inner+2*(i-1), inner, inner+2*i)
	}

	// edgeNormal(i) is the outward normal of the edge ending at point i.
	edgeNormal := func(i uint32) geom.Point {
		prev := pts[(i+n-1)%n]
		return pts[i].Sub(prev).Normalize().Rot90()
	}
	for i := range n {
		dm := edgeNormal(i).Add(edgeNormal((i + 1) % n)).Mul(0.5 * feathering * 0.5)
		pin := pts[i].Sub(dm)
		pout := pts[i].Add(dm)
		m.AddVertex(pin, c, uv(pin))
		m.AddVertex(pout, out, uv(pout))
	}
	for i1 := range n {
		i0 := (i1 + n - 1) % n
		m.AddTriangle(inner+2*i1, inner+2*i0, outer+2*i0)
		m.AddTriangle(outer+2*i0, outer+2*i1, inner+2*i1)
	}
}

// FillConcave fills an arbitrary simple polygon by ear clipping. A closing
// copy of the first point is ignored. A nil uv samples the white texture.
func FillConcave(m *Mesh, pts []geom.Point, c Color, uv UVFunc) {
	pts = ring(pts)
	if len(pts) < 3 || c.IsTransparent() {
		return
	}
	if uv == nil {
		uv = whiteUV
	}

	verts := make([]earcut.Vertex, len(pts))
	index := make(map[[2]float64]uint32, len(pts))
	base := m.VertexCount()
	for i, p := range pts {
		verts[i].P = [2]float64{float64(p.X), float64(p.Y)}
		if _, ok := index[verts[i].P]; !ok {
			index[verts[i].P] = base + uint32(i)
		}
	}

	tris := earcut.Triangulate(earcut.Polygon{Rings: [][]earcut.Vertex{verts}})
	if len(tris) == 0 {
		vglog.Logger().Warn("paint: polygon could not be triangulated", "points", len(pts))
		return
	}

	m.Reserve(len(pts), 3*len(tris))
	for _, p := range pts {
		m.AddVertex(p, c, uv(p))
	}
	for _, tri := range tris {
		var idx [3]uint32
		for k, v := range tri.Vertices {
			i, ok := index[v.P]
			if !ok {
				vglog.Logger().Error("paint: triangulation returned unknown vertex", "x", v.P[0], "y", v.P[1])
				return
			}
			idx[k] = i
		}
		m.AddTriangle(idx[0], idx[1], idx[2])
	}
}
