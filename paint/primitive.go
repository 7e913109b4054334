package paint

import (
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/path"
)

// Primitive is a shape that a DrawList can tessellate: Quad, Circle or
// PathPrimitive.
type Primitive interface {
	// Bounds returns the shape's bounding rectangle before stroking.
	Bounds() geom.Rect
	isPrimitive()
}

// Quad is a rectangle, optionally with rounded corners.
type Quad struct {
	Rect    geom.Rect
	Corners geom.Corners
}

// NewQuad returns a sharp-cornered quad.
func NewQuad(x, y, w, h float32) Quad {
	return Quad{Rect: geom.NewRect(x, y, w, h)}
}

// WithCorners returns a copy of the quad with corner radii.
func (q Quad) WithCorners(c geom.Corners) Quad {
	q.Corners = c
	return q
}

// Bounds implements Primitive.
func (q Quad) Bounds() geom.Rect { return q.Rect }

func (Quad) isPrimitive() {}

// Circle is a circle given by center and radius.
type Circle struct {
	Center geom.Point
	Radius float32
}

// Bounds implements Primitive.
func (c Circle) Bounds() geom.Rect {
	return geom.NewRect(c.Center.X-c.Radius, c.Center.Y-c.Radius, 2*c.Radius, 2*c.Radius)
}

func (Circle) isPrimitive() {}

// PathPrimitive is an arbitrary path. Each contour is filled by ear
// clipping and stroked; closed contours are stroked without caps.
type PathPrimitive struct {
	Path *path.Path2D
}

// Bounds implements Primitive. It flattens the path, so callers that draw
// the path should prefer the cached geometry.
func (p PathPrimitive) Bounds() geom.Rect {
	if p.Path == nil {
		return geom.Rect{}
	}
	return p.Path.Flatten(0).Bounds()
}

func (PathPrimitive) isPrimitive() {}
