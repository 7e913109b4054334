// Package geom provides the float32 geometry primitives shared by the
// tessellation, batching and rendering packages.
package geom

import "math"

// Point represents a 2D point or vector in canvas space.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div returns the point divided by a scalar.
func (p Point) Div(s float32) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Neg returns the negated vector.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float32 {
	return float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y)))
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float32 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float32 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return p
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Rot90 rotates the vector by 90 degrees counter-clockwise in a y-down
// coordinate system: (x, y) -> (y, -x).
func (p Point) Rot90() Point {
	return Point{X: p.Y, Y: -p.X}
}

// Rotate rotates the vector by angle radians.
func (p Point) Rotate(angle float32) Point {
	s, c := math.Sincos(float64(angle))
	sin, cos := float32(s), float32(c)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Angle returns the unsigned angle between two vectors in [0, π].
func (p Point) Angle(q Point) float32 {
	dot := float64(p.Dot(q))
	det := float64(p.Cross(q))
	return float32(math.Abs(math.Atan2(det, dot)))
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsNaN reports whether either coordinate is NaN.
func (p Point) IsNaN() bool {
	return p.X != p.X || p.Y != p.Y
}

// Array returns the point as a [2]float32, the vertex attribute layout.
func (p Point) Array() [2]float32 {
	return [2]float32{p.X, p.Y}
}
