package paint

import "fmt"

// LineJoin is the shape drawn where two stroke segments meet.
type LineJoin uint8

const (
	// JoinMiter extends the outer edges to their intersection. Sharp angles
	// fall back to JoinBevel.
	JoinMiter LineJoin = iota
	JoinBevel
	JoinRound
)

// String returns the join name.
func (j LineJoin) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinBevel:
		return "bevel"
	case JoinRound:
		return "round"
	default:
		return fmt.Sprintf("LineJoin(%d)", j)
	}
}

// LineCap is the shape of polyline ends.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapSquare
	CapRound
	// CapJoint treats the polyline as closed and joins its last segment to
	// its first instead of drawing caps.
	CapJoint
)

// String returns the cap name.
func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapSquare:
		return "square"
	case CapRound:
		return "round"
	case CapJoint:
		return "joint"
	default:
		return fmt.Sprintf("LineCap(%d)", c)
	}
}

// ParseLineJoin parses a join name as returned by LineJoin.String.
func ParseLineJoin(s string) (LineJoin, error) {
	for j := JoinMiter; j <= JoinRound; j++ {
		if j.String() == s {
			return j, nil
		}
	}
	return 0, fmt.Errorf("paint: unknown line join %q", s)
}

// ParseLineCap parses a cap name as returned by LineCap.String.
func ParseLineCap(s string) (LineCap, error) {
	for c := CapButt; c <= CapJoint; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("paint: unknown line cap %q", s)
}

// FillStyle describes how shape interiors are painted.
type FillStyle struct {
	Color Color
}

// StrokeStyle describes how outlines are painted.
type StrokeStyle struct {
	Color Color
	Width float32
	Join  LineJoin
	Cap   LineCap

	// AllowOverlap lets inner join edges meet outside their segments.
	AllowOverlap bool
}

// DefaultStroke returns a transparent 1-unit stroke with miter joins and
// butt caps.
func DefaultStroke() StrokeStyle {
	return StrokeStyle{Width: 1, Join: JoinMiter, Cap: CapButt}
}

// IsVisible reports whether the stroke draws anything.
func (s StrokeStyle) IsVisible() bool {
	return !s.Color.IsTransparent() && s.Width > 0
}

// WithColor returns a copy of the style with a new color.
func (s StrokeStyle) WithColor(c Color) StrokeStyle {
	s.Color = c
	return s
}

// WithWidth returns a copy of the style with a new width.
func (s StrokeStyle) WithWidth(w float32) StrokeStyle {
	s.Width = w
	return s
}

// WithJoin returns a copy of the style with a new join.
func (s StrokeStyle) WithJoin(j LineJoin) StrokeStyle {
	s.Join = j
	return s
}

// WithCap returns a copy of the style with a new cap.
func (s StrokeStyle) WithCap(c LineCap) StrokeStyle {
	s.Cap = c
	return s
}

// Brush combines fill and stroke styles. The zero Brush paints nothing.
type Brush struct {
	Fill   FillStyle
	Stroke StrokeStyle

	// Antialias enables the feathered fringe on convex fills.
	Antialias bool
}

// Filled returns a brush that fills with c and has no stroke.
func Filled(c Color) Brush {
	return Brush{Fill: FillStyle{Color: c}, Stroke: DefaultStroke()}
}

// Stroked returns a brush that strokes with c at width w and has no fill.
func Stroked(c Color, w float32) Brush {
	return Brush{Stroke: DefaultStroke().WithColor(c).WithWidth(w)}
}

// WithFill returns a copy of the brush with a new fill color.
func (b Brush) WithFill(c Color) Brush {
	b.Fill.Color = c
	return b
}

// WithStroke returns a copy of the brush with a new stroke style.
func (b Brush) WithStroke(s StrokeStyle) Brush {
	b.Stroke = s
	return b
}

// WithAntialias returns a copy of the brush with antialiasing set.
func (b Brush) WithAntialias(on bool) Brush {
	b.Antialias = on
	return b
}
