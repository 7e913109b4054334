package geom

// Corners holds per-corner radii of a rounded rectangle.
type Corners struct {
	TopLeft     float32
	TopRight    float32
	BottomLeft  float32
	BottomRight float32
}

// UniformCorners returns corners that all share radius r.
func UniformCorners(r float32) Corners {
	return Corners{TopLeft: r, TopRight: r, BottomLeft: r, BottomRight: r}
}

// IsZero reports whether every radius is zero or negative.
func (c Corners) IsZero() bool {
	return c.TopLeft <= 0 && c.TopRight <= 0 && c.BottomLeft <= 0 && c.BottomRight <= 0
}

// Clamped returns radii scaled so that adjacent radii never exceed the side
// they share and no radius is negative.
func (c Corners) Clamped(size Size) Corners {
	out := Corners{
		TopLeft:     max(c.TopLeft, 0),
		TopRight:    max(c.TopRight, 0),
		BottomLeft:  max(c.BottomLeft, 0),
		BottomRight: max(c.BottomRight, 0),
	}
	scale := float32(1)
	fit := func(a, b, side float32) {
		if sum := a + b; sum > side && sum > 0 {
			scale = min(scale, side/sum)
		}
	}
	fit(out.TopLeft, out.TopRight, size.Width)
	fit(out.BottomLeft, out.BottomRight, size.Width)
	fit(out.TopLeft, out.BottomLeft, size.Height)
	fit(out.TopRight, out.BottomRight, size.Height)
	if scale < 1 {
		out.TopLeft *= scale
		out.TopRight *= scale
		out.BottomLeft *= scale
		out.BottomRight *= scale
	}
	return out
}
