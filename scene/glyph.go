package scene

import (
	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/paint"
)

// Glyph is one positioned glyph whose mask is stored in the atlas.
type Glyph struct {
	Key  atlas.Key
	Rect geom.Rect
}

// GlyphRun is a sequence of glyphs drawn in one color.
type GlyphRun struct {
	Glyphs []Glyph
	Color  paint.Color
}

// Bounds returns the union of the glyph rectangles.
func (r GlyphRun) Bounds() geom.Rect {
	var b geom.Rect
	for i, g := range r.Glyphs {
		if i == 0 {
			b = g.Rect
			continue
		}
		b = b.Union(g.Rect)
	}
	return b
}

// AddGlyphRun appends one textured quad per glyph. Glyphs with an empty
// rectangle, such as spaces, are skipped.
func (s *Scene) AddGlyphRun(run GlyphRun) {
	if run.Color.IsTransparent() {
		return
	}
	brush := paint.Filled(run.Color)
	for _, g := range run.Glyphs {
		if g.Rect.IsEmpty() {
			continue
		}
		s.Add(NewInstruction(paint.Quad{Rect: g.Rect}, brush).
			WithTexture(paint.AtlasTexture(g.Key)))
	}
}
