// Package text shapes strings into positioned glyphs, rasterizes glyph
// coverage masks and lays glyph runs out for a scene.
//
// Shaping uses the HarfBuzz port in go-text/typesetting; glyph outlines and
// metrics come from golang.org/x/image/font/sfnt.
//
// Usage:
//
//	face, err := text.LoadFace(goregular.TTF)
//	if err != nil {
//		return err
//	}
//	run, err := text.Layout(atlasManager, face, "Hello", 16, geom.Pt(10, 30), paint.Black)
//	if err != nil {
//		return err
//	}
//	sc.AddGlyphRun(run)
package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for non-positive font sizes.
	ErrInvalidSize = errors.New("text: font size must be positive")
)

var lastFaceID atomic.Uint64

// Face is a parsed font. A Face is safe for concurrent use.
type Face struct {
	id   uint64
	name string
	sfnt *sfnt.Font
	// shaping holds the go-text view of the same data. font.Font is
	// read-only; per-call font.Face values are derived from it.
	shaping *font.Font
}

// LoadFace parses TrueType or OpenType data.
func LoadFace(data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	gt, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}
	name, err := sf.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		name = ""
	}
	return &Face{
		id:      lastFaceID.Add(1),
		name:    name,
		sfnt:    sf,
		shaping: gt.Font,
	}, nil
}

// ID returns an identifier unique to this face within the process. It is
// the Font field of the face's atlas glyph keys.
func (f *Face) ID() uint64 { return f.id }

// Name returns the font family name, or "" if the font has none.
func (f *Face) Name() string { return f.name }

// NumGlyphs returns the number of glyphs in the font.
func (f *Face) NumGlyphs() int { return f.sfnt.NumGlyphs() }

// Metrics holds vertical font metrics in pixels, y down.
type Metrics struct {
	Ascent     float32
	Descent    float32
	LineHeight float32
}

// Metrics returns the font metrics at size pixels per em.
func (f *Face) Metrics(size float32) (Metrics, error) {
	if size <= 0 {
		return Metrics{}, ErrInvalidSize
	}
	var buf sfnt.Buffer
	m, err := f.sfnt.Metrics(&buf, toFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{}, fmt.Errorf("text: metrics: %w", err)
	}
	return Metrics{
		Ascent:     fromFixed(m.Ascent),
		Descent:    fromFixed(m.Descent),
		LineHeight: fromFixed(m.Height),
	}, nil
}

// Shape shapes s at size pixels per em with the default shaper.
func (f *Face) Shape(s string, size float32) []ShapedGlyph {
	return DefaultShaper().Shape(f, s, size)
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
