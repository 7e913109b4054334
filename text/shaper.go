package text

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/vg/internal/vglog"
)

// ShapedGlyph is one positioned glyph. X and Y are relative to the pen
// origin of the shaped string, y down.
type ShapedGlyph struct {
	GID      uint16
	Cluster  int
	X, Y     float32
	XAdvance float32
}

// Shaping cache defaults.
const (
	DefaultShapeCacheSize = 512
	DefaultShapeCacheTTL  = 5 * time.Minute
)

type shapeKey struct {
	face uint64
	text string
	size float32
}

// Shaper turns strings into glyphs. Results are cached per face, string and
// size; entries expire after a fixed time so one-off strings do not pin
// memory. A Shaper is safe for concurrent use.
type Shaper struct {
	cache *expirable.LRU[shapeKey, []ShapedGlyph]

	// HarfbuzzShaper keeps scratch buffers and is not safe for concurrent
	// use.
	pool sync.Pool

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewShaper returns a shaper caching up to size results for ttl.
func NewShaper(size int, ttl time.Duration) *Shaper {
	if size <= 0 {
		size = DefaultShapeCacheSize
	}
	return &Shaper{
		cache: expirable.NewLRU[shapeKey, []ShapedGlyph](size, nil, ttl),
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

var defaultShaper = sync.OnceValue(func() *Shaper {
	return NewShaper(DefaultShapeCacheSize, DefaultShapeCacheTTL)
})

// DefaultShaper returns the process-wide shaper used by Face.Shape and
// Layout.
func DefaultShaper() *Shaper { return defaultShaper() }

// Shape shapes s, normalized to NFC, left to right at size pixels per em.
// The returned slice is shared with the cache and must not be modified.
func (s *Shaper) Shape(face *Face, str string, size float32) []ShapedGlyph {
	if face == nil || str == "" || size <= 0 {
		return nil
	}
	str = norm.NFC.String(str)
	key := shapeKey{face: face.id, text: str, size: size}
	if glyphs, ok := s.cache.Get(key); ok {
		s.hits.Add(1)
		return glyphs
	}
	s.misses.Add(1)

	runes := []rune(str)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(face.shaping),
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	glyphs := convertGlyphs(out.Glyphs)
	s.cache.Add(key, glyphs)
	vglog.Logger().Debug("text: shaped", "face", face.id, "runes", len(runes), "glyphs", len(glyphs))
	return glyphs
}

// ShaperStats reports cache effectiveness.
type ShaperStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Stats returns the cache counters.
func (s *Shaper) Stats() ShaperStats {
	return ShaperStats{Hits: s.hits.Load(), Misses: s.misses.Load(), Entries: s.cache.Len()}
}

// Purge empties the cache.
func (s *Shaper) Purge() { s.cache.Purge() }

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func convertGlyphs(glyphs []shaping.Glyph) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}
	result := make([]ShapedGlyph, len(glyphs))
	var x float32
	for i, g := range glyphs {
		adv := fromFixed(g.Advance)
		result[i] = ShapedGlyph{
			GID:      uint16(g.GlyphID), //nolint:gosec // sfnt glyph indices are 16-bit
			Cluster:  g.TextIndex(),
			X:        x + fromFixed(g.XOffset),
			Y:        -fromFixed(g.YOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return result
}
