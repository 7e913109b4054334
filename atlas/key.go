package atlas

import (
	"fmt"

	"github.com/gogpu/vg/gpu"
)

// Kind is the format class of an atlas texture.
type Kind uint8

const (
	// KindMask textures hold 8-bit coverage (R8Unorm), used for glyphs.
	KindMask Kind = iota
	// KindColor textures hold RGBA8 pixels, used for images and emoji.
	KindColor
)

// Format returns the GPU format used for textures of this kind.
func (k Kind) Format() gpu.TextureFormat {
	if k == KindMask {
		return gpu.FormatR8Unorm
	}
	return gpu.FormatRGBA8Unorm
}

// BytesPerPixel returns the texel size for this kind.
func (k Kind) BytesPerPixel() int {
	return k.Format().BytesPerPixel()
}

// String returns the kind name.
func (k Kind) String() string {
	if k == KindMask {
		return "mask"
	}
	return "color"
}

// GlyphID identifies a rasterized glyph: font, glyph index and the size and
// scale it was rasterized at.
type GlyphID struct {
	Font  uint64
	Glyph uint32
	Size  float32
	Scale float32
}

// ImageID identifies an application image.
type ImageID uint64

type keyType uint8

const (
	keyWhite keyType = iota
	keyGlyph
	keyImage
)

// Key identifies a bitmap that lives in the atlas. Keys are comparable and
// usable as map keys. The zero Key is the white key.
type Key struct {
	typ   keyType
	emoji bool
	glyph GlyphID
	image ImageID
}

// GlyphKey returns the key of a glyph bitmap. Emoji glyphs are stored in
// color textures, all others in mask textures.
func GlyphKey(g GlyphID, emoji bool) Key {
	return Key{typ: keyGlyph, glyph: g, emoji: emoji}
}

// ImageKey returns the key of an application image.
func ImageKey(id ImageID) Key {
	return Key{typ: keyImage, image: id}
}

// WhiteKey returns the key of the reserved 1x1 opaque white tile sampled by
// untextured geometry.
func WhiteKey() Key {
	return Key{typ: keyWhite}
}

// Kind returns the format class the key's bitmap is stored in.
func (k Key) Kind() Kind {
	if k.typ == keyGlyph && !k.emoji {
		return KindMask
	}
	return KindColor
}

// Glyph returns the glyph identity and whether k is a glyph key.
func (k Key) Glyph() (GlyphID, bool) {
	return k.glyph, k.typ == keyGlyph
}

// Image returns the image identity and whether k is an image key.
func (k Key) Image() (ImageID, bool) {
	return k.image, k.typ == keyImage
}

// IsWhite reports whether k is the white key.
func (k Key) IsWhite() bool { return k.typ == keyWhite }

// String returns a readable form of the key.
func (k Key) String() string {
	switch k.typ {
	case keyGlyph:
		return fmt.Sprintf("glyph(font=%d gid=%d size=%g scale=%g emoji=%t)",
			k.glyph.Font, k.glyph.Glyph, k.glyph.Size, k.glyph.Scale, k.emoji)
	case keyImage:
		return fmt.Sprintf("image(%d)", k.image)
	default:
		return "white"
	}
}

// TextureID identifies a physical atlas texture: its kind and slot.
type TextureID struct {
	Kind Kind
	Slot int
}

// String returns a readable form of the texture ID.
func (id TextureID) String() string {
	return fmt.Sprintf("%s#%d", id.Kind, id.Slot)
}

// TileID is a monotonically increasing tile identity.
type TileID uint64

// Tile is an allocated region of an atlas texture. Tiles are never moved or
// resized and live as long as their texture.
type Tile struct {
	ID      TileID
	Texture TextureID
	Bounds  Rect
}

// TextureInfo is what the batcher needs to remap UVs into a tile.
type TextureInfo struct {
	Texture     TextureID
	Bounds      Rect
	AtlasWidth  int
	AtlasHeight int
}

// UVToAtlasSpace maps a local (u, v) in [0,1]x[0,1] into the tile's region of
// the atlas, normalized by the atlas size.
func (ti TextureInfo) UVToAtlasSpace(u, v float32) (float32, float32) {
	x := (float32(ti.Bounds.X) + u*float32(ti.Bounds.Width)) / float32(ti.AtlasWidth)
	y := (float32(ti.Bounds.Y) + v*float32(ti.Bounds.Height)) / float32(ti.AtlasHeight)
	return x, y
}

// InfoMap resolves atlas keys to their texture info.
type InfoMap map[Key]TextureInfo

// Bitmap is the pixel data of a tile, rows tightly packed. Pixels holds
// Width*Height*BytesPerPixel bytes for the key's kind.
type Bitmap struct {
	Width  int
	Height int
	Pixels []byte
}

// TextureDescriptor describes a live atlas texture for binding.
type TextureDescriptor struct {
	ID     TextureID
	GPU    gpu.TextureID
	Width  int
	Height int
}
