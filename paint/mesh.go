package paint

import (
	"fmt"
	"slices"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/gpu"
)

// WhiteUV is the local texture coordinate of untextured geometry. It lands
// on the center of the white tile after remapping.
var WhiteUV = geom.Pt(0.5, 0.5)

// VertexSize is the size of an encoded Vertex in bytes: position, UV and
// color as float32s.
const VertexSize = 8 * 4

// Vertex is one mesh vertex.
type Vertex struct {
	Pos   geom.Point
	UV    geom.Point
	Color Color
}

// TextureRef names the texture an instruction samples before it is
// resolved to a physical texture. The zero TextureRef is the white texture.
type TextureRef struct {
	key  atlas.Key
	user gpu.TextureID
}

// WhiteTexture returns the reference used by untextured geometry.
func WhiteTexture() TextureRef { return TextureRef{} }

// AtlasTexture returns a reference to the tile stored under key.
func AtlasTexture(key atlas.Key) TextureRef { return TextureRef{key: key} }

// UserTexture returns a reference to an application-owned GPU texture.
func UserTexture(id gpu.TextureID) TextureRef { return TextureRef{user: id} }

// IsWhite reports whether r is the white texture.
func (r TextureRef) IsWhite() bool { return r.user == gpu.InvalidID && r.key.IsWhite() }

// User returns the user texture and whether r refers to one.
func (r TextureRef) User() (gpu.TextureID, bool) { return r.user, r.user != gpu.InvalidID }

// Key returns the atlas key of an atlas or white reference.
func (r TextureRef) Key() atlas.Key { return r.key }

// String returns a readable form of the reference.
func (r TextureRef) String() string {
	if r.user != gpu.InvalidID {
		return fmt.Sprintf("user(%d)", r.user)
	}
	return r.key.String()
}

// RenderTexture is a physical texture a mesh is drawn with: an atlas
// texture or a user texture.
type RenderTexture struct {
	Atlas atlas.TextureID
	User  gpu.TextureID
}

// AtlasRenderTexture returns the render texture of an atlas texture.
func AtlasRenderTexture(id atlas.TextureID) RenderTexture { return RenderTexture{Atlas: id} }

// UserRenderTexture returns the render texture of a user texture.
func UserRenderTexture(id gpu.TextureID) RenderTexture { return RenderTexture{User: id} }

// IsUser reports whether t is a user texture.
func (t RenderTexture) IsUser() bool { return t.User != gpu.InvalidID }

// String returns a readable form of the texture.
func (t RenderTexture) String() string {
	if t.IsUser() {
		return fmt.Sprintf("user(%d)", t.User)
	}
	return "atlas(" + t.Atlas.String() + ")"
}

// Mesh is an indexed triangle list drawn with a single texture.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Texture  RenderTexture
}

// VertexCount returns the number of vertices as an index value.
func (m *Mesh) VertexCount() uint32 { return uint32(len(m.Vertices)) }

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() uint32 { return uint32(len(m.Indices)) }

// IsEmpty reports whether the mesh has neither vertices nor indices.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 && len(m.Indices) == 0 }

// IsValid reports whether every index refers to an existing vertex.
func (m *Mesh) IsValid() bool {
	n := m.VertexCount()
	for _, i := range m.Indices {
		if i >= n {
			return false
		}
	}
	return true
}

// Reserve grows capacity for n more vertices and k more indices.
func (m *Mesh) Reserve(n, k int) {
	m.Vertices = slices.Grow(m.Vertices, n)
	m.Indices = slices.Grow(m.Indices, k)
}

// AddVertex appends a vertex.
func (m *Mesh) AddVertex(pos geom.Point, c Color, uv geom.Point) {
	m.Vertices = append(m.Vertices, Vertex{Pos: pos, UV: uv, Color: c})
}

// AddTriangle appends three indices.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Append copies o's geometry into m, rebasing its indices.
func (m *Mesh) Append(o *Mesh) {
	base := m.VertexCount()
	m.Vertices = append(m.Vertices, o.Vertices...)
	for _, i := range o.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}

// Clear empties the mesh, keeping its storage.
func (m *Mesh) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}
