package scene

import (
	"iter"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/internal/vglog"
	"github.com/gogpu/vg/paint"
)

// resolved is an instruction whose texture reference has been turned into
// a physical texture.
type resolved struct {
	in      *Instruction
	texture paint.RenderTexture
	info    atlas.TextureInfo
	user    bool
}

// group is the draw list collecting every instruction of one batch.
type group struct {
	texture paint.RenderTexture
	dl      *paint.DrawList
	count   int
}

// resolve looks up the physical texture of in. It reports false when the
// instruction's atlas key is not in infos.
func resolve(in *Instruction, infos atlas.InfoMap) (resolved, bool) {
	if id, ok := in.Texture.User(); ok {
		return resolved{in: in, texture: paint.UserRenderTexture(id), user: true}, true
	}
	info, ok := infos[in.Texture.Key()]
	if !ok {
		return resolved{}, false
	}
	return resolved{in: in, texture: paint.AtlasRenderTexture(info.Texture), info: info}, true
}

// Batches tessellates the scene into one mesh per batch, using infos to
// resolve atlas keys. infos is normally built from RequiredKeys by the
// atlas manager. Instructions whose key is missing from infos are dropped
// and logged.
//
// Every UV is remapped into atlas space, so untextured geometry samples the
// reserved white tile. Meshes with no geometry are omitted.
func (s *Scene) Batches(infos atlas.InfoMap) []paint.Mesh {
	var meshes []paint.Mesh
	for m := range s.BatchesSeq(infos) {
		meshes = append(meshes, m)
	}
	return meshes
}

// BatchesSeq is like Batches but yields the meshes one at a time.
func (s *Scene) BatchesSeq(infos atlas.InfoMap) iter.Seq[paint.Mesh] {
	return func(yield func(paint.Mesh) bool) {
		groups := s.group(infos)
		defer func() {
			for _, g := range groups {
				s.pool.Put(g.dl)
			}
		}()

		for i, g := range groups {
			m := g.dl.Build()
			if m.IsEmpty() {
				continue
			}
			m.Texture = g.texture
			vglog.Logger().Debug("scene: batch",
				"index", i,
				"texture", g.texture.String(),
				"instructions", g.count,
				"vertices", len(m.Vertices),
				"indices", len(m.Indices))
			if !yield(m) {
				return
			}
		}
	}
}

// group tessellates every instruction into the draw list of its batch.
func (s *Scene) group(infos atlas.InfoMap) []*group {
	var groups []*group
	index := make(map[paint.RenderTexture]*group)
	dropped := 0

	for i := range s.instructions {
		in := &s.instructions[i]
		r, ok := resolve(in, infos)
		if !ok {
			dropped++
			vglog.Logger().Error("scene: texture info missing, dropping instruction",
				"index", i, "texture", in.Texture.String())
			continue
		}

		var g *group
		switch s.opts.Mode {
		case BatchStrict:
			if n := len(groups); n > 0 && groups[n-1].texture == r.texture {
				g = groups[n-1]
			}
		default:
			g = index[r.texture]
		}
		if g == nil {
			g = &group{texture: r.texture, dl: s.pool.Get()}
			groups = append(groups, g)
			index[r.texture] = g
		}
		g.count++
		tessellate(g.dl, r)
	}

	if dropped > 0 {
		vglog.Logger().Warn("scene: dropped instructions", "count", dropped, "total", len(s.instructions))
	}
	return groups
}

// tessellate adds one instruction to dl, remapping its UVs into the tile
// of its atlas texture.
func tessellate(dl *paint.DrawList, r resolved) {
	if !r.user {
		info := r.info
		dl.SetMiddleware(func(v *paint.Vertex) {
			v.UV.X, v.UV.Y = info.UVToAtlasSpace(v.UV.X, v.UV.Y)
		})
	} else {
		dl.SetMiddleware(nil)
	}
	dl.AddPrimitive(r.in.Primitive, r.in.Brush, !r.in.Texture.IsWhite())
	dl.SetMiddleware(nil)
}
