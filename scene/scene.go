package scene

import (
	"iter"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/paint"
	"github.com/gogpu/vg/path"
)

// Instruction is one shape to draw: what, with which brush, sampling which
// texture. Instructions are immutable once added to a scene.
type Instruction struct {
	Primitive paint.Primitive
	Brush     paint.Brush
	Texture   paint.TextureRef
}

// NewInstruction returns an untextured instruction.
func NewInstruction(p paint.Primitive, b paint.Brush) Instruction {
	return Instruction{Primitive: p, Brush: b}
}

// WithTexture returns a copy of the instruction sampling tex.
func (in Instruction) WithTexture(tex paint.TextureRef) Instruction {
	in.Texture = tex
	return in
}

// Scene accumulates the instructions of one frame and converts them into
// meshes batched by texture.
//
// A Scene is not safe for concurrent use.
type Scene struct {
	instructions []Instruction
	opts         Options
	pool         *DrawListPool
}

// New returns an empty scene. Invalid options fall back to
// DefaultOptions. Path primitives read their geometry through cache when
// it is not nil.
func New(opts Options, cache *path.Cache) *Scene {
	if opts.Validate() != nil {
		opts = DefaultOptions()
	}
	return &Scene{
		instructions: make([]Instruction, 0, 64),
		opts:         opts,
		pool:         NewDrawListPool(opts, cache),
	}
}

// Options returns the scene's options.
func (s *Scene) Options() Options { return s.opts }

// Add appends an instruction.
func (s *Scene) Add(in Instruction) {
	s.instructions = append(s.instructions, in)
}

// AddQuad appends an untextured quad.
func (s *Scene) AddQuad(r geom.Rect, corners geom.Corners, b paint.Brush) {
	s.Add(NewInstruction(paint.Quad{Rect: r, Corners: corners}, b))
}

// AddCircle appends an untextured circle.
func (s *Scene) AddCircle(center geom.Point, radius float32, b paint.Brush) {
	s.Add(NewInstruction(paint.Circle{Center: center, Radius: radius}, b))
}

// AddPath appends an untextured path.
func (s *Scene) AddPath(p *path.Path2D, b paint.Brush) {
	s.Add(NewInstruction(paint.PathPrimitive{Path: p}, b))
}

// AddImage appends a quad showing the atlas image stored under key.
func (s *Scene) AddImage(r geom.Rect, key atlas.Key) {
	s.Add(NewInstruction(paint.Quad{Rect: r}, paint.Filled(paint.White)).
		WithTexture(paint.AtlasTexture(key)))
}

// Extend appends all instructions of other.
func (s *Scene) Extend(other *Scene) {
	s.instructions = append(s.instructions, other.instructions...)
}

// Len returns the number of instructions.
func (s *Scene) Len() int { return len(s.instructions) }

// Instructions returns the recorded instructions. The slice must not be
// modified.
func (s *Scene) Instructions() []Instruction { return s.instructions }

// Clear empties the scene and returns the instructions it held.
func (s *Scene) Clear() []Instruction {
	old := s.instructions
	s.instructions = make([]Instruction, 0, cap(old))
	return old
}

// RequiredKeys yields every atlas key the instructions sample, once each,
// in order of first use. User textures are skipped; the white key is
// included when any instruction is untextured.
func (s *Scene) RequiredKeys() iter.Seq[atlas.Key] {
	return func(yield func(atlas.Key) bool) {
		seen := make(map[atlas.Key]struct{})
		for _, in := range s.instructions {
			if _, ok := in.Texture.User(); ok {
				continue
			}
			key := in.Texture.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if !yield(key) {
				return
			}
		}
	}
}
