// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws batched meshes with one scissored, indexed draw call
// per mesh.
//
// A frame has three steps:
//
//	if err := r.Prepare(items); err != nil { ... } // stage vertex and index data
//	err := r.Render(pass, items)                     // record draws into an open pass
//	r.End()                                          // drop the staged ranges
//
// Render must be given the same items that were prepared. The renderer is
// not safe for concurrent use.
package render

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/gpu"
	"github.com/gogpu/vg/internal/vglog"
	"github.com/gogpu/vg/paint"
)

//go:embed shaders/scene.wgsl
var sceneShaderSource string

// SceneShaderSource returns the WGSL source of the scene pipeline.
func SceneShaderSource() string { return sceneShaderSource }

// globalsSize is the size of the globals uniform: one mat4x4<f32>.
const globalsSize = 16 * 4

// TextureSource resolves atlas textures to GPU textures. *atlas.Manager
// implements it.
type TextureSource interface {
	GPUTexture(id atlas.TextureID) (gpu.TextureID, bool)
}

// Renderable is a mesh and the clip rectangle, in logical pixels, it is
// drawn with.
type Renderable struct {
	Clip geom.Rect
	Mesh paint.Mesh
}

// Renderer owns the scene pipeline, the projection uniform, the frame's
// vertex and index buffers and one texture bind group per registered
// texture.
type Renderer struct {
	device   gpu.Device
	textures TextureSource
	cfg      Config

	width, height uint32

	pipeline    gpu.PipelineID
	globals     gpu.BufferID
	globalsBind gpu.BindGroupID
	globalsSync bool

	vertices *batchBuffer
	indices  *batchBuffer

	bindings map[paint.RenderTexture]binding
	closed   bool
}

// binding is a texture bind group and the GPU texture it samples.
type binding struct {
	group   gpu.BindGroupID
	texture gpu.TextureID
}

// New creates a renderer drawing into a screen of cfg.Width by
// cfg.Height. textures resolves atlas textures when they are registered.
func New(device gpu.Device, textures TextureSource, cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		device:   device,
		textures: textures,
		cfg:      cfg,
		width:    cfg.Width,
		height:   cfg.Height,
		bindings: make(map[paint.RenderTexture]binding),
	}
	if err := r.init(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init() error {
	var err error
	r.pipeline, err = r.device.CreatePipeline(gpu.PipelineDescriptor{
		Label:        "vg_scene",
		WGSL:         sceneShaderSource,
		VertexStride: paint.VertexSize,
		Attributes: []gpu.VertexAttribute{
			{Location: 0, Offset: 0, Components: 2},
			{Location: 1, Offset: 8, Components: 2},
			{Location: 2, Offset: 16, Components: 4},
		},
		TargetFormat: r.cfg.TargetFormat,
	})
	if err != nil {
		return fmt.Errorf("render: create scene pipeline: %w", err)
	}

	r.globals, err = r.device.CreateBuffer("vg_globals", globalsSize, gpu.BufferUsageUniform)
	if err != nil {
		return fmt.Errorf("render: create globals: %w", err)
	}
	r.globalsBind, err = r.device.CreateUniformBinding(r.globals)
	if err != nil {
		return fmt.Errorf("render: bind globals: %w", err)
	}
	if err := r.syncGlobals(); err != nil {
		return err
	}

	r.vertices, err = newBatchBuffer(r.device, "vg_vertices", gpu.BufferUsageVertex,
		uint64(r.cfg.InitialVertices)*paint.VertexSize)
	if err != nil {
		return err
	}
	r.indices, err = newBatchBuffer(r.device, "vg_indices", gpu.BufferUsageIndex,
		uint64(r.cfg.InitialIndices)*indexSize)
	return err
}

// Size returns the logical screen size.
func (r *Renderer) Size() (width, height uint32) { return r.width, r.height }

// Resize changes the screen size. The projection is uploaded on the next
// Render.
func (r *Renderer) Resize(width, height uint32) {
	if width == 0 || height == 0 || (width == r.width && height == r.height) {
		return
	}
	r.width, r.height = width, height
	r.globalsSync = false
}

// projection maps logical pixels, y down, to clip space. The matrix is
// column-major as WGSL expects.
func projection(width, height uint32) [16]float32 {
	sx := 2 / float32(width)
	sy := -2 / float32(height)
	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

func (r *Renderer) syncGlobals() error {
	if r.globalsSync {
		return nil
	}
	var data [globalsSize]byte
	for i, f := range projection(r.width, r.height) {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(f))
	}
	if err := r.device.WriteBuffer(r.globals, 0, data[:]); err != nil {
		return fmt.Errorf("render: write globals: %w", err)
	}
	r.globalsSync = true
	return nil
}

// RegisterAtlasTexture creates the bind group of an atlas texture. It is a
// no-op when the texture is already registered against the same GPU
// texture. A dropped atlas texture whose slot was reused by a new one is
// bound again; one that is gone loses its bind group.
func (r *Renderer) RegisterAtlasTexture(id atlas.TextureID) error {
	key := paint.AtlasRenderTexture(id)
	tex, ok := r.textures.GPUTexture(id)
	if !ok {
		r.UnregisterTexture(key)
		return fmt.Errorf("%w: %v", ErrUnknownTexture, id)
	}
	if b, ok := r.bindings[key]; ok {
		if b.texture == tex {
			return nil
		}
		r.UnregisterTexture(key)
	}
	return r.bind(key, tex)
}

// RegisterUserTexture creates the bind group of an application texture. It
// is a no-op when the texture is already registered.
func (r *Renderer) RegisterUserTexture(id gpu.TextureID) error {
	key := paint.UserRenderTexture(id)
	if _, ok := r.bindings[key]; ok {
		return nil
	}
	return r.bind(key, id)
}

func (r *Renderer) bind(key paint.RenderTexture, tex gpu.TextureID) error {
	if r.closed {
		return ErrClosed
	}
	bg, err := r.device.CreateTextureBinding(tex)
	if err != nil {
		return fmt.Errorf("render: bind texture %v: %w", key, err)
	}
	r.bindings[key] = binding{group: bg, texture: tex}
	vglog.Logger().Debug("render: texture registered", "texture", key.String())
	return nil
}

// RegisterTextures registers every atlas texture used by items. Failures
// are logged; the affected meshes are skipped by Render.
func (r *Renderer) RegisterTextures(items []Renderable) {
	for i := range items {
		t := items[i].Mesh.Texture
		if t.IsUser() {
			continue
		}
		if err := r.RegisterAtlasTexture(t.Atlas); err != nil {
			vglog.Logger().Error("render: register atlas texture", "texture", t.String(), "err", err)
		}
	}
}

// UnregisterTexture releases the bind group of t, for instance after the
// atlas dropped the texture.
func (r *Renderer) UnregisterTexture(t paint.RenderTexture) {
	if b, ok := r.bindings[t]; ok {
		r.device.DestroyBindGroup(b.group)
		delete(r.bindings, t)
	}
}

// Prepare stages the vertex and index data of items. Each mesh is written
// contiguously and its byte range recorded for Render.
func (r *Renderer) Prepare(items []Renderable) error {
	if r.closed {
		return ErrClosed
	}
	r.vertices.reset()
	r.indices.reset()

	var vertexCount, indexCount uint64
	for i := range items {
		vertexCount += uint64(len(items[i].Mesh.Vertices))
		indexCount += uint64(len(items[i].Mesh.Indices))
	}
	if err := r.vertices.reserve(r.device, vertexCount*paint.VertexSize); err != nil {
		return err
	}
	if err := r.indices.reserve(r.device, indexCount*indexSize); err != nil {
		return err
	}

	for i := range items {
		m := &items[i].Mesh
		start := uint64(len(r.vertices.staging))
		r.vertices.staging = appendVertices(r.vertices.staging, m.Vertices)
		r.vertices.slices = append(r.vertices.slices, byteRange{start, uint64(len(r.vertices.staging))})

		start = uint64(len(r.indices.staging))
		r.indices.staging = appendIndices(r.indices.staging, m.Indices)
		r.indices.slices = append(r.indices.slices, byteRange{start, uint64(len(r.indices.staging))})
	}

	if err := r.vertices.flush(r.device); err != nil {
		return err
	}
	return r.indices.flush(r.device)
}

// Render records one draw per item into pass. Each draw is scissored to
// the item's clip intersected with the screen; items with an empty scissor
// or an unregistered texture are skipped. The scissor is reset to the full
// screen afterwards.
//
// Render panics if items holds more meshes than the last Prepare staged.
func (r *Renderer) Render(pass gpu.Pass, items []Renderable) error {
	if r.closed {
		return ErrClosed
	}
	if err := r.syncGlobals(); err != nil {
		return err
	}
	if len(items) > len(r.vertices.slices) || len(items) > len(r.indices.slices) {
		panic(fmt.Sprintf("render: %d renderables but only %d staged", len(items), len(r.vertices.slices)))
	}

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.globalsBind)

	drawn := 0
	for i := range items {
		it := &items[i]
		vs, is := r.vertices.slices[i], r.indices.slices[i]
		if len(it.Mesh.Indices) == 0 {
			continue
		}
		sc := it.Clip.Scissor(r.width, r.height)
		if sc.Width == 0 || sc.Height == 0 {
			continue
		}
		b, ok := r.bindings[it.Mesh.Texture]
		if !ok {
			vglog.Logger().Error("render: texture not registered, skipping mesh",
				"texture", it.Mesh.Texture.String(), "index", i)
			continue
		}

		pass.SetScissorRect(sc.X, sc.Y, sc.Width, sc.Height)
		pass.SetBindGroup(1, b.group)
		pass.SetVertexBuffer(0, r.vertices.id, vs.start)
		pass.SetIndexBuffer(r.indices.id, is.start)
		pass.DrawIndexed(uint32((is.end - is.start) / indexSize)) //nolint:gosec // bounded by mesh size
		drawn++
	}
	pass.SetScissorRect(0, 0, r.width, r.height)

	vglog.Logger().Debug("render: frame", "renderables", len(items), "draws", drawn)
	return nil
}

// End discards the staged ranges of the frame.
func (r *Renderer) End() {
	r.vertices.reset()
	r.indices.reset()
}

// Stats describes the renderer's GPU resources.
type Stats struct {
	VertexCapacity uint64
	IndexCapacity  uint64
	Textures       int
}

// Stats returns the current buffer capacities in bytes and the number of
// registered textures.
func (r *Renderer) Stats() Stats {
	return Stats{
		VertexCapacity: r.vertices.capacity,
		IndexCapacity:  r.indices.capacity,
		Textures:       len(r.bindings),
	}
}

// Close releases every GPU resource. The renderer must not be used
// afterwards.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for t, b := range r.bindings {
		r.device.DestroyBindGroup(b.group)
		delete(r.bindings, t)
	}
	if r.vertices != nil {
		r.vertices.destroy(r.device)
	}
	if r.indices != nil {
		r.indices.destroy(r.device)
	}
	if r.globalsBind != gpu.InvalidID {
		r.device.DestroyBindGroup(r.globalsBind)
	}
	if r.globals != gpu.InvalidID {
		r.device.DestroyBuffer(r.globals)
	}
	if r.pipeline != gpu.InvalidID {
		r.device.DestroyPipeline(r.pipeline)
	}
}
