//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vg/internal/vglog"
)

// textureParamsSize is the byte size of the per-texture uniform.
// Layout: mode (vec4<f32>), x = 1 for single-channel coverage textures.
const textureParamsSize = 16

// HALDevice implements Device on top of gogpu/wgpu/hal.
//
// Thread Safety: HALDevice is safe for concurrent use from multiple goroutines.
// Resource maps are protected by a mutex.
type HALDevice struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue
	target TextureFormat

	nextID atomic.Uint64
	closed bool

	textures   map[TextureID]*halTexture
	buffers    map[BufferID]*halBuffer
	bindGroups map[BindGroupID]*halBindGroup
	pipelines  map[PipelineID]*halPipeline

	// Shared layouts and sampler, created on first use.
	globalsLayout hal.BindGroupLayout
	textureLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	sampler       hal.Sampler
}

type halTexture struct {
	tex  hal.Texture
	view hal.TextureView
	desc TextureDescriptor
}

type halBuffer struct {
	buf  hal.Buffer
	size uint64
}

type halBindGroup struct {
	group  hal.BindGroup
	params hal.Buffer // texture bindings own their params uniform
}

type halPipeline struct {
	shader   hal.ShaderModule
	pipeline hal.RenderPipeline
}

// NewHALDevice wraps a hal device and queue. Pipelines target the given
// color format.
func NewHALDevice(device hal.Device, queue hal.Queue, target TextureFormat) *HALDevice {
	d := &HALDevice{
		device:     device,
		queue:      queue,
		target:     target,
		textures:   make(map[TextureID]*halTexture),
		buffers:    make(map[BufferID]*halBuffer),
		bindGroups: make(map[BindGroupID]*halBindGroup),
		pipelines:  make(map[PipelineID]*halPipeline),
	}
	// Start ID generation at 1 (0 is invalid)
	d.nextID.Store(1)
	return d
}

// newID generates a unique resource ID.
func (d *HALDevice) newID() uint64 {
	return d.nextID.Add(1) - 1
}

// TargetFormat returns the color format pipelines are built for.
func (d *HALDevice) TargetFormat() TextureFormat { return d.target }

// CreateTexture creates a sampled 2D texture and its default view.
func (d *HALDevice) CreateTexture(desc TextureDescriptor) (TextureID, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return InvalidID, fmt.Errorf("gpu: texture dimensions must be positive, got %dx%d", desc.Width, desc.Height)
	}
	format := halFormat(desc.Format)
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst | gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return InvalidID, fmt.Errorf("gpu: create texture %q: %w", desc.Label, err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         desc.Label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return InvalidID, fmt.Errorf("gpu: create texture view %q: %w", desc.Label, err)
	}

	id := TextureID(d.newID())
	d.mu.Lock()
	d.textures[id] = &halTexture{tex: tex, view: view, desc: desc}
	d.mu.Unlock()
	return id, nil
}

// WriteTexture uploads data into a sub-rectangle of the texture.
func (d *HALDevice) WriteTexture(id TextureID, x, y, width, height uint32, data []byte) error {
	d.mu.RLock()
	t, ok := d.textures[id]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("texture %d: %w", id, ErrNotFound)
	}
	if x+width > t.desc.Width || y+height > t.desc.Height {
		return fmt.Errorf("texture %d region %d,%d %dx%d: %w", id, x, y, width, height, ErrOutOfBounds)
	}
	bpp := uint32(t.desc.Format.BytesPerPixel()) //nolint:gosec // 1 or 4
	if uint64(len(data)) < uint64(width)*uint64(height)*uint64(bpp) {
		return fmt.Errorf("texture %d: short pixel data (%d bytes): %w", id, len(data), ErrOutOfBounds)
	}
	if width == 0 || height == 0 {
		return nil
	}
	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: x, Y: y, Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  width * bpp,
			RowsPerImage: height,
		},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)
	return nil
}

// DestroyTexture releases a texture and its view.
func (d *HALDevice) DestroyTexture(id TextureID) {
	d.mu.Lock()
	t, ok := d.textures[id]
	if ok {
		delete(d.textures, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyTextureView(t.view)
		d.device.DestroyTexture(t.tex)
	}
}

// CreateBuffer creates a GPU buffer writable from the CPU.
func (d *HALDevice) CreateBuffer(label string, size uint64, usage BufferUsage) (BufferID, error) {
	if size == 0 {
		return InvalidID, fmt.Errorf("gpu: buffer %q: size must be positive", label)
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: halBufferUsage(usage),
	})
	if err != nil {
		return InvalidID, fmt.Errorf("gpu: create buffer %q: %w", label, err)
	}

	id := BufferID(d.newID())
	d.mu.Lock()
	d.buffers[id] = &halBuffer{buf: buf, size: size}
	d.mu.Unlock()
	return id, nil
}

// WriteBuffer writes data to a buffer at offset.
func (d *HALDevice) WriteBuffer(id BufferID, offset uint64, data []byte) error {
	d.mu.RLock()
	b, ok := d.buffers[id]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("buffer %d: %w", id, ErrNotFound)
	}
	if offset+uint64(len(data)) > b.size {
		return fmt.Errorf("buffer %d write [%d,%d) exceeds %d: %w", id, offset, offset+uint64(len(data)), b.size, ErrOutOfBounds)
	}
	if len(data) > 0 {
		d.queue.WriteBuffer(b.buf, offset, data)
	}
	return nil
}

// DestroyBuffer releases a buffer.
func (d *HALDevice) DestroyBuffer(id BufferID) {
	d.mu.Lock()
	b, ok := d.buffers[id]
	if ok {
		delete(d.buffers, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyBuffer(b.buf)
	}
}

// CreateUniformBinding creates a group 0 bind group exposing buf as the
// globals uniform.
func (d *HALDevice) CreateUniformBinding(buf BufferID) (BindGroupID, error) {
	if err := d.ensureLayouts(); err != nil {
		return InvalidID, err
	}
	d.mu.RLock()
	b, ok := d.buffers[buf]
	d.mu.RUnlock()
	if !ok {
		return InvalidID, fmt.Errorf("buffer %d: %w", buf, ErrNotFound)
	}

	group, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "vg_globals",
		Layout: d.globalsLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: b.buf.NativeHandle(), Offset: 0, Size: b.size}},
		},
	})
	if err != nil {
		return InvalidID, fmt.Errorf("gpu: create globals bind group: %w", err)
	}

	id := BindGroupID(d.newID())
	d.mu.Lock()
	d.bindGroups[id] = &halBindGroup{group: group}
	d.mu.Unlock()
	return id, nil
}

// CreateTextureBinding creates a group 1 bind group for tex. Single-channel
// textures are flagged so the shader reads coverage from the red channel.
func (d *HALDevice) CreateTextureBinding(tex TextureID) (BindGroupID, error) {
	if err := d.ensureLayouts(); err != nil {
		return InvalidID, err
	}
	d.mu.RLock()
	t, ok := d.textures[tex]
	d.mu.RUnlock()
	if !ok {
		return InvalidID, fmt.Errorf("texture %d: %w", tex, ErrNotFound)
	}

	params, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: t.desc.Label + "_params",
		Size:  textureParamsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return InvalidID, fmt.Errorf("gpu: create texture params: %w", err)
	}
	var mode [textureParamsSize]byte
	if t.desc.Format == FormatR8Unorm {
		binary.LittleEndian.PutUint32(mode[0:], math.Float32bits(1))
	}
	d.queue.WriteBuffer(params, 0, mode[:])

	group, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  t.desc.Label + "_bind",
		Layout: d.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: d.sampler.NativeHandle()}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: params.NativeHandle(), Offset: 0, Size: textureParamsSize}},
		},
	})
	if err != nil {
		d.device.DestroyBuffer(params)
		return InvalidID, fmt.Errorf("gpu: create texture bind group: %w", err)
	}

	id := BindGroupID(d.newID())
	d.mu.Lock()
	d.bindGroups[id] = &halBindGroup{group: group, params: params}
	d.mu.Unlock()
	return id, nil
}

// DestroyBindGroup releases a bind group.
func (d *HALDevice) DestroyBindGroup(id BindGroupID) {
	d.mu.Lock()
	g, ok := d.bindGroups[id]
	if ok {
		delete(d.bindGroups, id)
	}
	d.mu.Unlock()

	if !ok {
		return
	}
	d.device.DestroyBindGroup(g.group)
	if g.params != nil {
		d.device.DestroyBuffer(g.params)
	}
}

// CreatePipeline compiles the WGSL source to SPIR-V and builds a render
// pipeline with premultiplied alpha blending.
func (d *HALDevice) CreatePipeline(desc PipelineDescriptor) (PipelineID, error) {
	if err := d.ensureLayouts(); err != nil {
		return InvalidID, err
	}
	spirv, err := CompileWGSL(desc.WGSL)
	if err != nil {
		return InvalidID, err
	}
	shader, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return InvalidID, fmt.Errorf("gpu: create shader module: %w", err)
	}

	attrs := make([]gputypes.VertexAttribute, 0, len(desc.Attributes))
	for _, a := range desc.Attributes {
		format := gputypes.VertexFormatFloat32x2
		if a.Components == 4 {
			format = gputypes.VertexFormatFloat32x4
		}
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         format,
			Offset:         a.Offset,
			ShaderLocation: a.Location,
		})
	}
	target := desc.TargetFormat
	if target == 0 {
		target = d.target
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: d.pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{{
				ArrayStride: desc.VertexStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes:  attrs,
			}},
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    halFormat(target),
				Blend:     &premulBlend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		d.device.DestroyShaderModule(shader)
		return InvalidID, fmt.Errorf("gpu: create render pipeline %q: %w", desc.Label, err)
	}

	id := PipelineID(d.newID())
	d.mu.Lock()
	d.pipelines[id] = &halPipeline{shader: shader, pipeline: pipeline}
	d.mu.Unlock()
	return id, nil
}

// DestroyPipeline releases a pipeline and its shader module.
func (d *HALDevice) DestroyPipeline(id PipelineID) {
	d.mu.Lock()
	p, ok := d.pipelines[id]
	if ok {
		delete(d.pipelines, id)
	}
	d.mu.Unlock()

	if ok {
		d.device.DestroyRenderPipeline(p.pipeline)
		d.device.DestroyShaderModule(p.shader)
	}
}

// ensureLayouts creates the shared bind group layouts, pipeline layout and
// sampler.
//
//	group 0: binding 0 globals uniform (vertex+fragment)
//	group 1: binding 0 texture, binding 1 sampler, binding 2 params uniform
func (d *HALDevice) ensureLayouts() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.pipeLayout != nil {
		return nil
	}

	globals, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "vg_globals_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create globals layout: %w", err)
	}

	textures, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "vg_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		d.device.DestroyBindGroupLayout(globals)
		return fmt.Errorf("gpu: create texture layout: %w", err)
	}

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "vg_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{globals, textures},
	})
	if err != nil {
		d.device.DestroyBindGroupLayout(textures)
		d.device.DestroyBindGroupLayout(globals)
		return fmt.Errorf("gpu: create pipeline layout: %w", err)
	}

	// Nearest magnification keeps glyph texels sharp when scaled up.
	sampler, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "vg_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		d.device.DestroyPipelineLayout(pipeLayout)
		d.device.DestroyBindGroupLayout(textures)
		d.device.DestroyBindGroupLayout(globals)
		return fmt.Errorf("gpu: create sampler: %w", err)
	}

	d.globalsLayout = globals
	d.textureLayout = textures
	d.pipeLayout = pipeLayout
	d.sampler = sampler
	return nil
}

// RenderToTexture encodes a single render pass that clears target and runs
// record, then submits and waits for completion.
func (d *HALDevice) RenderToTexture(target TextureID, record func(Pass) error) error {
	d.mu.RLock()
	t, ok := d.textures[target]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("render target %d: %w", target, ErrNotFound)
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "vg_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("vg_frame"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "vg_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       t.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	recordErr := record(&HALPass{dev: d, pass: rp})
	rp.End()
	if recordErr != nil {
		encoder.DiscardEncoding()
		return recordErr
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	if ok, err := d.device.Wait(fence, 1, 5*time.Second); err != nil {
		return fmt.Errorf("gpu: wait: %w", err)
	} else if !ok {
		vglog.Logger().Warn("gpu: frame fence timed out")
	}
	return nil
}

// Close destroys every resource still owned by the device. The wrapped hal
// device itself is not destroyed.
func (d *HALDevice) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	textures, buffers, groups, pipelines := d.textures, d.buffers, d.bindGroups, d.pipelines
	d.textures = make(map[TextureID]*halTexture)
	d.buffers = make(map[BufferID]*halBuffer)
	d.bindGroups = make(map[BindGroupID]*halBindGroup)
	d.pipelines = make(map[PipelineID]*halPipeline)
	d.mu.Unlock()

	for _, p := range pipelines {
		d.device.DestroyRenderPipeline(p.pipeline)
		d.device.DestroyShaderModule(p.shader)
	}
	for _, g := range groups {
		d.device.DestroyBindGroup(g.group)
		if g.params != nil {
			d.device.DestroyBuffer(g.params)
		}
	}
	for _, b := range buffers {
		d.device.DestroyBuffer(b.buf)
	}
	for _, t := range textures {
		d.device.DestroyTextureView(t.view)
		d.device.DestroyTexture(t.tex)
	}
	if d.sampler != nil {
		d.device.DestroySampler(d.sampler)
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
	}
	if d.textureLayout != nil {
		d.device.DestroyBindGroupLayout(d.textureLayout)
	}
	if d.globalsLayout != nil {
		d.device.DestroyBindGroupLayout(d.globalsLayout)
	}
}

// HALPass adapts a hal.RenderPassEncoder to Pass, resolving resource IDs
// through the owning HALDevice. Unknown IDs are logged and skipped.
type HALPass struct {
	dev  *HALDevice
	pass hal.RenderPassEncoder
}

// NewHALPass wraps an externally managed render pass.
func NewHALPass(dev *HALDevice, pass hal.RenderPassEncoder) *HALPass {
	return &HALPass{dev: dev, pass: pass}
}

// SetPipeline sets the active pipeline.
func (p *HALPass) SetPipeline(id PipelineID) {
	p.dev.mu.RLock()
	pl, ok := p.dev.pipelines[id]
	p.dev.mu.RUnlock()
	if !ok {
		vglog.Logger().Error("gpu: unknown pipeline", "id", id)
		return
	}
	p.pass.SetPipeline(pl.pipeline)
}

// SetBindGroup binds a bind group at index.
func (p *HALPass) SetBindGroup(index uint32, id BindGroupID) {
	p.dev.mu.RLock()
	g, ok := p.dev.bindGroups[id]
	p.dev.mu.RUnlock()
	if !ok {
		vglog.Logger().Error("gpu: unknown bind group", "id", id)
		return
	}
	p.pass.SetBindGroup(index, g.group, nil)
}

// SetScissorRect sets the scissor rectangle.
func (p *HALPass) SetScissorRect(x, y, width, height uint32) {
	p.pass.SetScissorRect(x, y, width, height)
}

// SetVertexBuffer binds buf at slot starting at offset.
func (p *HALPass) SetVertexBuffer(slot uint32, buf BufferID, offset uint64) {
	p.dev.mu.RLock()
	b, ok := p.dev.buffers[buf]
	p.dev.mu.RUnlock()
	if !ok {
		vglog.Logger().Error("gpu: unknown vertex buffer", "id", buf)
		return
	}
	p.pass.SetVertexBuffer(slot, b.buf, offset)
}

// SetIndexBuffer binds buf as a uint32 index buffer starting at offset.
func (p *HALPass) SetIndexBuffer(buf BufferID, offset uint64) {
	p.dev.mu.RLock()
	b, ok := p.dev.buffers[buf]
	p.dev.mu.RUnlock()
	if !ok {
		vglog.Logger().Error("gpu: unknown index buffer", "id", buf)
		return
	}
	p.pass.SetIndexBuffer(b.buf, gputypes.IndexFormatUint32, offset)
}

// DrawIndexed draws indexCount indices from the bound buffers.
func (p *HALPass) DrawIndexed(indexCount uint32) {
	p.pass.DrawIndexed(indexCount, 1, 0, 0, 0)
}

// CompileWGSL compiles WGSL source to SPIR-V words.
func CompileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile shader: %w", err)
	}
	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

func halFormat(f TextureFormat) gputypes.TextureFormat {
	switch f {
	case FormatR8Unorm:
		return gputypes.TextureFormatR8Unorm
	case FormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

func halBufferUsage(u BufferUsage) gputypes.BufferUsage {
	usage := gputypes.BufferUsageCopyDst
	if u&BufferUsageVertex != 0 {
		usage |= gputypes.BufferUsageVertex
	}
	if u&BufferUsageIndex != 0 {
		usage |= gputypes.BufferUsageIndex
	}
	if u&BufferUsageUniform != 0 {
		usage |= gputypes.BufferUsageUniform
	}
	return usage
}
