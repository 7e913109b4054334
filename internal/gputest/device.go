// Package gputest provides an in-memory gpu.Device and gpu.Pass that
// record what they are asked to do.
package gputest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/vg/gpu"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("gputest: injected failure")

// Texture is the CPU-side copy of a texture.
type Texture struct {
	Desc   gpu.TextureDescriptor
	Pixels []byte
	Writes int
}

// Pixel returns the bytes of the texel at (x, y).
func (t *Texture) Pixel(x, y int) []byte {
	bpp := t.Desc.Format.BytesPerPixel()
	off := (y*int(t.Desc.Width) + x) * bpp
	return t.Pixels[off : off+bpp]
}

// Buffer is the CPU-side copy of a buffer.
type Buffer struct {
	Label string
	Usage gpu.BufferUsage
	Data  []byte
}

// Device is a fake gpu.Device backed by Go memory.
type Device struct {
	mu     sync.Mutex
	nextID uint64

	Textures   map[gpu.TextureID]*Texture
	Buffers    map[gpu.BufferID]*Buffer
	BindGroups map[gpu.BindGroupID]uint64 // bound texture or buffer ID
	Pipelines  map[gpu.PipelineID]gpu.PipelineDescriptor

	// FailCreateTexture makes CreateTexture return ErrInjected.
	FailCreateTexture bool
	// FailCreateBuffer makes CreateBuffer return ErrInjected.
	FailCreateBuffer bool

	Destroyed int
}

// NewDevice returns an empty fake device.
func NewDevice() *Device {
	return &Device{
		Textures:   make(map[gpu.TextureID]*Texture),
		Buffers:    make(map[gpu.BufferID]*Buffer),
		BindGroups: make(map[gpu.BindGroupID]uint64),
		Pipelines:  make(map[gpu.PipelineID]gpu.PipelineDescriptor),
	}
}

func (d *Device) id() uint64 {
	d.nextID++
	return d.nextID
}

// CreateTexture allocates zeroed texture storage.
func (d *Device) CreateTexture(desc gpu.TextureDescriptor) (gpu.TextureID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailCreateTexture {
		return gpu.InvalidID, ErrInjected
	}
	size := int(desc.Width) * int(desc.Height) * desc.Format.BytesPerPixel()
	id := gpu.TextureID(d.id())
	d.Textures[id] = &Texture{Desc: desc, Pixels: make([]byte, size)}
	return id, nil
}

// WriteTexture copies rows into the texture storage.
func (d *Device) WriteTexture(id gpu.TextureID, x, y, width, height uint32, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.Textures[id]
	if !ok {
		return fmt.Errorf("texture %d: %w", id, gpu.ErrNotFound)
	}
	if x+width > t.Desc.Width || y+height > t.Desc.Height {
		return fmt.Errorf("texture %d: %w", id, gpu.ErrOutOfBounds)
	}
	bpp := t.Desc.Format.BytesPerPixel()
	row := int(width) * bpp
	if len(data) < row*int(height) {
		return fmt.Errorf("texture %d: short data: %w", id, gpu.ErrOutOfBounds)
	}
	stride := int(t.Desc.Width) * bpp
	for r := 0; r < int(height); r++ {
		dst := (int(y)+r)*stride + int(x)*bpp
		copy(t.Pixels[dst:dst+row], data[r*row:(r+1)*row])
	}
	t.Writes++
	return nil
}

// DestroyTexture removes the texture.
func (d *Device) DestroyTexture(id gpu.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.Textures[id]; ok {
		delete(d.Textures, id)
		d.Destroyed++
	}
}

// CreateBuffer allocates zeroed buffer storage.
func (d *Device) CreateBuffer(label string, size uint64, usage gpu.BufferUsage) (gpu.BufferID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailCreateBuffer {
		return gpu.InvalidID, ErrInjected
	}
	id := gpu.BufferID(d.id())
	d.Buffers[id] = &Buffer{Label: label, Usage: usage, Data: make([]byte, size)}
	return id, nil
}

// WriteBuffer copies data into the buffer.
func (d *Device) WriteBuffer(id gpu.BufferID, offset uint64, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.Buffers[id]
	if !ok {
		return fmt.Errorf("buffer %d: %w", id, gpu.ErrNotFound)
	}
	if offset+uint64(len(data)) > uint64(len(b.Data)) {
		return fmt.Errorf("buffer %d: %w", id, gpu.ErrOutOfBounds)
	}
	copy(b.Data[offset:], data)
	return nil
}

// DestroyBuffer removes the buffer.
func (d *Device) DestroyBuffer(id gpu.BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.Buffers[id]; ok {
		delete(d.Buffers, id)
		d.Destroyed++
	}
}

// CreateTextureBinding records a bind group for tex.
func (d *Device) CreateTextureBinding(tex gpu.TextureID) (gpu.BindGroupID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.Textures[tex]; !ok {
		return gpu.InvalidID, fmt.Errorf("texture %d: %w", tex, gpu.ErrNotFound)
	}
	id := gpu.BindGroupID(d.id())
	d.BindGroups[id] = uint64(tex)
	return id, nil
}

// CreateUniformBinding records a bind group for buf.
func (d *Device) CreateUniformBinding(buf gpu.BufferID) (gpu.BindGroupID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.Buffers[buf]; !ok {
		return gpu.InvalidID, fmt.Errorf("buffer %d: %w", buf, gpu.ErrNotFound)
	}
	id := gpu.BindGroupID(d.id())
	d.BindGroups[id] = uint64(buf)
	return id, nil
}

// DestroyBindGroup removes the bind group.
func (d *Device) DestroyBindGroup(id gpu.BindGroupID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.BindGroups[id]; ok {
		delete(d.BindGroups, id)
		d.Destroyed++
	}
}

// CreatePipeline records the descriptor.
func (d *Device) CreatePipeline(desc gpu.PipelineDescriptor) (gpu.PipelineID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if desc.WGSL == "" {
		return gpu.InvalidID, errors.New("gputest: empty shader source")
	}
	id := gpu.PipelineID(d.id())
	d.Pipelines[id] = desc
	return id, nil
}

// DestroyPipeline removes the pipeline.
func (d *Device) DestroyPipeline(id gpu.PipelineID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.Pipelines[id]; ok {
		delete(d.Pipelines, id)
		d.Destroyed++
	}
}

// TextureCount returns the number of live textures.
func (d *Device) TextureCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Textures)
}

// Texture returns the live texture with the given ID, or nil.
func (d *Device) Texture(id gpu.TextureID) *Texture {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Textures[id]
}

// Buffer returns the live buffer with the given ID, or nil.
func (d *Device) Buffer(id gpu.BufferID) *Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Buffers[id]
}

var _ gpu.Device = (*Device)(nil)
