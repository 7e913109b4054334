// Package gpu defines the small GPU surface the atlas and renderer need,
// and a wgpu/hal implementation of it.
//
// Resources are referred to by opaque IDs so that the atlas and renderer
// can be exercised against an in-memory fake in tests.
//
// Usage:
//
//	dev, err := gpu.FromProvider(provider)
//	if err != nil {
//		return err
//	}
//	defer dev.Close()
package gpu

import "errors"

// ID types for GPU resources. The zero value is never a valid resource.
type (
	TextureID   uint64
	BufferID    uint64
	BindGroupID uint64
	PipelineID  uint64
)

// InvalidID is the zero ID returned alongside errors.
const InvalidID = 0

// TextureFormat is the pixel format of a texture.
type TextureFormat uint8

const (
	// FormatR8Unorm is a single 8-bit channel, used for coverage masks.
	FormatR8Unorm TextureFormat = iota + 1
	// FormatRGBA8Unorm is 8-bit RGBA, used for images and color glyphs.
	FormatRGBA8Unorm
	// FormatBGRA8Unorm is 8-bit BGRA, the common swapchain format.
	FormatBGRA8Unorm
)

// BytesPerPixel returns the texel size of the format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case FormatR8Unorm:
		return 1
	case FormatRGBA8Unorm, FormatBGRA8Unorm:
		return 4
	default:
		return 0
	}
}

// String returns the format name.
func (f TextureFormat) String() string {
	switch f {
	case FormatR8Unorm:
		return "R8Unorm"
	case FormatRGBA8Unorm:
		return "RGBA8Unorm"
	case FormatBGRA8Unorm:
		return "BGRA8Unorm"
	default:
		return "Unknown"
	}
}

// BufferUsage describes how a buffer is bound.
type BufferUsage uint8

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageUniform
)

// TextureDescriptor describes a 2D sampled texture.
type TextureDescriptor struct {
	Label  string
	Width  uint32
	Height uint32
	Format TextureFormat
}

// VertexAttribute is one float vector attribute in an interleaved vertex.
type VertexAttribute struct {
	Location   uint32
	Offset     uint64
	Components int // 2 or 4 float32 components
}

// PipelineDescriptor describes the single render pipeline used to draw
// tessellated meshes.
type PipelineDescriptor struct {
	Label        string
	WGSL         string
	VertexStride uint64
	Attributes   []VertexAttribute
	TargetFormat TextureFormat
}

// Errors returned by Device implementations.
var (
	// ErrNotFound is returned when a resource ID is unknown.
	ErrNotFound = errors.New("gpu: resource not found")

	// ErrOutOfBounds is returned when a write exceeds the resource size.
	ErrOutOfBounds = errors.New("gpu: write out of bounds")

	// ErrNoHALAccess is returned by FromProvider when the provider does not
	// expose a hal device and queue.
	ErrNoHALAccess = errors.New("gpu: provider does not expose HAL device")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("gpu: device closed")
)

// Device creates and updates GPU resources.
//
// Implementations must be safe for concurrent use.
type Device interface {
	CreateTexture(desc TextureDescriptor) (TextureID, error)
	// WriteTexture uploads tightly packed rows into the sub-rectangle
	// (x, y, width, height) of the texture.
	WriteTexture(id TextureID, x, y, width, height uint32, data []byte) error
	DestroyTexture(id TextureID)

	CreateBuffer(label string, size uint64, usage BufferUsage) (BufferID, error)
	WriteBuffer(id BufferID, offset uint64, data []byte) error
	DestroyBuffer(id BufferID)

	// CreateTextureBinding creates the texture bind group (group 1).
	CreateTextureBinding(tex TextureID) (BindGroupID, error)
	// CreateUniformBinding creates the globals bind group (group 0).
	CreateUniformBinding(buf BufferID) (BindGroupID, error)
	DestroyBindGroup(id BindGroupID)

	CreatePipeline(desc PipelineDescriptor) (PipelineID, error)
	DestroyPipeline(id PipelineID)
}

// Pass records draw commands into an open render pass.
type Pass interface {
	SetPipeline(id PipelineID)
	SetBindGroup(index uint32, id BindGroupID)
	SetScissorRect(x, y, width, height uint32)
	SetVertexBuffer(slot uint32, buf BufferID, offset uint64)
	SetIndexBuffer(buf BufferID, offset uint64)
	DrawIndexed(indexCount uint32)
}
