package render

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/vg/gpu"
	"github.com/gogpu/vg/internal/vglog"
	"github.com/gogpu/vg/paint"
)

// indexSize is the size of one uint32 index in bytes.
const indexSize = 4

// byteRange is a half-open byte range of a staged mesh in a buffer.
type byteRange struct {
	start, end uint64
}

// batchBuffer is a GPU buffer holding the meshes of one frame back to back.
type batchBuffer struct {
	label    string
	usage    gpu.BufferUsage
	id       gpu.BufferID
	capacity uint64
	slices   []byteRange
	staging  []byte
}

func newBatchBuffer(dev gpu.Device, label string, usage gpu.BufferUsage, capacity uint64) (*batchBuffer, error) {
	id, err := dev.CreateBuffer(label, capacity, usage)
	if err != nil {
		return nil, fmt.Errorf("render: create %s: %w", label, err)
	}
	return &batchBuffer{label: label, usage: usage, id: id, capacity: capacity}, nil
}

// reserve makes sure the buffer holds at least required bytes. It grows to
// max(2*capacity, required), replacing the GPU buffer.
func (b *batchBuffer) reserve(dev gpu.Device, required uint64) error {
	if required <= b.capacity {
		return nil
	}
	capacity := max(b.capacity*2, required)
	id, err := dev.CreateBuffer(b.label, capacity, b.usage)
	if err != nil {
		return fmt.Errorf("render: grow %s to %d bytes: %w", b.label, capacity, err)
	}
	dev.DestroyBuffer(b.id)
	vglog.Logger().Debug("render: buffer grown",
		"buffer", b.label, "from", b.capacity, "to", capacity, "required", required)
	b.id = id
	b.capacity = capacity
	return nil
}

// flush writes the staged bytes to the start of the buffer.
func (b *batchBuffer) flush(dev gpu.Device) error {
	if len(b.staging) == 0 {
		return nil
	}
	if err := dev.WriteBuffer(b.id, 0, b.staging); err != nil {
		return fmt.Errorf("render: write %s: %w", b.label, err)
	}
	return nil
}

// reset drops the staged slices and bytes, keeping the GPU buffer.
func (b *batchBuffer) reset() {
	b.slices = b.slices[:0]
	b.staging = b.staging[:0]
}

func (b *batchBuffer) destroy(dev gpu.Device) {
	if b.id != gpu.InvalidID {
		dev.DestroyBuffer(b.id)
		b.id = gpu.InvalidID
	}
}

// appendVertices encodes vertices as little-endian float32s: position, UV,
// then color.
func appendVertices(dst []byte, vs []paint.Vertex) []byte {
	for _, v := range vs {
		for _, f := range [...]float32{
			v.Pos.X, v.Pos.Y,
			v.UV.X, v.UV.Y,
			v.Color.R, v.Color.G, v.Color.B, v.Color.A,
		} {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
	}
	return dst
}

// appendIndices encodes indices as little-endian uint32s.
func appendIndices(dst []byte, is []uint32) []byte {
	for _, i := range is {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}
