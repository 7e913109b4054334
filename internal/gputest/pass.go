package gputest

import (
	"fmt"

	"github.com/gogpu/vg/gpu"
)

// Op identifies a recorded pass command.
type Op uint8

const (
	OpSetPipeline Op = iota
	OpSetBindGroup
	OpSetScissor
	OpSetVertexBuffer
	OpSetIndexBuffer
	OpDrawIndexed
)

// Command is one recorded pass call. Unused fields are zero.
type Command struct {
	Op     Op
	Index  uint32 // bind group index, vertex slot or index count
	ID     uint64
	Offset uint64
	Rect   [4]uint32
}

// String returns a compact description, handy in test failures.
func (c Command) String() string {
	switch c.Op {
	case OpSetPipeline:
		return fmt.Sprintf("pipeline(%d)", c.ID)
	case OpSetBindGroup:
		return fmt.Sprintf("bind(%d, %d)", c.Index, c.ID)
	case OpSetScissor:
		return fmt.Sprintf("scissor%v", c.Rect)
	case OpSetVertexBuffer:
		return fmt.Sprintf("vertex(%d, %d@%d)", c.Index, c.ID, c.Offset)
	case OpSetIndexBuffer:
		return fmt.Sprintf("index(%d@%d)", c.ID, c.Offset)
	case OpDrawIndexed:
		return fmt.Sprintf("draw(%d)", c.Index)
	default:
		return "unknown"
	}
}

// Pass is a gpu.Pass that records every call.
type Pass struct {
	Commands []Command
}

func (p *Pass) SetPipeline(id gpu.PipelineID) {
	p.Commands = append(p.Commands, Command{Op: OpSetPipeline, ID: uint64(id)})
}

func (p *Pass) SetBindGroup(index uint32, id gpu.BindGroupID) {
	p.Commands = append(p.Commands, Command{Op: OpSetBindGroup, Index: index, ID: uint64(id)})
}

func (p *Pass) SetScissorRect(x, y, width, height uint32) {
	p.Commands = append(p.Commands, Command{Op: OpSetScissor, Rect: [4]uint32{x, y, width, height}})
}

func (p *Pass) SetVertexBuffer(slot uint32, buf gpu.BufferID, offset uint64) {
	p.Commands = append(p.Commands, Command{Op: OpSetVertexBuffer, Index: slot, ID: uint64(buf), Offset: offset})
}

func (p *Pass) SetIndexBuffer(buf gpu.BufferID, offset uint64) {
	p.Commands = append(p.Commands, Command{Op: OpSetIndexBuffer, ID: uint64(buf), Offset: offset})
}

func (p *Pass) DrawIndexed(indexCount uint32) {
	p.Commands = append(p.Commands, Command{Op: OpDrawIndexed, Index: indexCount})
}

// Filter returns the recorded commands with the given op.
func (p *Pass) Filter(op Op) []Command {
	var out []Command
	for _, c := range p.Commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears the recording.
func (p *Pass) Reset() { p.Commands = p.Commands[:0] }

var _ gpu.Pass = (*Pass)(nil)
