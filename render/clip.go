package render

import "github.com/gogpu/vg/internal/clip"

// ClipStack tracks nested clip rectangles; its Current rectangle is what
// a Renderable's Clip is normally set to.
type ClipStack = clip.Stack

// NewClipStack returns an empty clip stack for a screen of the given size.
func NewClipStack(width, height float32) *ClipStack {
	return clip.NewStack(width, height)
}
