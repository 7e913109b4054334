// Package clip tracks the active clip rectangle of a canvas.
package clip

import "github.com/gogpu/vg/geom"

// Stack manages nested clip rectangles with push/pop operations.
// The active clip is the intersection of every pushed rectangle and the
// screen; with nothing pushed it is the whole screen.
type Stack struct {
	screen geom.Rect
	// rects holds the pushed rectangles as given, so a resize can
	// recompute the intersections.
	rects []geom.Rect
	// bounds[i] is the active clip after rects[i] was pushed.
	bounds []geom.Rect
}

// NewStack creates an empty stack for a screen of the given size.
func NewStack(width, height float32) *Stack {
	return &Stack{
		screen: geom.NewRect(0, 0, width, height),
		rects:  make([]geom.Rect, 0, 8),
		bounds: make([]geom.Rect, 0, 8),
	}
}

// Push makes the intersection of r and the current clip the active clip.
func (s *Stack) Push(r geom.Rect) {
	s.rects = append(s.rects, r)
	s.bounds = append(s.bounds, s.Current().Intersect(r))
}

// Pop restores the clip that was active before the last Push.
// Popping an empty stack is a no-op.
func (s *Stack) Pop() {
	if len(s.rects) == 0 {
		return
	}
	s.rects = s.rects[:len(s.rects)-1]
	s.bounds = s.bounds[:len(s.bounds)-1]
}

// Current returns the active clip rectangle.
func (s *Stack) Current() geom.Rect {
	if n := len(s.bounds); n > 0 {
		return s.bounds[n-1]
	}
	return s.screen
}

// Screen returns the full-screen rectangle.
func (s *Stack) Screen() geom.Rect { return s.screen }

// Contains reports whether p is inside the active clip.
func (s *Stack) Contains(p geom.Point) bool {
	return s.Current().Contains(p)
}

// Depth returns the number of pushed rectangles.
func (s *Stack) Depth() int { return len(s.rects) }

// With pushes r, runs fn and pops r again.
func (s *Stack) With(r geom.Rect, fn func()) {
	s.Push(r)
	defer s.Pop()
	fn()
}

// Resize changes the screen size and recomputes the active clips.
func (s *Stack) Resize(width, height float32) {
	s.screen = geom.NewRect(0, 0, width, height)
	cur := s.screen
	for i, r := range s.rects {
		cur = cur.Intersect(r)
		s.bounds[i] = cur
	}
}

// Reset pops every rectangle.
func (s *Stack) Reset() {
	s.rects = s.rects[:0]
	s.bounds = s.bounds[:0]
}
