package atlas

import (
	"fmt"
	"sync"
)

// Rect is a rectangular region in atlas pixel space.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsValid returns true if the region has valid dimensions.
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Contains returns true if the point (x, y) is inside the region.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps reports whether two regions share any pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("atlas.Rect(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// shelf is a horizontal band of the atlas holding items left to right.
type shelf struct {
	y      int // top edge
	height int // tallest item so far, padding excluded
	nextX  int // next free x
}

// ShelfAllocator packs rectangles into a fixed area using shelves.
//
// Each rectangle goes on the existing shelf that wastes the least height,
// provided the shelf is tall enough and has horizontal room. Otherwise a
// new shelf is opened below the last one. Padding separates items and
// shelves but is not required after the last item on a row or below the
// last shelf, so a rectangle the exact size of the area fits.
type ShelfAllocator struct {
	mu sync.Mutex

	width   int
	height  int
	padding int

	shelves []*shelf

	allocCount int
	usedArea   int
}

// NewShelfAllocator creates an allocator over a width x height area.
func NewShelfAllocator(width, height, padding int) *ShelfAllocator {
	if padding < 0 {
		padding = 0
	}
	return &ShelfAllocator{
		width:   max(width, 1),
		height:  max(height, 1),
		padding: padding,
		shelves: make([]*shelf, 0, 16),
	}
}

// Size returns the allocator's area.
func (a *ShelfAllocator) Size() (width, height int) {
	return a.width, a.height
}

// Allocate finds space for a width x height rectangle.
// The second result is false if the rectangle cannot be placed.
func (a *ShelfAllocator) Allocate(width, height int) (Rect, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if width <= 0 || height <= 0 || width > a.width || height > a.height {
		return Rect{}, false
	}

	best := -1
	for i, s := range a.shelves {
		if s.nextX+width > a.width || height > s.height {
			continue
		}
		if best < 0 || s.height-height < a.shelves[best].height-height {
			best = i
		}
	}
	if best >= 0 {
		return a.allocateOnShelf(a.shelves[best], width, height), true
	}
	return a.allocateNewShelf(width, height)
}

func (a *ShelfAllocator) allocateOnShelf(s *shelf, width, height int) Rect {
	r := Rect{X: s.nextX, Y: s.y, Width: width, Height: height}
	s.nextX += width + a.padding
	s.height = max(s.height, height)
	a.allocCount++
	a.usedArea += width * height
	return r
}

func (a *ShelfAllocator) allocateNewShelf(width, height int) (Rect, bool) {
	y := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		y = last.y + last.height + a.padding
	}
	if y+height > a.height {
		return Rect{}, false
	}
	s := &shelf{y: y, height: height}
	a.shelves = append(a.shelves, s)
	return a.allocateOnShelf(s, width, height), true
}

// Reset clears all allocations, making the entire area available again.
func (a *ShelfAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.shelves = a.shelves[:0]
	a.allocCount = 0
	a.usedArea = 0
}

// Utilization returns the fraction of area used (0.0 to 1.0).
func (a *ShelfAllocator) Utilization() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.usedArea) / float64(a.width*a.height)
}

// AllocCount returns the number of successful allocations.
func (a *ShelfAllocator) AllocCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocCount
}
