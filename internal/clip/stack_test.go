package clip

import (
	"testing"

	"github.com/gogpu/vg/geom"
)

func TestNewStack(t *testing.T) {
	stack := NewStack(100, 100)

	if stack.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", stack.Depth())
	}
	if want := geom.NewRect(0, 0, 100, 100); stack.Current() != want {
		t.Errorf("Current() = %v, want %v", stack.Current(), want)
	}
}

func TestStack_Push(t *testing.T) {
	stack := NewStack(100, 100)

	tests := []struct {
		name      string
		rect      geom.Rect
		want      geom.Rect
		wantDepth int
	}{
		{
			name:      "push smaller rect",
			rect:      geom.NewRect(10, 10, 50, 50),
			want:      geom.NewRect(10, 10, 50, 50),
			wantDepth: 1,
		},
		{
			name:      "push overlapping rect",
			rect:      geom.NewRect(30, 30, 50, 50),
			want:      geom.NewRect(30, 30, 30, 30),
			wantDepth: 2,
		},
		{
			name:      "push disjoint rect",
			rect:      geom.NewRect(200, 200, 10, 10),
			want:      geom.NewRect(200, 200, 0, 0),
			wantDepth: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack.Push(tt.rect)

			if stack.Depth() != tt.wantDepth {
				t.Errorf("Depth() = %d, want %d", stack.Depth(), tt.wantDepth)
			}
			if got := stack.Current(); got != tt.want {
				t.Errorf("Current() = %v, want %v", got, tt.want)
			}
		})
	}
	if !stack.Current().IsEmpty() {
		t.Error("disjoint clip should be empty")
	}
}

func TestStack_Pop(t *testing.T) {
	stack := NewStack(100, 100)
	stack.Push(geom.NewRect(10, 10, 50, 50))
	stack.Push(geom.NewRect(20, 20, 30, 30))

	stack.Pop()
	if want := geom.NewRect(10, 10, 50, 50); stack.Current() != want {
		t.Errorf("Current() after first Pop() = %v, want %v", stack.Current(), want)
	}

	stack.Pop()
	if want := stack.Screen(); stack.Current() != want {
		t.Errorf("Current() after second Pop() = %v, want %v", stack.Current(), want)
	}

	// Pop on empty stack is a no-op.
	stack.Pop()
	if stack.Depth() != 0 {
		t.Errorf("Depth() after Pop() on empty stack = %d, want 0", stack.Depth())
	}
}

func TestStack_With(t *testing.T) {
	stack := NewStack(100, 100)
	var inside geom.Rect
	stack.With(geom.NewRect(-10, -10, 40, 40), func() {
		inside = stack.Current()
	})

	if want := geom.NewRect(0, 0, 30, 30); inside != want {
		t.Errorf("clip inside With = %v, want %v", inside, want)
	}
	if stack.Depth() != 0 {
		t.Errorf("Depth() after With = %d, want 0", stack.Depth())
	}
}

func TestStack_Contains(t *testing.T) {
	stack := NewStack(100, 100)
	stack.Push(geom.NewRect(20, 20, 60, 60))

	tests := []struct {
		p    geom.Point
		want bool
	}{
		{geom.Pt(50, 50), true},
		{geom.Pt(10, 10), false},
		{geom.Pt(20, 20), true},
		{geom.Pt(80, 80), false},
	}
	for _, tt := range tests {
		if got := stack.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestStack_Resize(t *testing.T) {
	stack := NewStack(100, 100)
	stack.Push(geom.NewRect(50, 50, 100, 100))
	if want := geom.NewRect(50, 50, 50, 50); stack.Current() != want {
		t.Fatalf("Current() = %v, want %v", stack.Current(), want)
	}

	stack.Resize(200, 120)
	if want := geom.NewRect(50, 50, 100, 70); stack.Current() != want {
		t.Errorf("Current() after Resize = %v, want %v", stack.Current(), want)
	}

	stack.Reset()
	if want := geom.NewRect(0, 0, 200, 120); stack.Current() != want {
		t.Errorf("Current() after Reset = %v, want %v", stack.Current(), want)
	}
}
