package scene

import (
	"errors"
	"fmt"
)

// BatchMode selects how instructions are grouped into meshes.
type BatchMode uint8

const (
	// BatchGrouped makes one mesh per physical texture, ordered by the
	// first instruction using it. Instructions on different textures that
	// interleave are reordered, which is only visible where translucent
	// shapes overlap.
	BatchGrouped BatchMode = iota

	// BatchStrict makes one mesh per run of consecutive instructions on the
	// same texture and keeps painter's order exactly.
	BatchStrict
)

// String returns the mode name.
func (m BatchMode) String() string {
	switch m {
	case BatchGrouped:
		return "grouped"
	case BatchStrict:
		return "strict"
	default:
		return fmt.Sprintf("BatchMode(%d)", m)
	}
}

// ErrInvalidOptions is wrapped by Options.Validate errors.
var ErrInvalidOptions = errors.New("scene: invalid options")

// Options configures batching.
type Options struct {
	Mode BatchMode

	// Feathering is the width of the antialiasing fringe added to convex
	// fills of brushes with Antialias set. Zero disables it.
	Feathering float32

	// Tolerance is the curve flattening tolerance. Zero selects the path
	// package default.
	Tolerance float32
}

// DefaultOptions returns grouped batching with a one-unit fringe.
func DefaultOptions() Options {
	return Options{Mode: BatchGrouped, Feathering: 1}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Mode > BatchStrict {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidOptions, o.Mode)
	}
	if o.Feathering < 0 {
		return fmt.Errorf("%w: negative feathering %g", ErrInvalidOptions, o.Feathering)
	}
	if o.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance %g", ErrInvalidOptions, o.Tolerance)
	}
	return nil
}
