package atlas

import (
	"errors"
	"fmt"
)

// Atlas errors.
var (
	// ErrClosed is returned when operating on a closed manager.
	ErrClosed = errors.New("atlas: manager is closed")

	// ErrInvalidSize is returned when a bitmap has a non-positive dimension.
	ErrInvalidSize = errors.New("atlas: bitmap size must be positive")

	// ErrDataSize is returned when a bitmap's pixel data does not match its
	// dimensions.
	ErrDataSize = errors.New("atlas: pixel data length mismatch")

	// ErrAllocation is returned when a fresh texture cannot hold a tile.
	// It indicates an allocator bug.
	ErrAllocation = errors.New("atlas: allocation failed in new texture")
)

// ConfigError describes an invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("atlas: invalid config %s: %s", e.Field, e.Reason)
}

// Config controls atlas texture sizing.
type Config struct {
	// DefaultSize is the width and height of new atlas textures. Larger
	// tiles get a texture sized to fit them.
	DefaultSize int

	// Padding is the gap in pixels between tiles.
	Padding int
}

// DefaultConfig returns 1024x1024 textures with 1 pixel padding.
func DefaultConfig() Config {
	return Config{DefaultSize: 1024, Padding: 1}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.DefaultSize <= 0 {
		return &ConfigError{Field: "DefaultSize", Reason: "must be positive"}
	}
	if c.DefaultSize > 16384 {
		return &ConfigError{Field: "DefaultSize", Reason: "exceeds 16384"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must not be negative"}
	}
	return nil
}
