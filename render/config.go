// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/vg/gpu"
)

// Errors returned by the renderer.
var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("render: renderer is closed")

	// ErrUnknownTexture is returned when registering an atlas texture the
	// atlas does not know.
	ErrUnknownTexture = errors.New("render: unknown atlas texture")
)

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("render: invalid config %s: %s", e.Field, e.Reason)
}

// Config configures a Renderer.
type Config struct {
	// Width and Height are the logical screen size in pixels.
	Width  uint32
	Height uint32

	// InitialVertices and InitialIndices size the first vertex and index
	// buffers. Buffers grow geometrically as needed.
	InitialVertices int
	InitialIndices  int

	// TargetFormat is the color format of the render target. Zero uses the
	// device's default.
	TargetFormat gpu.TextureFormat
}

// DefaultConfig returns a configuration for an 800x600 screen with room for
// 1024 vertices and 3072 indices.
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          600,
		InitialVertices: 1024,
		InitialIndices:  1024 * 3,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return &ConfigError{Field: "Width/Height", Reason: "must be positive"}
	}
	if c.InitialVertices <= 0 {
		return &ConfigError{Field: "InitialVertices", Reason: "must be positive"}
	}
	if c.InitialIndices <= 0 {
		return &ConfigError{Field: "InitialIndices", Reason: "must be positive"}
	}
	return nil
}
