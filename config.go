package vg

import (
	"fmt"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/gpu"
	"github.com/gogpu/vg/path"
	"github.com/gogpu/vg/render"
	"github.com/gogpu/vg/scene"
)

// Config configures a Canvas.
type Config struct {
	// Width and Height are the logical size of the render target.
	Width  uint32
	Height uint32

	// Atlas sizes the glyph and image atlas textures.
	Atlas atlas.Config

	// Scene selects the batching mode and tessellation parameters.
	Scene scene.Options

	// PathCacheSize bounds the number of flattened paths kept between
	// frames. Zero selects path.DefaultCacheSize.
	PathCacheSize int

	// InitialVertices and InitialIndices size the first GPU buffers.
	InitialVertices int
	InitialIndices  int

	// TargetFormat is the color format of the render target. Zero uses the
	// device default.
	TargetFormat gpu.TextureFormat
}

// DefaultConfig returns the configuration of an 800x600 canvas.
func DefaultConfig() Config {
	rc := render.DefaultConfig()
	return Config{
		Width:           rc.Width,
		Height:          rc.Height,
		Atlas:           atlas.DefaultConfig(),
		Scene:           scene.DefaultOptions(),
		InitialVertices: rc.InitialVertices,
		InitialIndices:  rc.InitialIndices,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.renderConfig().Validate(); err != nil {
		return err
	}
	if err := c.Atlas.Validate(); err != nil {
		return err
	}
	if err := c.Scene.Validate(); err != nil {
		return err
	}
	if c.PathCacheSize < 0 {
		return fmt.Errorf("vg: invalid config PathCacheSize: %d is negative", c.PathCacheSize)
	}
	return nil
}

func (c Config) renderConfig() render.Config {
	return render.Config{
		Width:           c.Width,
		Height:          c.Height,
		InitialVertices: c.InitialVertices,
		InitialIndices:  c.InitialIndices,
		TargetFormat:    c.TargetFormat,
	}
}

func (c Config) pathCache() *path.Cache {
	return path.NewCache(c.PathCacheSize, c.Scene.Tolerance)
}
