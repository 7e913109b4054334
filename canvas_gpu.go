//go:build !nogpu

package vg

import "github.com/gogpu/vg/gpu"

// NewCanvasFromProvider creates a canvas on the device of a host window or
// framework.
func NewCanvasFromProvider(provider gpu.DeviceProvider, cfg Config) (*Canvas, error) {
	dev, err := gpu.FromProvider(provider)
	if err != nil {
		return nil, err
	}
	if cfg.TargetFormat == 0 {
		cfg.TargetFormat = dev.TargetFormat()
	}
	return NewCanvas(dev, cfg)
}
