//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceProvider is the host integration point: a window or framework that
// owns the GPU device and exposes it to vg.
type DeviceProvider = gpucontext.DeviceProvider

// FromProvider builds a HALDevice from a host-owned device. The provider
// must also implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func FromProvider(provider DeviceProvider) (*HALDevice, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device: %w", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue: %w", ErrNoHALAccess)
	}
	return NewHALDevice(device, queue, formatFromSurface(provider.SurfaceFormat())), nil
}

func formatFromSurface(f gputypes.TextureFormat) TextureFormat {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return FormatRGBA8Unorm
	default:
		return FormatBGRA8Unorm
	}
}

// NullProvider is a DeviceProvider with no device. FromProvider rejects it;
// it lets headless callers satisfy APIs that take a provider.
type NullProvider struct{}

// Device returns nil for the null provider.
func (NullProvider) Device() gpucontext.Device { return nil }

// Queue returns nil for the null provider.
func (NullProvider) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null provider.
func (NullProvider) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null provider.
func (NullProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceProvider = NullProvider{}
