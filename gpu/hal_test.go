//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"
)

// newNoopDevice opens a device on the noop backend.
func newNoopDevice(t *testing.T) *HALDevice {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		t.Fatal("noop backend returned no adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open: %v", err)
	}
	dev := NewHALDevice(openDev.Device, openDev.Queue, FormatBGRA8Unorm)
	t.Cleanup(func() {
		dev.Close()
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return dev
}

func TestHALDeviceTextureLifecycle(t *testing.T) {
	dev := newNoopDevice(t)

	id, err := dev.CreateTexture(TextureDescriptor{Label: "mask", Width: 16, Height: 16, Format: FormatR8Unorm})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if id == InvalidID {
		t.Fatal("CreateTexture returned invalid ID")
	}
	if err := dev.WriteTexture(id, 4, 4, 2, 2, make([]byte, 4)); err != nil {
		t.Errorf("WriteTexture: %v", err)
	}
	if err := dev.WriteTexture(id, 15, 15, 2, 2, make([]byte, 4)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WriteTexture out of bounds: err = %v, want ErrOutOfBounds", err)
	}
	if err := dev.WriteTexture(id, 0, 0, 4, 4, make([]byte, 3)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WriteTexture short data: err = %v, want ErrOutOfBounds", err)
	}
	bg, err := dev.CreateTextureBinding(id)
	if err != nil {
		t.Fatalf("CreateTextureBinding: %v", err)
	}
	dev.DestroyBindGroup(bg)
	dev.DestroyTexture(id)
	if err := dev.WriteTexture(id, 0, 0, 1, 1, []byte{0}); !errors.Is(err, ErrNotFound) {
		t.Errorf("WriteTexture after destroy: err = %v, want ErrNotFound", err)
	}
}

func TestHALDeviceBuffers(t *testing.T) {
	dev := newNoopDevice(t)

	if _, err := dev.CreateBuffer("empty", 0, BufferUsageVertex); err == nil {
		t.Error("CreateBuffer(size 0) should fail")
	}
	id, err := dev.CreateBuffer("globals", 64, BufferUsageUniform)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if err := dev.WriteBuffer(id, 0, make([]byte, 64)); err != nil {
		t.Errorf("WriteBuffer: %v", err)
	}
	if err := dev.WriteBuffer(id, 32, make([]byte, 64)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WriteBuffer overflow: err = %v, want ErrOutOfBounds", err)
	}
	if _, err := dev.CreateUniformBinding(id); err != nil {
		t.Errorf("CreateUniformBinding: %v", err)
	}
	if _, err := dev.CreateUniformBinding(BufferID(9999)); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateUniformBinding unknown: err = %v, want ErrNotFound", err)
	}
}

func TestHALDeviceClosed(t *testing.T) {
	dev := newNoopDevice(t)
	dev.Close()
	if _, err := dev.CreateTextureBinding(TextureID(1)); !errors.Is(err, ErrClosed) {
		t.Errorf("after Close: err = %v, want ErrClosed", err)
	}
	dev.Close() // idempotent
}

func TestTextureFormatBytesPerPixel(t *testing.T) {
	tests := []struct {
		f    TextureFormat
		want int
	}{
		{FormatR8Unorm, 1},
		{FormatRGBA8Unorm, 4},
		{FormatBGRA8Unorm, 4},
		{TextureFormat(0), 0},
	}
	for _, tt := range tests {
		if got := tt.f.BytesPerPixel(); got != tt.want {
			t.Errorf("%v.BytesPerPixel() = %d, want %d", tt.f, got, tt.want)
		}
	}
}

func TestFromProviderWithoutHAL(t *testing.T) {
	if _, err := FromProvider(NullProvider{}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("FromProvider: err = %v, want ErrNoHALAccess", err)
	}
}
