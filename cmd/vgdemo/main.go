//go:build !nogpu

// Command vgdemo renders a frame described by a TOML scene file on the
// headless noop GPU backend. It is useful to check that a scene batches
// the way you expect: -capture writes the prepared meshes to a file that
// can be inspected with the capture package.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/asset"
	"github.com/gogpu/vg/capture"
	"github.com/gogpu/vg/gpu"
	"github.com/gogpu/vg/text"
)

func main() {
	var (
		scenePath   = flag.String("scene", "scene.toml", "TOML scene description")
		logPath     = flag.String("log", "", "log file, rotated; empty logs to stderr")
		level       = flag.String("level", "info", "log level: debug, info, warn or error")
		capturePath = flag.String("capture", "", "write the prepared frame to this file")
	)
	flag.Parse()

	setupLogging(*logPath, *level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *scenePath, *capturePath); err != nil {
		fmt.Fprintf(os.Stderr, "vgdemo: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(logPath, level string) {
	var w io.Writer = os.Stderr
	if logPath != "" {
		w = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    16, // MB
			MaxBackups: 2,
		}
	}

	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", level)
	}
	vg.SetLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})))
}

func run(ctx context.Context, scenePath, capturePath string) error {
	sf, err := loadScene(scenePath)
	if err != nil {
		return err
	}
	cfg, err := sf.config()
	if err != nil {
		return err
	}

	dev, closeDevice := openNoopDevice()
	defer closeDevice()

	cv, err := vg.NewCanvas(dev, cfg)
	if err != nil {
		return err
	}
	defer cv.Close()

	loader := asset.NewLoader(cv.Atlas(), os.DirFS(filepath.Dir(scenePath)), asset.Options{MaxSize: cfg.Atlas.DefaultSize})
	if _, err := loader.LoadAll(ctx, sf.sources()); err != nil {
		return err
	}
	face, err := text.LoadFace(goregular.TTF)
	if err != nil {
		return err
	}

	cv.BeginFrame()
	if err := sf.build(cv, face); err != nil {
		return err
	}

	target, err := dev.CreateTexture(gpu.TextureDescriptor{
		Label:  "vgdemo_target",
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: dev.TargetFormat(),
	})
	if err != nil {
		return err
	}
	defer dev.DestroyTexture(target)

	if err := dev.RenderToTexture(target, cv.Finish); err != nil {
		return err
	}
	vg.Logger().Info("vgdemo: frame rendered",
		"renderables", len(cv.Renderables()),
		"atlas", cv.Atlas().Stats(),
		"path_cache", cv.PathCache().Stats())

	if capturePath != "" {
		frame := capture.FromRenderables(cfg.Width, cfg.Height, cv.Renderables())
		if err := capture.WriteFile(capturePath, frame); err != nil {
			return err
		}
		vg.Logger().Info("vgdemo: frame captured", "file", capturePath, "meshes", len(frame.Meshes))
	}
	return nil
}

// openNoopDevice opens a device on the noop backend. Failing to get one is
// a broken build, not a runtime condition, so it panics.
func openNoopDevice() (*gpu.HALDevice, func()) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		panic(fmt.Sprintf("vgdemo: create noop instance: %v", err))
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		panic("vgdemo: noop backend returned no adapters")
	}
	opened, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		panic(fmt.Sprintf("vgdemo: open noop adapter: %v", err))
	}
	dev := gpu.NewHALDevice(opened.Device, opened.Queue, gpu.FormatBGRA8Unorm)
	return dev, func() {
		dev.Close()
		opened.Device.Destroy()
		instance.Destroy()
	}
}
