package vg

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/paint"
)

func TestLoggerSilentByDefault(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLoggerCapturesDroppedInstructions(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	cv, _ := newTestCanvas(t)
	cv.DrawImage(geom.NewRect(0, 0, 10, 10), 42)
	cv.FillRect(geom.NewRect(0, 0, 10, 10), paint.Red)
	cv.Paint()

	out := buf.String()
	for _, want := range []string{"level=INFO", "level=ERROR", "level=WARN"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output has no %s record:\n%s", want, out)
		}
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}
