package vg

import (
	"log/slog"

	"github.com/gogpu/vg/internal/vglog"
)

// SetLogger configures the logger for vg and all its sub-packages.
// By default, vg produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by vg:
//   - [slog.LevelDebug]: buffer growth, batching statistics
//   - [slog.LevelInfo]: atlas texture creation, asset loading
//   - [slog.LevelWarn]: dropped instructions summary
//   - [slog.LevelError]: missing atlas keys, unregistered textures
//
// Example:
//
//	vg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	vglog.SetLogger(l)
}

// Logger returns the current logger used by vg.
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return vglog.Logger()
}
