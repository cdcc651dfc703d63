package common

import (
	"log/slog"
	"os"
)

// SetupLogger configures the global logger. Unknown formats fall back to the
// console handler.
func SetupLogger(level slog.Level, format string) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
