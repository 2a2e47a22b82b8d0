// Package logger provides structured logging setup for HuntReady.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/huntready/huntready/internal/config"
)

// New creates a *slog.Logger from the given Logging config.
// Output is JSON to stdout with a "service" attribute on every record.
func New(cfg config.Logging) *slog.Logger {
	level := parseLevel(cfg.Level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler).With("service", cfg.Service)
}

// NewAsync creates a *slog.Logger backed by an AsyncHandler, plus the Closer
// that flushes it on shutdown. Falls back to synchronous logging when async
// is disabled in config.
func NewAsync(cfg config.Logging) (*slog.Logger, Closer) {
	level := parseLevel(cfg.Level)

	inner := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	if !cfg.Async {
		return slog.New(inner).With("service", cfg.Service), nopCloser{}
	}

	async := NewAsyncHandler(inner, cfg.BufferSize, cfg.Workers)
	return slog.New(async).With("service", cfg.Service), async
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
