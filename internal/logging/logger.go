// Package logging provides structured logging for go-elapsed.
//
// Diagnostics share stderr with the status line, so the default logger
// is silent unless verbose logging is requested: a log record landing
// between a redraw and an erase would corrupt the overlay.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a structured logger writing to w. Format is "json" or
// "text"; verbose lowers the level from warn to debug.
func New(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: verbose,
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything. Used while the
// status line owns the terminal.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// SetDefault installs logger as the slog default.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
