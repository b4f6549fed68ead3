package stride

import (
	"log/slog"
	"os"
)

// NewLogger returns a structured logger for engine diagnostics. A nil
// handler selects a text handler on stderr at LevelInfo. Backends accept a
// logger through their options; per-index hot paths never log.
func NewLogger(handler slog.Handler) *slog.Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return slog.New(handler)
}

// NoopLogger returns a logger that discards all output. It is the default
// for every backend.
func NoopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
