package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates the process logger: JSON lines on w at the given level.
// Development environments log as text, which is easier to read in a terminal.
func NewLogger(env, level string, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: parseLevel(level)}

	if env == "development" {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
