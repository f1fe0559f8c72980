package cmd

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// newLogger builds a text logger tagged with a fresh run id. debug forces the
// debug level regardless of the configured one.
func newLogger(w io.Writer, level string, debug bool) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if debug {
		lvl = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h).With(slog.String("run_id", uuid.NewString()))
}
