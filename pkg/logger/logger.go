package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns JSON logger writing to w. LOG_LEVEL overrides level; an
// unparsable level falls back to info.
func New(level string, w io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(level)); err == nil {
			lvl = parsed
		}
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}
