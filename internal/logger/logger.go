package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const service = "wallet"

func New(env, level string) *slog.Logger { return NewWithWriter(env, level, os.Stdout) }

// NewWithWriter picks JSON at info for prod and text at debug elsewhere.
// A valid level ("debug", "warn", ...) overrides the env default; an
// unknown one is ignored.
func NewWithWriter(env, level string, w io.Writer) *slog.Logger {
	lvl := slog.LevelDebug
	if env == "prod" {
		lvl = slog.LevelInfo
	}
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(strings.TrimSpace(level))); err == nil {
			lvl = parsed
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("service", service)
}
