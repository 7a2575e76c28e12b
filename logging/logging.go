// Package logging builds the process logger from the configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nathoo/stranded/config"
)

// Level converts a config level name to a slog.Level. Unknown names mean
// info.
func Level(name string) slog.Level {
	switch strings.ToLower(name) {
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

// NewWithWriter returns a logger writing to w in the configured format.
func NewWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: Level(cfg.LogLevel)}
	var h slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// New returns the logger for a session and a function that releases its
// output. Logs go to the configured file when one is set. Otherwise they
// go to stderr in plain mode and nowhere when a full-screen interface
// owns the terminal.
func New(cfg *config.Config, plain bool) (*slog.Logger, func() error, error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return NewWithWriter(cfg, f), f.Close, nil
	}
	var w io.Writer = io.Discard
	if plain {
		w = os.Stderr
	}
	return NewWithWriter(cfg, w), func() error { return nil }, nil
}
