// Package logger constructs the process-wide slog.Logger.
package logger

import (
	"log/slog"
	"os"

	"github.com/eventlane/apiserver/config"
)

// New builds a slog.Logger for the configured level and format.
// Format "text" selects the text handler; anything else gets JSON.
func New(cfg config.LogConfig) *slog.Logger {
	var lvl slog.Level
	switch cfg.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
