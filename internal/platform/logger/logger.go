package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/config"
)

// Setup creates the application's JSON logger on stdout using the level in
// cfg and installs it as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	logger, err := New(os.Stdout, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Package-level slog calls share the same handler.
	slog.SetDefault(logger)
	return logger, nil
}

// New creates a JSON logger writing to w at the named level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}

// ParseLevel converts a configured level name (case-insensitive) to a
// slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
	}
}
