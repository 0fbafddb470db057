// Package logger configures the process-wide log/slog logger.
// Output is JSON with source locations so every entry can be traced back to
// the line that produced it.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup(level slog.Level) {
	SetupWriter(os.Stdout, level)
}

// SetupWriter initializes the global slog logger with JSON output to w.
func SetupWriter(w io.Writer, level slog.Level) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	slog.SetDefault(slog.New(handler))
}

// SetupFile sends logs to path, appending. The terminal UI uses it because
// stdout belongs to the screen. The caller closes the returned file.
func SetupFile(path string, level slog.Level) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetupWriter(f, level)
	return f, nil
}

// ParseLevel converts a string log level to slog.Level.
// Valid values: "debug", "info", "warn", "error" (case-insensitive).
// Unrecognized values default to info level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
