// Package logging provides structured logging functionality.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides structured logging capabilities.
// Output always goes to stderr by default; stdout carries the MCP stream.
type Logger struct {
	*slog.Logger
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a new text logger on stderr with the specified level.
func NewLogger(level string) *Logger {
	return New(os.Stderr, level, "text")
}

// New creates a logger writing to w. format is "json" or "text".
func New(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithTool returns a logger with tool information.
func (l *Logger) WithTool(toolName string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("tool", toolName)),
	}
}

// WithSession returns a logger with session information.
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("session", sessionID)),
	}
}
