// Package logger provides structured logging for the countdown server.
// Every lifecycle transition of the scheduler and every countdown outcome
// should be traceable through this.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the handler used by the logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output io.Writer
}

// Logger wraps a slog.Logger with the server's call conventions.
type Logger struct {
	base *slog.Logger
}

// NewLogger creates a new logger instance writing text to stdout at info level.
func NewLogger() *Logger {
	return New(Options{})
}

// New builds a logger from options.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return &Logger{base: slog.New(handler)}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return &Logger{base: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// With returns a logger that adds the given attributes to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{base: l.base.With(args...)}
}

// Slog exposes the underlying slog logger for libraries that want one.
func (l *Logger) Slog() *slog.Logger {
	return l.base
}

// Debug logs diagnostic messages.
func (l *Logger) Debug(msg string, args ...any) {
	l.base.Debug(msg, args...)
}

// Info logs informational messages.
func (l *Logger) Info(msg string, args ...any) {
	l.base.Info(msg, args...)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string, args ...any) {
	l.base.Warn(msg, args...)
}

// Error logs severe messages.
func (l *Logger) Error(msg string, args ...any) {
	l.base.Error(msg, args...)
}

// Event logs a countdown or player event for later auditing.
func (l *Logger) Event(eventType string, actorID string, details string) {
	l.base.Info(details, "event", eventType, "actor", actorID)
}
