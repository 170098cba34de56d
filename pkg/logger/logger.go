package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Default is the default logger instance
	Default *slog.Logger
)

func init() {
	Default = New("info", os.Stdout)
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
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

// New creates a new JSON logger with the specified level and output
func New(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// NewText creates a new text-formatted logger (useful on a terminal)
func NewText(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetDefault sets the default logger
func SetDefault(logger *slog.Logger) {
	Default = logger
	slog.SetDefault(logger)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Default.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Default.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Default.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Default.Error(msg, args...)
}

// With returns a logger with additional attributes
func With(args ...any) *slog.Logger {
	return Default.With(args...)
}

// Component returns a child of the default logger tagged with a component name
func Component(name string) *slog.Logger {
	return Default.With("component", name)
}

// Tracer emits decision traces. Enabled traces go out at info level so they
// show under the default configuration; disabled traces drop to debug.
type Tracer struct {
	log     *slog.Logger
	enabled bool
}

// NewTracer wraps l; a nil logger uses the default
func NewTracer(l *slog.Logger, enabled bool) Tracer {
	if l == nil {
		l = Default
	}
	return Tracer{log: l, enabled: enabled}
}

// Enabled reports whether traces are promoted to info
func (t Tracer) Enabled() bool {
	return t.enabled
}

// Trace logs one trace message
func (t Tracer) Trace(msg string, args ...any) {
	level := slog.LevelDebug
	if t.enabled {
		level = slog.LevelInfo
	}
	t.log.Log(context.Background(), level, msg, args...)
}
