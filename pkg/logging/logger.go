// Package logging provides structured logging for the arena simulation and its hosts.
// It wraps Go's standard slog package with per-run session IDs and compact
// formatting of the float-heavy attributes the simulation emits.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Logger wraps slog.Logger to provide application-specific logging functionality
// with session ID support.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger writing JSON to stdout.
// The log level can be controlled via the ARENA_LOG_LEVEL environment variable.
// Valid levels: DEBUG, INFO, WARN, ERROR. Defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout)
}

// NewLoggerTo creates a Logger writing JSON to w. Hosts that own the terminal
// use this to send logs to a file instead.
func NewLoggerTo(w io.Writer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       getLogLevelFromEnv(),
		ReplaceAttr: roundFloats,
	})
	return &Logger{slog.New(handler)}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// LogWithContext logs a message with automatic session ID extraction from context.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if sessionID := GetSessionID(ctx); sessionID != "" {
		args = append(args, "session_id", sessionID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type sessionIDKey struct{}

// WithSessionID adds a session ID to the context.
// If no session ID is provided, a new one will be generated.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		sessionID = GenerateSessionID()
	}
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// GetSessionID extracts the session ID from the context.
// Returns empty string if no session ID is present.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateSessionID creates a new time-ordered session ID.
func GenerateSessionID() string {
	return ulid.Make().String()
}

// getLogLevelFromEnv determines the log level from environment variables.
func getLogLevelFromEnv() slog.Level {
	levelStr := strings.ToUpper(os.Getenv("ARENA_LOG_LEVEL"))
	switch levelStr {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// roundFloats trims float attributes to three decimals. Positions and timers
// otherwise fill the log with float noise.
func roundFloats(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindFloat64 {
		return a
	}
	f := a.Value.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return slog.String(a.Key, fmt.Sprint(f))
	}
	return slog.Float64(a.Key, math.Round(f*1000)/1000)
}

// WrapError wraps an error with additional context information.
// This preserves the original error while adding descriptive context.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
