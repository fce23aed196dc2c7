// Package log provides a structured logging interface for preprocessing runs.
//
// The interface is slog-compatible so the backend can be switched; the default
// backend is zerolog (see NewZerologProvider). Every pipeline stage receives a
// Logger scoped to its component name and reports shape changes through the
// attribute keys in attributes.go.
//
// Example usage:
//
//	provider := log.NewZerologProvider(log.LevelInfo)
//	logger := provider.GetLoggerWithName("pipeline")
//	logger.Info("missing values removed",
//	    log.StageKey, "drop_missing",
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 12,
//	)
package log

import (
	"context"
	"log/slog"
	"strings"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs. With returns a child logger whose
// fields are attached to every record it emits.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error it is attached under the "error" key
	// together with its stack trace.
	//
	// Example:
	//   logger.Error("run failed", err, log.StageKey, "load")
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Slog converts the level to its slog equivalent.
func (l Level) Slog() slog.Level {
	return slog.Level(l)
}

// ParseLevel parses "debug", "info", "warn" or "error" (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log-level", "must be one of debug, info, warn, error", s)
	}
}

// LoggerProvider defines an interface for creating and configuring loggers.
// It allows the pipeline to be run with the zerolog backend in production and
// with TestLoggerProvider in tests.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for loggers created afterwards.
	SetLevel(level Level)
}
