package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"github.com/rs/zerolog"
)

// Format selects the zerolog output encoding.
type Format string

const (
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
	// FormatConsole writes human readable, colourless lines.
	FormatConsole Format = "console"
)

// ZerologProvider implements LoggerProvider on top of zerolog.
type ZerologProvider struct {
	mu   sync.RWMutex
	base zerolog.Logger
}

// NewZerologProvider creates a provider writing JSON lines to stderr.
func NewZerologProvider(level Level) *ZerologProvider {
	return NewZerologProviderWithWriter(os.Stderr, FormatJSON, level)
}

// NewZerologProviderWithWriter creates a provider writing to w in the given format.
func NewZerologProviderWithWriter(w io.Writer, format Format, level Level) *ZerologProvider {
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}
	base := zerolog.New(w).With().Timestamp().Logger().Level(toZerologLevel(level))
	return &ZerologProvider{base: base}
}

// NewNopLogger returns a Logger that discards every record.
func NewNopLogger() Logger {
	return &zerologLogger{zl: zerolog.Nop()}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{zl: p.base}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{zl: p.base.With().Str(ComponentKey, name).Logger()}
}

// SetLevel implements LoggerProvider.SetLevel.
// Loggers handed out earlier keep the level they were created with.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = p.base.Level(toZerologLevel(level))
}

// InstallWarningHook routes errors.Warn diagnostics through this provider.
// Warnings that implement zerolog.LogObjectMarshaler keep their structured fields.
func (p *ZerologProvider) InstallWarningHook() {
	p.mu.RLock()
	zl := p.base.With().Str(ComponentKey, "warnings").Logger()
	p.mu.RUnlock()

	errors.SetZerologWarnFunc(func(w error) {
		ev := zl.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(w.Error())
	})
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	ev := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = withError(ev, ErrAttrKey, err)
			fields = fields[1:]
		}
	}
	l.emit(ev, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i < len(fields); i += 2 {
		key, value := pair(fields, i)
		ctx = ctx.Interface(key, value)
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return l.zl.GetLevel() <= toZerologLevel(level)
}

func (l *zerologLogger) emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	for i := 0; i < len(fields); i += 2 {
		key, value := pair(fields, i)
		switch v := value.(type) {
		case error:
			ev = withError(ev, key, v)
		case zerolog.LogObjectMarshaler:
			ev = ev.Object(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}

// withError attaches err, its category and, when present, its cockroachdb
// stack trace.
func withError(ev *zerolog.Event, key string, err error) *zerolog.Event {
	ev = ev.AnErr(key, err)
	if kind := errorKind(err); kind != "" {
		ev = ev.Str(ErrorTypeKey, kind)
	}
	if st := extractStacktrace(err); st != "" {
		ev = ev.Str(StacktraceAttrKey, st)
	}
	return ev
}

// pair returns the key/value at position i; a dangling value gets the slog
// placeholder key.
func pair(fields []any, i int) (string, any) {
	if i+1 >= len(fields) {
		return "!BADKEY", fields[i]
	}
	return fmt.Sprint(fields[i]), fields[i+1]
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
