// Package logger provides the structured logger passed to every component.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is the logging interface used throughout mibdb. It wraps
// slog.Logger so components can take it as a dependency and tests can
// capture or discard output.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithGroup(name string) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New wraps handler in a Logger.
func New(handler slog.Handler) Logger {
	return &slogLogger{l: slog.New(handler)}
}

// Options selects the handler built by Setup.
type Options struct {
	Format string // pretty, text or json
	Level  slog.Level
	// File, when set, receives a plain text copy of every record.
	File io.Writer
}

// Setup builds a Logger writing to w in the requested format.
func Setup(w io.Writer, opts Options) (Logger, error) {
	ho := &slog.HandlerOptions{Level: opts.Level}
	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "pretty":
		h = NewPrettyHandler(w, ho)
	case "text":
		h = slog.NewTextHandler(w, ho)
	case "json":
		ho.AddSource = true
		h = slog.NewJSONHandler(w, ho)
	default:
		return nil, fmt.Errorf("unknown log format %q (want pretty, text or json)", opts.Format)
	}
	if opts.File != nil {
		h = teeHandler{h, slog.NewTextHandler(opts.File, &slog.HandlerOptions{Level: opts.Level})}
	}
	return New(h), nil
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type loggerKey struct{}

// WithContext stores log in ctx.
func WithContext(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext returns the Logger stored in ctx, or a discarding one.
func FromContext(ctx context.Context) Logger {
	if log, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return log
	}
	return Discard()
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

func (s *slogLogger) WithGroup(name string) Logger {
	return &slogLogger{l: s.l.WithGroup(name)}
}

// ParseLevel converts a level name to slog.Level. Unknown names map to info.
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
