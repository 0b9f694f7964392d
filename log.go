package zcore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Logger is a small leveled-logging seam. The output router logs
// stream control through it and the read pipeline logs reads and
// read/tokenize failures; Dictionary and Tokenizer do not log.
type Logger interface {
	Debugf(session, format string, args ...any)
	Infof(session, format string, args ...any)
	Warnf(session, format string, args ...any)
	Errorf(session, format string, args ...any)
}

// SlogLogger adapts log/slog to the Logger seam, tagging every line
// with the session correlation ID (see session.go) when one is set.
type SlogLogger struct {
	inner *slog.Logger
}

// NewSlogLogger builds a Logger writing text-handler output to stderr
// at the given minimum level.
func NewSlogLogger(level slog.Level) *SlogLogger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &SlogLogger{inner: slog.New(handler)}
}

// ParseLogLevel maps a Config.Trace.Level string ("debug"|"info"|
// "warn"|"error") to a slog.Level, defaulting to Info on an unknown
// or empty value.
func ParseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Debugf(session, format string, args ...any) { l.log(context.Background(), slog.LevelDebug, session, format, args...) }
func (l *SlogLogger) Infof(session, format string, args ...any)  { l.log(context.Background(), slog.LevelInfo, session, format, args...) }
func (l *SlogLogger) Warnf(session, format string, args ...any)  { l.log(context.Background(), slog.LevelWarn, session, format, args...) }
func (l *SlogLogger) Errorf(session, format string, args ...any) { l.log(context.Background(), slog.LevelError, session, format, args...) }

func (l *SlogLogger) log(ctx context.Context, level slog.Level, session, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if session != "" {
		l.inner.LogAttrs(ctx, level, msg, slog.String("session", session))
		return
	}
	l.inner.LogAttrs(ctx, level, msg)
}

// NopLogger discards everything; used when a caller doesn't wire a
// Logger (tests, minimal embeddings).
type NopLogger struct{}

func (NopLogger) Debugf(session, format string, args ...any) {}
func (NopLogger) Infof(session, format string, args ...any)  {}
func (NopLogger) Warnf(session, format string, args ...any)  {}
func (NopLogger) Errorf(session, format string, args ...any) {}
