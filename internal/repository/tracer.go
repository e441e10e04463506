package repository

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/tracelog"
)

// NewSQLTracer returns a pgx query tracer that writes every statement to log at debug level.
// It is meant for the local environment only, because arguments are logged verbatim.
func NewSQLTracer(log *slog.Logger) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger:   &slogTraceLogger{log: log.With(slog.String("division", "sql"))},
		LogLevel: tracelog.LogLevelDebug,
	}
}

// slogTraceLogger adapts slog to the tracelog.Logger interface.
type slogTraceLogger struct {
	log *slog.Logger
}

func (l *slogTraceLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	attrs := make([]slog.Attr, 0, len(data))
	for key, value := range data {
		attrs = append(attrs, slog.Any(key, value))
	}

	l.log.LogAttrs(ctx, toSlogLevel(level), msg, attrs...)
}

func toSlogLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return slog.LevelDebug
	case tracelog.LogLevelInfo:
		return slog.LevelInfo
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
