package datgo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with datgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithDat adds a dat field to the logger.
func (l *Logger) WithDat(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dat", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSplit logs a set-variant rebuild.
func (l *Logger) LogSplit(ctx context.Context, mergeType string, items int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "split failed",
			"merge_type", mergeType,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "split completed",
		"merge_type", mergeType,
		"items", items,
		"elapsed", elapsed,
	)
}

// LogFilter logs a filter pass.
func (l *Logger) LogFilter(ctx context.Context, filters, marked, removed int) {
	l.DebugContext(ctx, "filters applied",
		"filters", filters,
		"marked", marked,
		"removed", removed,
	)
}

// LogDeduplicate logs a deduplication pass.
func (l *Logger) LogDeduplicate(ctx context.Context, key string, removed int) {
	l.DebugContext(ctx, "deduplicated",
		"key", key,
		"removed", removed,
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"op", op,
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "snapshot "+op,
		"name", name,
		"bytes", bytes,
	)
}

// LogBatch logs the summary of a batch run.
func (l *Logger) LogBatch(ctx context.Context, dats, failed int, items int64, elapsed time.Duration) {
	if failed > 0 {
		l.WarnContext(ctx, "batch completed with failures",
			"total", dats,
			"failed", failed,
			"success", dats-failed,
		)
		return
	}
	l.InfoContext(ctx, "batch completed",
		"dats", dats,
		"items", items,
		"elapsed", elapsed,
	)
}
