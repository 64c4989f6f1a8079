package linsearch

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with linsearch-specific context.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(s Strategy) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", s.String()),
	}
}

// WithLength adds a sequence length field to the logger.
func (l *Logger) WithLength(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("length", n),
	}
}

// WithISA adds the active instruction set to the logger.
func (l *Logger) WithISA() *Logger {
	return &Logger{
		Logger: l.Logger.With("isa", ActiveISA(), "block_width", BlockWidth()),
	}
}

// LogLocate logs a single locate call.
func (l *Logger) LogLocate(ctx context.Context, s Strategy, n, index int) {
	l.DebugContext(ctx, "locate completed",
		"strategy", s.String(),
		"length", n,
		"index", index,
		"found", index != NotFound,
	)
}

// LogParallelLocate logs a sharded locate call.
func (l *Logger) LogParallelLocate(ctx context.Context, shards, n, index int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "parallel locate failed",
			"shards", shards,
			"length", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "parallel locate completed",
			"shards", shards,
			"length", n,
			"index", index,
		)
	}
}

// LogBenchmark logs the outcome of a benchmark run.
func (l *Logger) LogBenchmark(ctx context.Context, id string, results, failures int, elapsed time.Duration, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "benchmark failed",
			"run_id", id,
			"error", err,
		)
	case failures > 0:
		l.WarnContext(ctx, "benchmark completed with mismatches",
			"run_id", id,
			"results", results,
			"failures", failures,
			"elapsed", elapsed,
		)
	default:
		l.InfoContext(ctx, "benchmark completed",
			"run_id", id,
			"results", results,
			"elapsed", elapsed,
		)
	}
}

// LogPublish logs a blob upload.
func (l *Logger) LogPublish(ctx context.Context, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "publish failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "published",
			"name", name,
			"bytes", bytes,
		)
	}
}

// LogDataset logs a dataset load or save.
func (l *Logger) LogDataset(ctx context.Context, op, name string, n int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset "+op+" failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "dataset "+op+" completed",
			"name", name,
			"length", n,
		)
	}
}
