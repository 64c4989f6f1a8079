package linsearch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf).WithStrategy(StrategyUnrolled).WithLength(4096).WithISA()
	l.Info("hello")

	out := buf.String()
	assert.Contains(t, out, "strategy=unrolled")
	assert.Contains(t, out, "length=4096")
	assert.Contains(t, out, "isa="+ActiveISA())
}

func TestLogger_LogBenchmark(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.LogBenchmark(ctx, "run-1", 10, 0, time.Second, nil)
	assert.Contains(t, buf.String(), "level=INFO")
	buf.Reset()

	l.LogBenchmark(ctx, "run-2", 10, 2, time.Second, nil)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "failures=2")
	buf.Reset()

	l.LogBenchmark(ctx, "run-3", 0, 0, 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestLogger_LogPublishAndDataset(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.LogPublish(ctx, "reports/a.json", 128, nil)
	assert.Contains(t, buf.String(), "bytes=128")
	buf.Reset()

	l.LogDataset(ctx, "load", "last-4096", 0, errors.New("missing"))
	assert.Contains(t, buf.String(), `msg="dataset load failed"`)
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
