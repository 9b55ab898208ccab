package inputsets

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contextKey string

func newBufferLogger(buf *bytes.Buffer) *SlogAdapter {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler))
}

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("msg", "k", "v")
	l.Info("msg", "k", "v")
	l.Warn("msg", "k", "v")
	l.Error("msg", "k", "v")

	_, ok := l.With("k", "v").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		require.NotNil(t, adapter.logger)
	})

	t.Run("levels reach the handler", func(t *testing.T) {
		var buf bytes.Buffer
		l := newBufferLogger(&buf)

		l.Debug("debug message", "a", 1)
		l.Info("info message")
		l.Warn("warn message")
		l.Error("error message")

		out := buf.String()
		for _, want := range []string{"debug message", "a=1", "info message", "warn message", "error message"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("With prepends attributes", func(t *testing.T) {
		var buf bytes.Buffer
		l := newBufferLogger(&buf).With("component", "merger")
		l.Info("merged")

		assert.Contains(t, buf.String(), "component=merger")
	})
}

func TestContextLogger(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("request"), "r1")

	var buf bytes.Buffer
	l := NewContextLogger(ctx, newBufferLogger(&buf))
	l.Warn("careful", "path", "pipeline.name")

	assert.Equal(t, "r1", l.Context().Value(contextKey("request")))
	assert.Contains(t, buf.String(), "path=pipeline.name")

	child, ok := l.With("k", "v").(*ContextLogger)
	require.True(t, ok)
	assert.Equal(t, ctx, child.Context())

	assert.NotPanics(t, func() {
		NewContextLogger(ctx, nil).Info("no logger")
	})
}

func TestOrNop(t *testing.T) {
	assert.Equal(t, NopLogger{}, OrNop(nil))

	var buf bytes.Buffer
	l := newBufferLogger(&buf)
	assert.Same(t, l, OrNop(l))
}
