package hlogtest

import (
	"context"
	"log/slog"
	"slices"
	"testing"

	"github.com/hephbuild/hsize/internal/hlog"
)

func NewLogger(t testing.TB) hlog.Logger {
	return hlog.NewLogger(console{t: t})
}

// NewContext returns a context carrying a logger writing to t.
func NewContext(t testing.TB) context.Context {
	return hlog.ContextWithLogger(t.Context(), NewLogger(t))
}

type console struct {
	t testing.TB

	attrs []slog.Attr
}

func (c console) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (c console) Handle(ctx context.Context, record slog.Record) error {
	c.t.Helper()
	c.t.Log(hlog.FormatRecord(hlog.NewRenderer(true), c.attrs, record))

	return nil
}

func (c console) WithAttrs(attrs []slog.Attr) slog.Handler {
	c.attrs = slices.Clone(c.attrs)
	c.attrs = append(c.attrs, attrs...)

	return c
}

func (c console) WithGroup(name string) slog.Handler {
	return c
}
