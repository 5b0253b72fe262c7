package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler sends each record to every handler enabled for its level. A
// failing sink does not keep the record from the others.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// AttachSink replaces the default logger with one writing to stdout and
// sink. The postgres backend calls it once its database is open.
func AttachSink(stdout, sink slog.Handler) {
	slog.SetDefault(slog.New(NewMultiHandler(stdout, sink)))
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = fn(h)
	}
	return &MultiHandler{handlers: handlers}
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return m
	}
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return m
	}
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}
