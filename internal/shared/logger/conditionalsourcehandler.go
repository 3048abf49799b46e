package logger

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
)

// sourceHandler attaches the caller location to records whose level is listed,
// leaving every other record untouched. The wrapped handler must not set AddSource.
type sourceHandler struct {
	next   slog.Handler
	levels []slog.Level
}

// NewConditionalSourceHandler wraps handler so that only records at the given
// levels carry a source attribute.
func NewConditionalSourceHandler(handler slog.Handler, levels ...slog.Level) slog.Handler {
	return &sourceHandler{next: handler, levels: slices.Clone(levels)}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if slices.Contains(h.levels, r.Level) {
		// Skip runtime.Callers, this method and the slog frame.
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		frame, _ := runtime.CallersFrames(pcs[:]).Next()
		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}))
	}
	return h.next.Handle(ctx, r)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{next: h.next.WithAttrs(attrs), levels: h.levels}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{next: h.next.WithGroup(name), levels: h.levels}
}
