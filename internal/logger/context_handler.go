package logger

import (
	"context"
	"log/slog"

	"github.com/AdrianCGon/centeno-api/internal/ctxutil"
)

// ContextHandler is a slog.Handler that copies tracing values (run ID and
// source name) from the context into each record, so extraction code can log
// with ctx alone.
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler creates a new ContextHandler that wraps the provided handler.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle adds run_id and source attributes when present and delegates to the
// wrapped handler.
//
// Canceling the context does not affect record processing (per slog.Handler contract).
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if runID, ok := ctxutil.GetRunID(ctx); ok && runID != "" {
		r.AddAttrs(slog.String("run_id", runID))
	}
	if source := ctxutil.GetSource(ctx); source != "" {
		r.AddAttrs(slog.String("source", source))
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler whose attributes consist of
// both the receiver's attributes and the arguments.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup returns a new ContextHandler with the given group name prepended
// to the current group name.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}
