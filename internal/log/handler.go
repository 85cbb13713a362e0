package log

import (
	"context"
	"log/slog"

	"github.com/ErlanBelekov/authapi/internal/identity"
	"github.com/ErlanBelekov/authapi/internal/requestid"
)

// ContextHandler wraps an slog.Handler and copies request-scoped values
// (request_id, and caller_id once the auth middleware has run) from the
// context of each log record.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := requestid.FromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if userID := identity.UserIDFromContext(ctx); userID != "" {
		r.AddAttrs(slog.String("caller_id", userID))
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}
