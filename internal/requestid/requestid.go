package requestid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

const maxLen = 128

// New generates a random UUID v4 request ID.
func New() string {
	return uuid.NewString()
}

// Valid reports whether a client-supplied ID is safe to propagate: non-empty,
// at most 128 chars, and limited to letters, digits, '-', '_' and '.'.
func Valid(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// WithRequestID returns a copy of ctx with the request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the request ID from ctx. Returns "" if absent.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
