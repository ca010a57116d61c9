package identity

import (
	"context"
	"log/slog"
)

// ctxKey prevents collisions with context values set by other packages.
type ctxKey struct{}

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext retrieves the caller identity set by the boundary layer.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// MustFromContext panics when no identity is present. Use only behind
// middleware that guarantees an authenticated caller.
func MustFromContext(ctx context.Context) Identity {
	id, ok := FromContext(ctx)
	if !ok {
		panic("identity: no caller identity in context")
	}
	return id
}

// LogExtractor enriches log records with the caller id and role when an
// identity is present in the context. Wire it into the logger factory's
// context extractors.
func LogExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("caller",
			slog.Int64("id", id.ID),
			slog.String("role", string(id.Role)),
		), true
	}
}
