package auth

import (
	"context"
)

type contextKey string

const actorIDKey contextKey = "actorID"

// ContextWithActorID returns a new context carrying the acting user's
// identity as resolved by the HTTP boundary.
func ContextWithActorID(ctx context.Context, id int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorIDKey, id)
}

// ActorIDFromContext retrieves the acting user's identity, if any.
func ActorIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	value := ctx.Value(actorIDKey)
	if value == nil {
		return 0, false
	}
	id, ok := value.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
