package shared

import "context"

type callerContextKey struct{}

// ContextWithCaller stores the authenticated caller id in context.
func ContextWithCaller(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, callerContextKey{}, userID)
}

// CallerFromContext extracts the authenticated caller id from context.
func CallerFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(callerContextKey{}).(int64)
	return id, ok
}
