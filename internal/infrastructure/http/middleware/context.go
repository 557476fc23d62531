package middleware

import "context"

type contextKey string

const userIDContextKey contextKey = "user_id"

// WithAuth binds the authenticated user id to the request context.
func WithAuth(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// AuthFromContext returns the user id set by AuthValidator, or "".
func AuthFromContext(ctx context.Context) string {
	v, _ := ctx.Value(userIDContextKey).(string)
	return v
}
