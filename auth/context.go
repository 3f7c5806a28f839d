package auth

import "context"

// contextKey is a private type for context keys so values set here cannot
// collide with keys from other packages.
type contextKey string

// userIDContextKey is the key under which RequireAuth stores the
// authenticated user's id.
const userIDContextKey contextKey = "auth_user_id"

// NewContextWithUserID returns a child context carrying the authenticated
// user's id.
func NewContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// GetUserIDFromContext retrieves the user id set by RequireAuth. The second
// return value is false when the request did not pass through the middleware.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}
