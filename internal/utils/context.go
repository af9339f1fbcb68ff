// Package utils holds the small helpers shared across layers: context
// plumbing for the authenticated account id, JWT issue/parse for API tokens,
// payload and purchase-token hashing, JSON response writing, the outbound
// HTTP client the adapters share, and server id generation.
package utils

import (
	"context"
)

// contextKey keeps our context values collision-free against string keys
// other packages might use.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is where the auth middleware stores the authenticated
// account id. Read it back with [GetUserIDFromContext].
var UserIDCtxKey = contextKey("userID")

// SetUserIDToContext returns a child context carrying the authenticated
// account id.
func SetUserIDToContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext retrieves the account id stored by the auth
// middleware. ok is false when the value is absent or not an int64, which
// means the request never passed through the authorized route group.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
