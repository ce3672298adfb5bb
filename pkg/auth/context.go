package auth

import (
	"context"
	"errors"
)

// UserContext is the authenticated user attached to a request context.
type UserContext struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// ErrNoUserInContext is returned when a handler runs without the
// authentication middleware having set a user.
var ErrNoUserInContext = errors.New("no user in context")

type contextKey struct{}

var userContextKey contextKey

// SetUserInContext attaches the authenticated user to a context.
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the authenticated user from a context.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
