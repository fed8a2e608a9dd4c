package authz

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// AuthUser is the authenticated back-office user attached to a request.
type AuthUser struct {
	Email   string
	IsAdmin bool
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

// IsAdmin reports whether the given AuthUser represents an admin.
func IsAdmin(user *AuthUser) bool {
	return user != nil && user.IsAdmin
}

// RequireAdmin fails with ErrUnauthenticated when no user is attached and
// ErrForbidden when the user lacks admin rights.
func RequireAdmin(ctx context.Context) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}
