package authz

import (
	"context"
	"errors"
	"testing"
)

func TestUserFromContext(t *testing.T) {
	if user := UserFromContext(nil); user != nil {
		t.Errorf("nil context: got %+v", user)
	}
	if user := UserFromContext(context.Background()); user != nil {
		t.Errorf("empty context: got %+v", user)
	}

	want := &AuthUser{Email: "admin@example.com", IsAdmin: true}
	ctx := ContextWithUser(context.Background(), want)
	if got := UserFromContext(ctx); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(context.Background()); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("no user: got %v, want ErrUnauthenticated", err)
	}

	ctx := ContextWithUser(context.Background(), &AuthUser{Email: "viewer@example.com"})
	if err := RequireAdmin(ctx); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-admin: got %v, want ErrForbidden", err)
	}

	ctx = ContextWithUser(context.Background(), &AuthUser{Email: "admin@example.com", IsAdmin: true})
	if err := RequireAdmin(ctx); err != nil {
		t.Errorf("admin: got %v", err)
	}
}
