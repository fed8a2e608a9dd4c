package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mhruby/rinkside/internal/api/authz"
	"github.com/mhruby/rinkside/internal/config"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	prev := appConfig
	appConfig = &config.Config{}
	appConfig.App.Environment = "development"
	appConfig.App.SecretKey = "test-secret-key"
	t.Cleanup(func() { appConfig = prev })
}

func cookieFromRecorder(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthCookieRoundTrip(t *testing.T) {
	setupTestConfig(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	user := &authz.AuthUser{Email: "admin@example.com", IsAdmin: true}

	if err := SetAuthCookie(rec, req, user); err != nil {
		t.Fatalf("set auth cookie: %v", err)
	}

	cookie := cookieFromRecorder(t, rec, authCookieName)
	if cookie == nil {
		t.Fatal("auth cookie not set")
	}

	next := httptest.NewRequest(http.MethodGet, "/admin", nil)
	next.AddCookie(cookie)

	got, err := UserFromRequest(httptest.NewRecorder(), next)
	if err != nil {
		t.Fatalf("user from request: %v", err)
	}
	if got == nil || got.Email != "admin@example.com" || !got.IsAdmin {
		t.Fatalf("got %+v", got)
	}
}

func TestAuthCookieTamperRejected(t *testing.T) {
	setupTestConfig(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	if err := SetAuthCookie(rec, req, &authz.AuthUser{Email: "admin@example.com", IsAdmin: true}); err != nil {
		t.Fatalf("set auth cookie: %v", err)
	}

	cookie := cookieFromRecorder(t, rec, authCookieName)
	parts := strings.SplitN(cookie.Value, ".", 2)
	if len(parts) != 2 {
		t.Fatalf("unexpected cookie format %q", cookie.Value)
	}

	// Flip a byte in the payload; the signature no longer matches.
	payload := []byte(parts[0])
	payload[0] ^= 0x01
	cookie.Value = string(payload) + "." + parts[1]

	next := httptest.NewRequest(http.MethodGet, "/admin", nil)
	next.AddCookie(cookie)

	if _, err := UserFromRequest(httptest.NewRecorder(), next); err == nil {
		t.Fatal("tampered cookie must be rejected")
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	setupTestConfig(t)

	rec := httptest.NewRecorder()
	if err := CreateSession(rec, "admin@example.com", "access-token"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	cookie := cookieFromRecorder(t, rec, sessionCookieName)
	if cookie == nil {
		t.Fatal("session cookie not set")
	}

	next := httptest.NewRequest(http.MethodGet, "/admin", nil)
	next.AddCookie(cookie)

	got, err := UserFromRequest(httptest.NewRecorder(), next)
	if err != nil {
		t.Fatalf("user from request: %v", err)
	}
	if got == nil || got.Email != "admin@example.com" {
		t.Fatalf("got %+v", got)
	}
	if token := AccessTokenFromRequest(next); token != "access-token" {
		t.Errorf("access token = %q", token)
	}
}

func TestClearSessionInvalidatesToken(t *testing.T) {
	setupTestConfig(t)

	rec := httptest.NewRecorder()
	if err := CreateSession(rec, "admin@example.com", ""); err != nil {
		t.Fatalf("create session: %v", err)
	}
	cookie := cookieFromRecorder(t, rec, sessionCookieName)

	logoutReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	logoutReq.AddCookie(cookie)
	ClearSession(httptest.NewRecorder(), logoutReq)

	next := httptest.NewRequest(http.MethodGet, "/admin", nil)
	next.AddCookie(cookie)
	got, err := UserFromRequest(httptest.NewRecorder(), next)
	if err != nil {
		t.Fatalf("user from request: %v", err)
	}
	if got != nil {
		t.Fatalf("cleared session still resolves: %+v", got)
	}
}

func TestCreateSessionReplacesExisting(t *testing.T) {
	setupTestConfig(t)

	first := httptest.NewRecorder()
	if err := CreateSession(first, "admin@example.com", ""); err != nil {
		t.Fatalf("create first session: %v", err)
	}
	firstCookie := cookieFromRecorder(t, first, sessionCookieName)

	second := httptest.NewRecorder()
	if err := CreateSession(second, "admin@example.com", ""); err != nil {
		t.Fatalf("create second session: %v", err)
	}

	// First token is revoked when the same admin signs in again.
	next := httptest.NewRequest(http.MethodGet, "/admin", nil)
	next.AddCookie(firstCookie)
	got, err := UserFromRequest(httptest.NewRecorder(), next)
	if err != nil {
		t.Fatalf("user from request: %v", err)
	}
	if got != nil {
		t.Fatalf("stale session still resolves: %+v", got)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !VerifyPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
