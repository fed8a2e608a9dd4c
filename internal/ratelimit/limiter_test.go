package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestPasswordLockout(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		PasswordMaxAttempts: 3,
		PasswordLockout:     15 * time.Minute,
		PasswordMaxIPHour:   100,
		TOTPMaxAttempts:     5,
		TOTPLockout:         5 * time.Minute,
		TOTPMaxIPHour:       100,
		Clock:               clock,
	})
	defer limiter.Close()

	identifier := "admin@example.com"
	ip := "203.0.113.4"

	for i := 0; i < 2; i++ {
		result := limiter.CheckPassword(identifier, ip)
		if !result.Allowed {
			t.Fatalf("attempt %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
		if locked := limiter.RecordPasswordFailure(identifier, ip); locked {
			t.Fatalf("attempt %d should not trigger lockout", i+1)
		}
	}

	// Third failure hits the limit and starts the lockout.
	if locked := limiter.RecordPasswordFailure(identifier, ip); !locked {
		t.Fatal("third failure should trigger lockout")
	}

	result := limiter.CheckPassword(identifier, ip)
	if result.Allowed {
		t.Fatal("locked-out account must be blocked")
	}
	if result.Reason != "lockout" {
		t.Errorf("reason = %q, want lockout", result.Reason)
	}

	// Lockout expires.
	clock.Advance(16 * time.Minute)
	if result := limiter.CheckPassword(identifier, ip); !result.Allowed {
		t.Errorf("expired lockout should allow again, got blocked: %s", result.Reason)
	}
}

func TestPasswordResetClearsCounter(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		PasswordMaxAttempts: 3,
		PasswordLockout:     15 * time.Minute,
		PasswordMaxIPHour:   100,
		TOTPMaxAttempts:     5,
		TOTPLockout:         5 * time.Minute,
		TOTPMaxIPHour:       100,
		Clock:               clock,
	})
	defer limiter.Close()

	identifier := "admin@example.com"
	ip := "203.0.113.4"

	limiter.RecordPasswordFailure(identifier, ip)
	limiter.RecordPasswordFailure(identifier, ip)
	limiter.ResetPasswordAttempts(identifier)

	// Counter starts fresh; two more failures do not lock.
	limiter.RecordPasswordFailure(identifier, ip)
	if locked := limiter.RecordPasswordFailure(identifier, ip); locked {
		t.Fatal("reset should have cleared the failure counter")
	}
}

func TestTOTPIPHourlyLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		PasswordMaxAttempts: 5,
		PasswordLockout:     15 * time.Minute,
		PasswordMaxIPHour:   100,
		TOTPMaxAttempts:     100,
		TOTPLockout:         5 * time.Minute,
		TOTPMaxIPHour:       2,
		Clock:               clock,
	})
	defer limiter.Close()

	ip := "203.0.113.9"

	// Different accounts, same IP.
	limiter.RecordTOTPFailure("a@example.com", ip)
	limiter.RecordTOTPFailure("b@example.com", ip)

	result := limiter.CheckTOTP("c@example.com", ip)
	if result.Allowed {
		t.Fatal("third account from the same IP should be blocked")
	}
	if result.Reason != "ip_hourly_limit" {
		t.Errorf("reason = %q, want ip_hourly_limit", result.Reason)
	}

	clock.Advance(time.Hour + time.Minute)
	if result := limiter.CheckTOTP("c@example.com", ip); !result.Allowed {
		t.Errorf("new hour should allow again, got blocked: %s", result.Reason)
	}
}

func TestIdentifierNormalization(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		PasswordMaxAttempts: 2,
		PasswordLockout:     15 * time.Minute,
		PasswordMaxIPHour:   100,
		TOTPMaxAttempts:     5,
		TOTPLockout:         5 * time.Minute,
		TOTPMaxIPHour:       100,
		Clock:               clock,
	})
	defer limiter.Close()

	ip := "203.0.113.4"
	limiter.RecordPasswordFailure("Admin@Example.com", ip)
	if locked := limiter.RecordPasswordFailure("admin@example.com ", ip); !locked {
		t.Fatal("case and whitespace variants must share a counter")
	}
}

func TestGetClientIP(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "198.51.100.7:4521"

	if got := GetClientIP(r, false); got != "198.51.100.7" {
		t.Errorf("direct: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.50, 10.0.0.1")
	if got := GetClientIP(r, false); got != "198.51.100.7" {
		t.Errorf("untrusted proxy must ignore XFF, got %q", got)
	}
	if got := GetClientIP(r, true); got != "203.0.113.50" {
		t.Errorf("trusted proxy: got %q", got)
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	if got := SanitizeIdentifier("admin@example.com"); got != "ad***@example.com" {
		t.Errorf("got %q", got)
	}
	if got := SanitizeIdentifier("a@example.com"); got != "***@example.com" {
		t.Errorf("got %q", got)
	}
}
