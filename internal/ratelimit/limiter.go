// Package ratelimit provides rate limiting for admin sign-in attempts.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	// Password attempts
	PasswordMaxAttempts int           // Failed logins per account before lockout (default: 5)
	PasswordLockout     time.Duration // Lockout duration after max attempts (default: 15m)
	PasswordMaxIPHour   int           // Login attempts per IP per hour (default: 30)

	// TOTP code attempts
	TOTPMaxAttempts int           // Code attempts per account before lockout (default: 5)
	TOTPLockout     time.Duration // Lockout duration after max attempts (default: 5m)
	TOTPMaxIPHour   int           // Code attempts per IP per hour (default: 30)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		PasswordMaxAttempts: 5,
		PasswordLockout:     15 * time.Minute,
		PasswordMaxIPHour:   30,
		TOTPMaxAttempts:     5,
		TOTPLockout:         5 * time.Minute,
		TOTPMaxIPHour:       30,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

type entry struct {
	count    int
	firstAt  time.Time
	lastAt   time.Time
	lockedAt time.Time // Zero if not locked
}

// Limiter tracks failed sign-in attempts per account and per IP.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.RWMutex
	// Keyed by hash of identifier or IP
	passwordByID map[string]*entry
	passwordByIP map[string]*entry
	totpByID     map[string]*entry
	totpByIP     map[string]*entry

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		passwordByID:  make(map[string]*entry),
		passwordByIP:  make(map[string]*entry),
		totpByID:      make(map[string]*entry),
		totpByIP:      make(map[string]*entry),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// CheckPassword checks if a password attempt is allowed.
// Does NOT record the attempt - call RecordPasswordFailure after a rejection.
func (l *Limiter) CheckPassword(identifier, ip string) LimitResult {
	return l.check(l.passwordByID, l.passwordByIP, "password:", identifier, ip,
		l.config.PasswordMaxAttempts, l.config.PasswordLockout, l.config.PasswordMaxIPHour)
}

// RecordPasswordFailure records a failed password attempt.
// Returns true if max attempts were reached and lockout started.
func (l *Limiter) RecordPasswordFailure(identifier, ip string) bool {
	return l.record(l.passwordByID, l.passwordByIP, "password:", identifier, ip,
		l.config.PasswordMaxAttempts, l.config.PasswordLockout)
}

// ResetPasswordAttempts clears the failure counter after a successful login.
func (l *Limiter) ResetPasswordAttempts(identifier string) {
	idKey := hashKey("password:id:", normalizeIdentifier(identifier))
	l.mu.Lock()
	delete(l.passwordByID, idKey)
	l.mu.Unlock()
}

// CheckTOTP checks if a TOTP code attempt is allowed.
func (l *Limiter) CheckTOTP(identifier, ip string) LimitResult {
	return l.check(l.totpByID, l.totpByIP, "totp:", identifier, ip,
		l.config.TOTPMaxAttempts, l.config.TOTPLockout, l.config.TOTPMaxIPHour)
}

// RecordTOTPFailure records a failed TOTP code attempt.
// Returns true if max attempts were reached and lockout started.
func (l *Limiter) RecordTOTPFailure(identifier, ip string) bool {
	return l.record(l.totpByID, l.totpByIP, "totp:", identifier, ip,
		l.config.TOTPMaxAttempts, l.config.TOTPLockout)
}

// ResetTOTPAttempts clears the code counter after a successful verification.
func (l *Limiter) ResetTOTPAttempts(identifier string) {
	idKey := hashKey("totp:id:", normalizeIdentifier(identifier))
	l.mu.Lock()
	delete(l.totpByID, idKey)
	l.mu.Unlock()
}

func (l *Limiter) check(byID, byIP map[string]*entry, prefix, identifier, ip string, maxAttempts int, lockout time.Duration, maxIPHour int) LimitResult {
	l.startCleanup()
	now := l.clock.Now()
	idKey := hashKey(prefix+"id:", normalizeIdentifier(identifier))
	ipKey := hashKey(prefix+"ip:", ip)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if e := byID[idKey]; e != nil {
		if !e.lockedAt.IsZero() {
			elapsed := now.Sub(e.lockedAt)
			if elapsed < lockout {
				return LimitResult{
					Allowed:    false,
					RetryAfter: lockout - elapsed,
					Reason:     "lockout",
				}
			}
			// Lockout expired - will be cleaned up, allow this request
		} else if e.count >= maxAttempts {
			return LimitResult{
				Allowed:    false,
				RetryAfter: lockout,
				Reason:     "max_attempts",
			}
		}
	}

	if e := byIP[ipKey]; e != nil {
		if now.Sub(e.firstAt) < time.Hour && e.count >= maxIPHour {
			return LimitResult{
				Allowed:    false,
				RetryAfter: time.Hour - now.Sub(e.firstAt),
				Reason:     "ip_hourly_limit",
			}
		}
	}

	return LimitResult{Allowed: true}
}

func (l *Limiter) record(byID, byIP map[string]*entry, prefix, identifier, ip string, maxAttempts int, lockout time.Duration) (lockedOut bool) {
	now := l.clock.Now()
	idKey := hashKey(prefix+"id:", normalizeIdentifier(identifier))
	ipKey := hashKey(prefix+"ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := byID[idKey]
	if e == nil {
		byID[idKey] = &entry{count: 1, firstAt: now, lastAt: now}
	} else if !e.lockedAt.IsZero() && now.Sub(e.lockedAt) >= lockout {
		// Lockout expired, reset
		byID[idKey] = &entry{count: 1, firstAt: now, lastAt: now}
	} else {
		e.count++
		e.lastAt = now
		if e.count >= maxAttempts && e.lockedAt.IsZero() {
			e.lockedAt = now
			lockedOut = true
		}
	}

	e = byIP[ipKey]
	if e == nil || now.Sub(e.firstAt) >= time.Hour {
		byIP[ipKey] = &entry{count: 1, firstAt: now, lastAt: now}
	} else {
		e.count++
		e.lastAt = now
	}

	return lockedOut
}

func hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(hash[:8])
}

// normalizeIdentifier lowercases the identifier to prevent case-based bypass.
func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	maxPassword := l.config.PasswordLockout + time.Hour
	for k, e := range l.passwordByID {
		if now.Sub(e.lastAt) > maxPassword {
			delete(l.passwordByID, k)
		}
	}
	for k, e := range l.passwordByIP {
		if now.Sub(e.lastAt) > time.Hour {
			delete(l.passwordByIP, k)
		}
	}

	maxTOTP := l.config.TOTPLockout + time.Hour
	for k, e := range l.totpByID {
		if now.Sub(e.lastAt) > maxTOTP {
			delete(l.totpByID, k)
		}
	}
	for k, e := range l.totpByIP {
		if now.Sub(e.lastAt) > time.Hour {
			delete(l.totpByIP, k)
		}
	}
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost IP from X-Forwarded-For (added by your proxy).
// When trustProxy is false, ignores X-Forwarded-For entirely (prevents spoofing).
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// Use RIGHTMOST IP - this is the one your proxy added, not user-supplied
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			return strings.TrimSpace(parts[len(parts)-1])
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
			return r.RemoteAddr
		}
		if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
			candidate := r.RemoteAddr[:idx]
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
		return r.RemoteAddr
	}
	return ip
}

var privateNetworks []*net.IPNet

func init() {
	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10", // Link-local
	}
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// SanitizeIdentifier masks an email for logging.
func SanitizeIdentifier(identifier string) string {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if strings.Contains(identifier, "@") {
		parts := strings.Split(identifier, "@")
		if len(parts[0]) > 2 {
			return parts[0][:2] + "***@" + parts[1]
		}
		return "***@" + parts[1]
	}
	if len(identifier) >= 4 {
		return "***" + identifier[len(identifier)-4:]
	}
	return "***"
}

// LogRateLimitExceeded logs a rate limit event with sanitized identifier.
func LogRateLimitExceeded(limitType, identifier, ip, reason string) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("type", limitType).
		Str("identifier", SanitizeIdentifier(identifier)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Sign-in rate limit exceeded")
}
