package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// testLoginProtectionConfig returns a config suitable for fast testing.
func testLoginProtectionConfig(maxAttempts int, lockoutDuration, attemptWindow time.Duration) LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       10,  // High rate for testing
		IPBurst:           100, // High burst for testing
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   lockoutDuration,
		AttemptWindow:     attemptWindow,
	}
}

func TestDefaultLoginProtectionConfig(t *testing.T) {
	cfg := DefaultLoginProtectionConfig()

	if cfg.IPRateLimit != 0.5 {
		t.Errorf("IPRateLimit = %v, want 0.5", cfg.IPRateLimit)
	}
	if cfg.MaxFailedAttempts != 5 {
		t.Errorf("MaxFailedAttempts = %d, want 5", cfg.MaxFailedAttempts)
	}
	if cfg.LockoutDuration != 15*time.Minute {
		t.Errorf("LockoutDuration = %v, want 15m", cfg.LockoutDuration)
	}
}

func TestAccountLockout(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(3, time.Minute, time.Minute))
	email := "admin@avenra.test"

	// First two failures do not lock
	for i := 0; i < 2; i++ {
		locked, _ := lp.RecordFailedAttempt(email)
		if locked {
			t.Fatalf("locked after %d attempts, want unlocked", i+1)
		}
	}

	// Third failure locks
	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("expected lockout after third attempt")
	}
	if duration != time.Minute {
		t.Errorf("lock duration = %v, want 1m", duration)
	}

	isLocked, remaining := lp.IsAccountLocked(email)
	if !isLocked {
		t.Error("IsAccountLocked = false, want true")
	}
	if remaining <= 0 {
		t.Errorf("remaining = %v, want > 0", remaining)
	}
}

func TestAccountLockout_ExponentialBackoff(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(1, time.Minute, time.Hour))
	email := "repeat@avenra.test"

	_, first := lp.RecordFailedAttempt(email)
	if first != time.Minute {
		t.Errorf("first lockout = %v, want 1m", first)
	}

	_, second := lp.RecordFailedAttempt(email)
	if second != 2*time.Minute {
		t.Errorf("second lockout = %v, want 2m", second)
	}
}

func TestRecordSuccessfulLogin_ClearsAttempts(t *testing.T) {
	lp := NewLoginProtection(testLoginProtectionConfig(3, time.Minute, time.Minute))
	email := "ok@avenra.test"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	// Counter starts fresh after a successful login
	locked, _ := lp.RecordFailedAttempt(email)
	if locked {
		t.Error("locked after reset, want unlocked")
	}
}

func TestLoginProtectionMiddleware_RateLimitsPost(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       1,
		IPBurst:           2,
		MaxFailedAttempts: 5,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Burst of 2 is allowed, third is limited
	var lastCode int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(""))
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
	}
	if lastCode != http.StatusTooManyRequests {
		t.Errorf("third POST status = %d, want 429", lastCode)
	}

	// GET requests are never limited
	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5000"
	if ip := clientIP(req); ip != "192.0.2.1:5000" {
		t.Errorf("clientIP = %q, want RemoteAddr", ip)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	if ip := clientIP(req); ip != "203.0.113.9" {
		t.Errorf("clientIP = %q, want X-Forwarded-For value", ip)
	}

	req.Header.Set("X-Real-IP", "198.51.100.2")
	if ip := clientIP(req); ip != "198.51.100.2" {
		t.Errorf("clientIP = %q, want X-Real-IP value", ip)
	}
}
