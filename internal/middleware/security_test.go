package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithSecurityHeaders(cfg SecurityHeadersConfig) *httptest.ResponseRecorder {
	handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSecurityHeaders_Production(t *testing.T) {
	rec := serveWithSecurityHeaders(DefaultSecurityHeadersConfig(false))

	if got := rec.Header().Get("Strict-Transport-Security"); !strings.Contains(got, "max-age=31536000") {
		t.Errorf("HSTS = %q, want max-age=31536000", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q, want SAMEORIGIN", got)
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'self'") {
		t.Errorf("CSP missing default-src: %q", csp)
	}
	if strings.Contains(csp, "unsafe-eval") {
		t.Errorf("production CSP should not allow eval: %q", csp)
	}
}

func TestSecurityHeaders_Development(t *testing.T) {
	rec := serveWithSecurityHeaders(DefaultSecurityHeadersConfig(true))

	if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS should be disabled in development, got %q", got)
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "unsafe-eval") {
		t.Errorf("development CSP should allow eval: %q", csp)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	handler := StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		path         string
		query        string
		wantStatus   int
		wantLocation string
	}{
		{"/en/blog/", "", http.StatusMovedPermanently, "/en/blog"},
		{"/en/blog/", "page=2", http.StatusMovedPermanently, "/en/blog?page=2"},
		{"/en/blog", "", http.StatusOK, ""},
		{"/", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		target := tt.path
		if tt.query != "" {
			target += "?" + tt.query
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", target, rec.Code, tt.wantStatus)
		}
		if tt.wantLocation != "" {
			if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("%s: Location = %q, want %q", target, loc, tt.wantLocation)
			}
		}
	}
}
