package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := NewSessionToken(testSecret, 42, "admin@example.com", "admin", time.Now())
	if err != nil {
		t.Fatalf("NewSessionToken error: %v", err)
	}

	claims, err := ParseSessionToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	issued := time.Now().Add(-SessionLifetime - time.Minute)
	token, err := NewSessionToken(testSecret, 1, "admin@example.com", "admin", issued)
	if err != nil {
		t.Fatalf("NewSessionToken error: %v", err)
	}

	if _, err := ParseSessionToken(testSecret, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseSessionToken_WrongKey(t *testing.T) {
	token, err := NewSessionToken(testSecret, 1, "admin@example.com", "admin", time.Now())
	if err != nil {
		t.Fatalf("NewSessionToken error: %v", err)
	}

	other := []byte("ffffffffffffffffffffffffffffffff")
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatal("expected error for token signed with a different key")
	}
}

func TestParseSessionToken_Garbage(t *testing.T) {
	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseSessionToken(testSecret, input); err == nil {
			t.Errorf("expected error for input %q", input)
		}
	}
}

func TestSessionFromRequest(t *testing.T) {
	token, err := NewSessionToken(testSecret, 7, "admin@example.com", "admin", time.Now())
	if err != nil {
		t.Fatalf("NewSessionToken error: %v", err)
	}

	t.Run("valid cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		claims := SessionFromRequest(r, testSecret)
		if claims == nil {
			t.Fatal("expected claims, got nil")
		}
		if claims.UserID != 7 {
			t.Errorf("UserID = %d, want 7", claims.UserID)
		}
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if claims := SessionFromRequest(r, testSecret); claims != nil {
			t.Fatal("expected nil claims without cookie")
		}
	})

	t.Run("tampered cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token + "x"})
		if claims := SessionFromRequest(r, testSecret); claims != nil {
			t.Fatal("expected nil claims for tampered token")
		}
	})
}

func TestClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookie(w, true)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Name != SessionCookieName {
		t.Errorf("cookie name = %q", cookies[0].Name)
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("expected negative MaxAge, got %d", cookies[0].MaxAge)
	}
}
