// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/argon2"

	"github.com/avenra/website/internal/auth"
	"github.com/avenra/website/internal/store"
)

func loginRequest(email, password string) *http.Request {
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLogin_Success(t *testing.T) {
	db := testDB(t)
	hash, err := auth.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	createTestAdmin(t, db, "admin@avenra.test", hash)

	h := NewAuthHandler(db, testRenderer(t), testSecret, nil, true)

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest("admin@avenra.test", "correct horse battery"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, want /admin", loc)
	}

	var sessionSet bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.Value != "" {
			sessionSet = true
			if !c.HttpOnly {
				t.Error("session cookie is not HttpOnly")
			}
		}
	}
	if !sessionSet {
		t.Error("session cookie not set after login")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db := testDB(t)
	hash, err := auth.HashPassword("right password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	createTestAdmin(t, db, "admin@avenra.test", hash)

	h := NewAuthHandler(db, testRenderer(t), testSecret, nil, true)

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest("admin@avenra.test", "wrong password"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect back to login", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, want /admin/login", loc)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.Value != "" {
			t.Error("session cookie set despite wrong password")
		}
	}
}

func TestLogin_UnknownEmailSameRedirect(t *testing.T) {
	db := testDB(t)
	h := NewAuthHandler(db, testRenderer(t), testSecret, nil, true)

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest("nobody@avenra.test", "whatever"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, want /admin/login", loc)
	}
}

// legacyHash builds an argon2id hash with old 64MB parameters so that
// NeedsRehash reports true while verification still succeeds.
func legacyHash(t *testing.T, password string) string {
	t.Helper()

	salt := []byte("0123456789abcdef")
	const memory, timeCost, threads = 64 * 1024, 1, 2
	hash := argon2.IDKey([]byte(password), salt, timeCost, memory, threads, 32)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, timeCost, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func TestLogin_RehashesLegacyHash(t *testing.T) {
	db := testDB(t)
	legacy := legacyHash(t, "legacy password")
	if !auth.NeedsRehash(legacy) {
		t.Fatal("legacy hash unexpectedly uses current parameters")
	}
	userID := createTestAdmin(t, db, "admin@avenra.test", legacy)

	h := NewAuthHandler(db, testRenderer(t), testSecret, nil, true)
	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest("admin@avenra.test", "legacy password"))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin" {
		t.Fatalf("login with legacy hash failed: %d %s", rec.Code, rec.Header().Get("Location"))
	}

	user, err := store.New(db).GetUserByID(t.Context(), userID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if auth.NeedsRehash(user.PasswordHash) {
		t.Error("password hash was not upgraded on login")
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	db := testDB(t)
	h := NewAuthHandler(db, testRenderer(t), testSecret, nil, true)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared on logout")
	}
}
