// Copyright (c) 2025-2026 Avenra GmbH
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "avenra_session"

// SessionLifetime is how long an issued session token stays valid.
const SessionLifetime = 24 * time.Hour

// tokenIssuer identifies tokens minted by this service.
const tokenIssuer = "avenra-website"

// SessionClaims is the self-contained session credential. The token is
// verified statelessly on each request; nothing is persisted server-side.
type SessionClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewSessionToken issues a signed HS256 token for the given user.
func NewSessionToken(secret []byte, userID int64, email, role string, now time.Time) (string, error) {
	claims := &SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies the signature and expiry of a session token
// and returns its claims. Any failure (bad signature, expired, malformed,
// wrong algorithm) is returned as an error; callers are expected to treat
// every error uniformly as "no session".
func ParseSessionToken(secret []byte, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("parsing session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

// SessionFromRequest reads and verifies the session cookie. It returns nil
// on any failure: missing cookie, bad signature or expired token all look
// the same to callers.
func SessionFromRequest(r *http.Request, secret []byte) *SessionClaims {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := ParseSessionToken(secret, cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// SetSessionCookie stores the signed token in an HTTP-only cookie.
// Secure is disabled in development so the cookie works over plain HTTP.
func SetSessionCookie(w http.ResponseWriter, token string, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   !isDev,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie. Sessions are stateless,
// so this only removes the client's copy: a captured token remains
// cryptographically valid until its embedded expiry. There is no
// server-side revocation list.
func ClearSessionCookie(w http.ResponseWriter, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !isDev,
		SameSite: http.SameSiteLaxMode,
	})
}
