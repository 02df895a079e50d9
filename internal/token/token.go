// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package token implements the stateless session token service. Tokens are
// HMAC-SHA-256 signed, carry the admin identity and an absolute expiry, and
// live only in the client's cookie: validity is proven by signature and
// expiry alone, nothing is stored server-side.
package token

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie holding the signed token.
const CookieName = "auth_token"

// TTL is the token validity window and cookie max-age.
const TTL = 24 * time.Hour

// ErrInvalid is returned for any structural, signature, or expiry failure.
// Callers must treat all invalid tokens identically and must not surface
// which check failed.
var ErrInvalid = errors.New("invalid token")

// Subject identifies the authenticated administrator.
type Subject struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// claims is the signed token payload.
type claims struct {
	Subject Subject `json:"sub"`
	jwt.RegisteredClaims
}

// Service issues and verifies session tokens.
type Service struct {
	secret []byte
	secure bool // Secure cookie flag; disabled in development
}

// NewService creates a token service signing with the given symmetric secret.
func NewService(secret []byte, isDev bool) *Service {
	return &Service{
		secret: secret,
		secure: !isDev,
	}
}

// Issue produces a signed token embedding the subject identity with an
// absolute expiry of now + TTL.
func (s *Service) Issue(subject Subject) (string, error) {
	now := time.Now().UTC()
	c := claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

// Verify checks the token signature and expiry and returns the embedded
// subject. Every failure mode collapses into ErrInvalid.
func (s *Service) Verify(tokenString string) (Subject, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return Subject{}, ErrInvalid
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return Subject{}, ErrInvalid
	}
	return c.Subject, nil
}

// SetCookie attaches the token to the response as an HTTP-only, SameSite=Lax
// cookie with max-age equal to the token validity window.
func (s *Service) SetCookie(w http.ResponseWriter, tokenString string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie deletes the session cookie. Called on logout and on any
// verification failure.
func (s *Service) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest extracts the raw token from the request cookie.
// Returns an empty string when the cookie is absent.
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
