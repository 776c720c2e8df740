// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package session manages the signed admin session cookie.
package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"

	"github.com/mcubecollections/selfie-verification/internal/config"
)

// Session is the authenticated admin identity carried by the cookie.
type Session struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
}

// Manager encodes and decodes the admin session cookie.
type Manager struct {
	sc     *securecookie.SecureCookie
	name   string
	maxAge int
	secure bool
}

// NewManager creates a session manager. Without a configured hash key a
// random one is generated, which invalidates sessions on restart; that is
// refused in production.
func NewManager(cfg config.SessionConfig, production bool) (*Manager, error) {
	hashKey, err := keyFromHex(cfg.HashKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session hash key: %w", err)
	}
	if hashKey == nil {
		if production {
			return nil, errors.New("session hash key is required in production")
		}
		hashKey = securecookie.GenerateRandomKey(32)
	}

	blockKey, err := keyFromHex(cfg.BlockKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session block key: %w", err)
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(cfg.MaxAge)

	return &Manager{
		sc:     sc,
		name:   cfg.CookieName,
		maxAge: cfg.MaxAge,
		secure: cfg.Secure,
	}, nil
}

func keyFromHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

// Create builds a signed session cookie for the given admin.
func (m *Manager) Create(adminID int64, username string) (*http.Cookie, error) {
	value, err := m.sc.Encode(m.name, Session{AdminID: adminID, Username: username})
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Get decodes the session from the request cookie. Any absent, expired or
// tampered cookie yields an error.
func (m *Manager) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.name)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := m.sc.Decode(m.name, cookie.Value, &s); err != nil {
		return nil, err
	}
	if s.AdminID == 0 {
		return nil, errors.New("empty session")
	}
	return &s, nil
}

// Clear returns an expired cookie that removes the session.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
