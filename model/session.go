package model

import "time"

// Session maps an opaque token to a user. The token is the document key in
// the sessions collection; the cookie only ever carries a signed reference
// to it, so discarding the document invalidates the session everywhere.
type Session struct {
	Token     string    `json:"_key"`
	UserKey   string    `json:"user_key"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession creates a session for the given user with the given lifetime.
func NewSession(token, userKey string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:     token,
		UserKey:   userKey,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
