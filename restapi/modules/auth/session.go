package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/whisperboard/secrets-backend/model"
	"github.com/whisperboard/secrets-backend/store"
)

// SessionManager issues opaque session tokens, persists them server-side,
// and resolves them back to a user on later requests. Resolution never
// fails hard: anything wrong with the cookie, the record, or the store
// leaves the request anonymous and lets the route decide what to do.
type SessionManager struct {
	sessions store.SessionStore
	users    store.UserStore
	secret   []byte
	ttl      time.Duration
	log      *zap.Logger
}

// NewSessionManager creates a session manager over the given stores.
func NewSessionManager(sessions store.SessionStore, users store.UserStore, secret string, ttl time.Duration, log *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions: sessions,
		users:    users,
		secret:   []byte(secret),
		ttl:      ttl,
		log:      log,
	}
}

// Establish creates a session for the user and sets the signed cookie.
func (m *SessionManager) Establish(ctx context.Context, c *fiber.Ctx, userKey string) error {
	token, err := GenerateSecureToken(32)
	if err != nil {
		return err
	}

	session := model.NewSession(token, userKey, m.ttl)
	if err := m.sessions.Insert(ctx, session); err != nil {
		return err
	}

	value, err := SignSessionValue(m.secret, token, m.ttl)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   int(m.ttl / time.Second),
		Path:     "/",
	})

	return nil
}

// Resolve returns the user bound to the request's session cookie, or nil
// when the request is anonymous. Expired records are deleted on sight.
func (m *SessionManager) Resolve(ctx context.Context, c *fiber.Ctx) *model.User {
	value := c.Cookies(SessionCookieName)
	if value == "" {
		return nil
	}

	token, err := ParseSessionValue(m.secret, value)
	if err != nil {
		m.log.Debug("rejecting session cookie", zap.Error(err))
		return nil
	}

	session, err := m.sessions.Get(ctx, token)
	if err != nil {
		if err != store.ErrNotFound {
			m.log.Warn("session lookup failed", zap.Error(err))
		}
		return nil
	}

	if session.Expired(time.Now()) {
		if err := m.sessions.Delete(ctx, token); err != nil {
			m.log.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil
	}

	user, err := m.users.GetByKey(ctx, session.UserKey)
	if err != nil {
		if err != store.ErrNotFound {
			m.log.Warn("principal lookup failed", zap.Error(err))
		}
		return nil
	}

	return user
}

// Destroy tears down the session on both sides. Safe to call with no
// session at all; logout is idempotent.
func (m *SessionManager) Destroy(ctx context.Context, c *fiber.Ctx) {
	value := c.Cookies(SessionCookieName)
	if value != "" {
		if token, err := ParseSessionValue(m.secret, value); err == nil {
			if err := m.sessions.Delete(ctx, token); err != nil {
				m.log.Warn("failed to delete session", zap.Error(err))
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		Path:     "/",
	})
}
