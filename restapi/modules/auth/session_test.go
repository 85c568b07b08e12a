package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/whisperboard/secrets-backend/model"
	"github.com/whisperboard/secrets-backend/store/storetest"
)

const testSecret = "test-signing-secret"

// newSessionTestApp wires a minimal app exposing the session manager:
// /in establishes a session for a fixed user, /me reports the resolved
// principal, /out destroys the session.
func newSessionTestApp(t *testing.T) (*fiber.App, *storetest.UserStore, *storetest.SessionStore, *SessionManager, *model.User) {
	t.Helper()

	users := storetest.NewUserStore()
	sessions := storetest.NewSessionStore()
	manager := NewSessionManager(sessions, users, testSecret, time.Hour, zap.NewNop())

	user := seedLocalUser(t, users, "alice", "hunter2hunter2")

	app := fiber.New()
	app.Post("/in", func(c *fiber.Ctx) error {
		if err := manager.Establish(c.Context(), c, user.Key); err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		principal := manager.Resolve(c.Context(), c)
		if principal == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{"key": principal.Key})
	})
	app.Get("/out", func(c *fiber.Ctx) error {
		manager.Destroy(c.Context(), c)
		return c.SendStatus(fiber.StatusOK)
	})

	return app, users, sessions, manager, user
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestSessionEstablishAndResolve(t *testing.T) {
	app, _, sessions, _, _ := newSessionTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/in", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := findCookie(resp, SessionCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 1, sessions.Count())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionResolveAnonymous(t *testing.T) {
	app, _, _, _, _ := newSessionTestApp(t)

	// No cookie at all.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage cookie.
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionResolveUnknownToken(t *testing.T) {
	app, _, _, _, _ := newSessionTestApp(t)

	// Correctly signed cookie referencing a token with no server-side record.
	value, err := SignSessionValue([]byte(testSecret), "no-such-token", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: value})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionResolveExpired(t *testing.T) {
	app, _, sessions, _, user := newSessionTestApp(t)

	// Insert an already expired record and a matching signed cookie.
	expired := model.NewSession("expired-token", user.Key, -time.Hour)
	require.NoError(t, sessions.Insert(context.Background(), expired))

	value, err := SignSessionValue([]byte(testSecret), "expired-token", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: value})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Expired records are reaped on resolution.
	assert.Equal(t, 0, sessions.Count())
}

func TestSessionDestroy(t *testing.T) {
	app, _, sessions, _, _ := newSessionTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/in", nil))
	require.NoError(t, err)
	cookie := findCookie(resp, SessionCookieName)
	require.NotNil(t, cookie)
	require.Equal(t, 1, sessions.Count())

	req := httptest.NewRequest(http.MethodGet, "/out", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, sessions.Count())

	cleared := findCookie(resp, SessionCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// Destroy with no session is fine.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/out", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
