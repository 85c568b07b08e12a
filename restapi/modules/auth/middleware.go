package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/whisperboard/secrets-backend/model"
)

// Locals keys set by the middleware.
const (
	LocalUser            = "user"
	LocalIsAuthenticated = "is_authenticated"
)

type principalKeyType struct{}

var principalKey principalKeyType

// ContextWithPrincipal returns a context carrying the resolved user, for
// consumers that run outside the Fiber request, such as GraphQL resolvers.
func ContextWithPrincipal(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// PrincipalFromContext returns the user stored by ContextWithPrincipal, or
// nil when the context carries no principal.
func PrincipalFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(principalKey).(*model.User)
	return user
}

// RequireAuth resolves the session and redirects anonymous requests to the
// login page.
func RequireAuth(m *SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := m.Resolve(c.Context(), c)
		if user == nil {
			return c.Redirect("/login")
		}

		c.Locals(LocalIsAuthenticated, true)
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// OptionalAuth identifies the user if a session is present but does not
// block guests.
func OptionalAuth(m *SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := m.Resolve(c.Context(), c)
		if user == nil {
			c.Locals(LocalIsAuthenticated, false)
			return c.Next()
		}

		c.Locals(LocalIsAuthenticated, true)
		c.Locals(LocalUser, user)
		return c.Next()
	}
}
