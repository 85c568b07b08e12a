// Package restapi provides the main router and the GraphQL transport for
// the HTTP surface.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	secretevents "github.com/whisperboard/secrets-backend/events/modules/secrets"
	"github.com/whisperboard/secrets-backend/restapi/modules/auth"
	"github.com/whisperboard/secrets-backend/restapi/modules/secrets"
	"github.com/whisperboard/secrets-backend/store"
)

// Deps carries the explicitly constructed collaborators the routes close
// over. There is no package-level state; tests build a Deps with fakes.
type Deps struct {
	Users    store.UserStore
	Sessions *auth.SessionManager
	Google   auth.IdentityProvider
	Facebook auth.IdentityProvider
	Producer *secretevents.Producer
	Schema   graphql.Schema
	Log      *zap.Logger
}

// SetupRoutes configures the HTTP surface.
func SetupRoutes(app *fiber.App, d Deps) {
	// Landing and health
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "home"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// Local account flows
	app.Get("/register", auth.RegisterForm())
	app.Post("/register", auth.Register(d.Users, d.Sessions, d.Log))
	app.Get("/login", auth.LoginForm())
	app.Post("/login", auth.Login(d.Users, d.Sessions, d.Log))
	app.Get("/logout", auth.Logout(d.Sessions))

	// OAuth flows; callback paths are fixed by the provider registrations.
	app.Get("/auth/google", auth.OAuthInitiate(d.Google, d.Log))
	app.Get("/auth/google/secrets", auth.OAuthCallback(d.Google, d.Users, d.Sessions, d.Log))
	app.Get("/auth/facebook", auth.OAuthInitiate(d.Facebook, d.Log))
	app.Get("/auth/facebook/secrets", auth.OAuthCallback(d.Facebook, d.Users, d.Sessions, d.Log))

	// Secrets board
	app.Get("/secrets", secrets.List(d.Users, d.Log))
	app.Get("/submit", auth.RequireAuth(d.Sessions), secrets.SubmitForm())
	app.Post("/submit", auth.RequireAuth(d.Sessions), secrets.Submit(d.Users, d.Producer, d.Log))

	// GraphQL read surface
	api := app.Group("/api/v1")
	api.Post("/graphql", auth.OptionalAuth(d.Sessions), GraphQLHandler(d.Schema))

	d.Log.Info("API routes initialized successfully")
}
