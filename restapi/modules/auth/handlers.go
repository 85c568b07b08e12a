package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/whisperboard/secrets-backend/model"
	"github.com/whisperboard/secrets-backend/store"
)

// ============================================================================
// AUTH HANDLERS
// ============================================================================

// RegisterForm serves the registration page descriptor.
func RegisterForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page":  "register",
			"error": c.Query("error"),
		})
	}
}

// Register creates a local account and immediately establishes a session.
// A taken username is the one failure the user gets to see the reason for.
func Register(users store.UserStore, sessions *SessionManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CredentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Redirect("/register?error=invalid_request")
		}

		if req.Username == "" || req.Password == "" {
			return c.Redirect("/register?error=missing_fields")
		}

		if err := ValidatePasswordStrength(req.Password); err != nil {
			return c.Redirect("/register?error=weak_password")
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			log.Error("failed to hash password", zap.Error(err))
			return c.Redirect("/register")
		}

		ctx := c.Context()
		user := model.NewLocalUser(req.Username, hash)

		if err := users.Insert(ctx, user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return c.Redirect("/register?error=username_taken")
			}
			log.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
			return c.Redirect("/register")
		}

		if err := sessions.Establish(ctx, c, user.Key); err != nil {
			log.Error("failed to establish session", zap.String("user", user.Key), zap.Error(err))
			return c.Redirect("/login")
		}

		return c.Redirect("/secrets")
	}
}

// LoginForm serves the login page descriptor.
func LoginForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page": "login",
		})
	}
}

// Login verifies credentials and establishes a session. Failures carry no
// detail back to the client.
func Login(users store.UserStore, sessions *SessionManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CredentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Redirect("/login")
		}

		if req.Username == "" || req.Password == "" {
			return c.Redirect("/login")
		}

		ctx := c.Context()
		user, err := VerifyCredentials(ctx, users, req.Username, req.Password)
		if err != nil {
			if !errors.Is(err, ErrInvalidCredentials) {
				log.Error("credential lookup failed", zap.Error(err))
			} else {
				log.Info("rejected login", zap.String("username", req.Username))
			}
			return c.Redirect("/login")
		}

		if err := sessions.Establish(ctx, c, user.Key); err != nil {
			log.Error("failed to establish session", zap.String("user", user.Key), zap.Error(err))
			return c.Redirect("/login")
		}

		return c.Redirect("/secrets")
	}
}

// Logout tears down the session and sends the user home.
func Logout(sessions *SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessions.Destroy(c.Context(), c)
		return c.Redirect("/")
	}
}

// CurrentUser returns the principal stashed by the auth middleware, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, ok := c.Locals(LocalUser).(*model.User)
	if !ok {
		return nil
	}
	return user
}
