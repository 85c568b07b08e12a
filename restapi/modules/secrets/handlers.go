// Package secrets provides the handlers for the shared secrets board.
package secrets

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	secretevents "github.com/whisperboard/secrets-backend/events/modules/secrets"
	"github.com/whisperboard/secrets-backend/restapi/modules/auth"
	"github.com/whisperboard/secrets-backend/store"
)

// List returns every posted secret. The board is public and unfiltered:
// anyone can read, nothing identifies the author beyond what they chose to
// write.
func List(users store.UserStore, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		withSecrets, err := users.ListWithSecrets(ctx)
		if err != nil {
			log.Error("failed to list secrets", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load secrets",
			})
		}

		list := make([]string, len(withSecrets))
		for i, user := range withSecrets {
			list[i] = user.Secret
		}

		return c.JSON(fiber.Map{
			"page":    "secrets",
			"secrets": list,
			"total":   len(list),
		})
	}
}

// SubmitForm serves the submission page descriptor. Mounted behind
// RequireAuth: an anonymous request never reaches it.
func SubmitForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page": "submit",
		})
	}
}

// Submit overwrites the current user's secret with the submitted text.
// Mounted behind RequireAuth.
func Submit(users store.UserStore, producer *secretevents.Producer, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)
		if user == nil {
			return c.Redirect("/login")
		}

		var req struct {
			Secret string `json:"secret" form:"secret"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Redirect("/submit")
		}

		ctx := c.Context()
		if err := users.UpdateSecret(ctx, user.Key, req.Secret); err != nil {
			log.Error("failed to store secret", zap.String("user", user.Key), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to store secret",
			})
		}

		// Best effort: a dead broker must not fail the submission.
		if err := producer.PublishSecretSubmitted(ctx, user.Key); err != nil {
			log.Warn("failed to publish secret event", zap.Error(err))
		}

		return c.Redirect("/secrets")
	}
}
