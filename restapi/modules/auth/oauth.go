package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"github.com/whisperboard/secrets-backend/model"
	"github.com/whisperboard/secrets-backend/store"
)

// IdentityProvider abstracts an external OAuth provider: building the
// consent URL and exchanging the callback code for a stable external id.
// Tests stub this to keep the flow off the network.
type IdentityProvider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
}

// Provider is an IdentityProvider over golang.org/x/oauth2.
type Provider struct {
	name     string
	oauth    *oauth2.Config
	userInfo string
}

// NewGoogleProvider configures the Google OAuth flow. The callback URL is
// fixed per provider registration.
func NewGoogleProvider(clientID, clientSecret, baseURL string) *Provider {
	return &Provider{
		name: model.ProviderGoogle,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/auth/google/secrets",
			Scopes:       []string{"profile"},
			Endpoint:     google.Endpoint,
		},
		userInfo: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

// NewFacebookProvider configures the Facebook OAuth flow.
func NewFacebookProvider(clientID, clientSecret, baseURL string) *Provider {
	return &Provider{
		name: model.ProviderFacebook,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/auth/facebook/secrets",
			Endpoint:     facebook.Endpoint,
		},
		userInfo: "https://graph.facebook.com/me?fields=id",
	}
}

// Name returns the provider name as stored on user documents.
func (p *Provider) Name() string {
	return p.name
}

// AuthCodeURL returns the provider consent URL for the given state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange trades the callback code for the provider's stable user id.
func (p *Provider) Exchange(ctx context.Context, code string) (string, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: code exchange: %v", ErrOAuthFailure, err)
	}

	client := p.oauth.Client(ctx, token)
	client.Timeout = 10 * time.Second

	resp, err := client.Get(p.userInfo)
	if err != nil {
		return "", fmt.Errorf("%w: profile fetch: %v", ErrOAuthFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: profile fetch status %d", ErrOAuthFailure, resp.StatusCode)
	}

	var profile struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", fmt.Errorf("%w: profile decode: %v", ErrOAuthFailure, err)
	}
	if profile.ID == "" {
		return "", fmt.Errorf("%w: profile has no id", ErrOAuthFailure)
	}

	return profile.ID, nil
}

// ============================================================================
// OAUTH HANDLERS
// ============================================================================

// OAuthInitiate redirects the user agent to the provider consent endpoint
// with a fresh state value pinned in a short-lived cookie.
func OAuthInitiate(p IdentityProvider, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := GenerateSecureToken(16)
		if err != nil {
			log.Error("failed to generate oauth state", zap.Error(err))
			return c.Redirect("/login")
		}

		c.Cookie(&fiber.Cookie{
			Name:     StateCookieName,
			Value:    state,
			HTTPOnly: true,
			Secure:   false,
			SameSite: "Lax",
			MaxAge:   600,
			Path:     "/",
		})

		return c.Redirect(p.AuthCodeURL(state))
	}
}

// OAuthCallback exchanges the provider response for a profile, maps the
// external identity onto a local user via find-or-create, and establishes
// the session. Every failure path lands back on the login page with no
// detail exposed.
func OAuthCallback(p IdentityProvider, users store.UserStore, sessions *SessionManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errParam := c.Query("error"); errParam != "" {
			log.Info("oauth denied by provider",
				zap.String("provider", p.Name()),
				zap.String("error", errParam))
			return c.Redirect("/login")
		}

		state := c.Query("state")
		expected := c.Cookies(StateCookieName)
		if state == "" || expected == "" || state != expected {
			log.Warn("oauth state mismatch", zap.String("provider", p.Name()))
			return c.Redirect("/login")
		}

		// One-shot state.
		c.Cookie(&fiber.Cookie{
			Name:     StateCookieName,
			Value:    "",
			Expires:  time.Now().Add(-1 * time.Hour),
			MaxAge:   -1,
			HTTPOnly: true,
			Path:     "/",
		})

		code := c.Query("code")
		if code == "" {
			log.Warn("oauth callback missing code", zap.String("provider", p.Name()))
			return c.Redirect("/login")
		}

		ctx := c.Context()
		externalID, err := p.Exchange(ctx, code)
		if err != nil {
			log.Error("oauth exchange failed", zap.String("provider", p.Name()), zap.Error(err))
			return c.Redirect("/login")
		}

		user, err := users.FindOrCreateByProvider(ctx, p.Name(), externalID)
		if err != nil {
			log.Error("find-or-create failed", zap.String("provider", p.Name()), zap.Error(err))
			return c.Redirect("/login")
		}

		if err := sessions.Establish(ctx, c, user.Key); err != nil {
			log.Error("failed to establish session", zap.String("user", user.Key), zap.Error(err))
			return c.Redirect("/login")
		}

		return c.Redirect("/secrets")
	}
}
