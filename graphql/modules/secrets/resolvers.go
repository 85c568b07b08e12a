package secrets

import (
	"context"
	"time"

	"github.com/whisperboard/secrets-backend/restapi/modules/auth"
	"github.com/whisperboard/secrets-backend/store"
)

// ResolveFeed returns every posted secret.
func ResolveFeed(ctx context.Context, users store.UserStore) ([]map[string]interface{}, error) {
	withSecrets, err := users.ListWithSecrets(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]map[string]interface{}, len(withSecrets))
	for i, user := range withSecrets {
		feed[i] = map[string]interface{}{
			"secret":    user.Secret,
			"posted_at": user.UpdatedAt.Format(time.RFC3339),
		}
	}
	return feed, nil
}

// ResolveOverview returns the board counters.
func ResolveOverview(ctx context.Context, users store.UserStore) (map[string]interface{}, error) {
	withSecrets, err := users.ListWithSecrets(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total_users":   totalUsers,
		"total_secrets": len(withSecrets),
	}, nil
}

// ResolveViewer returns the principal threaded through the request context,
// or nil for anonymous callers.
func ResolveViewer(ctx context.Context) map[string]interface{} {
	user := auth.PrincipalFromContext(ctx)
	if user == nil {
		return nil
	}

	return map[string]interface{}{
		"username":      user.Username,
		"auth_provider": user.AuthProvider,
		"has_secret":    user.HasSecret(),
	}
}
