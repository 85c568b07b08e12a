package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisperboard/secrets-backend/model"
	"github.com/whisperboard/secrets-backend/restapi/modules/auth"
	"github.com/whisperboard/secrets-backend/store/storetest"
)

func TestResolveFeed(t *testing.T) {
	users := storetest.NewUserStore()
	ctx := context.Background()

	quiet := model.NewLocalUser("quiet", "hash")
	require.NoError(t, users.Insert(ctx, quiet))

	loud := model.NewLocalUser("loud", "hash")
	require.NoError(t, users.Insert(ctx, loud))
	require.NoError(t, users.UpdateSecret(ctx, loud.Key, "i sing in the shower"))

	feed, err := ResolveFeed(ctx, users)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "i sing in the shower", feed[0]["secret"])

	// Both counters: two accounts exist, one posted.
	overview, err := ResolveOverview(ctx, users)
	require.NoError(t, err)
	assert.Equal(t, 2, overview["total_users"])
	assert.Equal(t, 1, overview["total_secrets"])
}

func TestResolveViewer(t *testing.T) {
	users := storetest.NewUserStore()
	ctx := context.Background()

	user := model.NewLocalUser("alice", "hash")
	require.NoError(t, users.Insert(ctx, user))
	require.NoError(t, users.UpdateSecret(ctx, user.Key, "mine"))
	user.Secret = "mine"

	assert.Nil(t, ResolveViewer(ctx))

	viewer := ResolveViewer(auth.ContextWithPrincipal(ctx, user))
	require.NotNil(t, viewer)
	assert.Equal(t, "alice", viewer["username"])
	assert.Equal(t, model.ProviderLocal, viewer["auth_provider"])
	assert.Equal(t, true, viewer["has_secret"])
}

func TestResolveFeedStoreFailure(t *testing.T) {
	users := storetest.NewUserStore()
	users.FailAll = errors.New("store down")

	_, err := ResolveFeed(context.Background(), users)
	assert.Error(t, err)

	_, err = ResolveOverview(context.Background(), users)
	assert.Error(t, err)
}
