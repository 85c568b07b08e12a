package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisperboard/secrets-backend/model"
	"github.com/whisperboard/secrets-backend/store/storetest"
)

func seedLocalUser(t *testing.T, users *storetest.UserStore, username, password string) *model.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	user := model.NewLocalUser(username, hash)
	require.NoError(t, users.Insert(context.Background(), user))
	return user
}

func TestVerifyCredentials(t *testing.T) {
	users := storetest.NewUserStore()
	seeded := seedLocalUser(t, users, "alice", "hunter2hunter2")

	user, err := VerifyCredentials(context.Background(), users, "alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, seeded.Key, user.Key)
}

func TestVerifyCredentialsWrongPassword(t *testing.T) {
	users := storetest.NewUserStore()
	seedLocalUser(t, users, "alice", "hunter2hunter2")

	_, err := VerifyCredentials(context.Background(), users, "alice", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyCredentialsUnknownUser(t *testing.T) {
	users := storetest.NewUserStore()

	// Unknown user and wrong password are indistinguishable.
	_, err := VerifyCredentials(context.Background(), users, "nobody", "whatever pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyCredentialsFederatedUser(t *testing.T) {
	users := storetest.NewUserStore()
	fed := model.NewFederatedUser(model.ProviderGoogle, "g-123")
	fed.Username = "fed"
	require.NoError(t, users.Insert(context.Background(), fed))

	// No password hash on the account; any password fails.
	_, err := VerifyCredentials(context.Background(), users, "fed", "any password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyCredentialsStoreFailure(t *testing.T) {
	users := storetest.NewUserStore()
	users.FailAll = errors.New("store down")

	_, err := VerifyCredentials(context.Background(), users, "alice", "hunter2hunter2")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
