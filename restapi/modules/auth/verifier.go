package auth

import (
	"context"
	"errors"

	"github.com/whisperboard/secrets-backend/model"
	"github.com/whisperboard/secrets-backend/store"
)

// VerifyCredentials checks a username/password pair against the stored
// bcrypt hash. Unknown usernames and wrong passwords both come back as
// ErrInvalidCredentials; only a store failure surfaces differently.
func VerifyCredentials(ctx context.Context, users store.UserStore, username, password string) (*model.User, error) {
	user, err := users.GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		// Burn a compare on a fixed hash so the miss costs the same as a
		// mismatch.
		CheckPasswordHash(password, dummyHash)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" || !CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// dummyHash is a fixed bcrypt hash used only to equalize timing on misses.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
