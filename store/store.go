// Package store defines the persistence interfaces for users and sessions
// and their ArangoDB implementations. Handlers depend on the interfaces so
// tests can substitute in-memory doubles.
package store

import (
	"context"
	"errors"

	"github.com/whisperboard/secrets-backend/model"
)

// ErrNotFound is returned when no document matches the lookup.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("duplicate key")

// UserStore persists user accounts.
type UserStore interface {
	// GetByKey returns the user with the given document key.
	GetByKey(ctx context.Context, key string) (*model.User, error)

	// GetByUsername returns the local user with the given username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Insert stores a new user. A unique-index violation surfaces as
	// ErrDuplicate; the store's constraint is the single arbiter under
	// concurrent registration.
	Insert(ctx context.Context, user *model.User) error

	// FindOrCreateByProvider returns the user holding the given external
	// identity, creating one if absent. Idempotent for a given
	// provider/externalID pair.
	FindOrCreateByProvider(ctx context.Context, provider, externalID string) (*model.User, error)

	// UpdateSecret overwrites the secret field of the given user.
	UpdateSecret(ctx context.Context, key, secret string) error

	// ListWithSecrets returns every user whose secret field is non-empty.
	ListWithSecrets(ctx context.Context) ([]*model.User, error)

	// CountUsers returns the number of accounts, local and federated alike.
	CountUsers(ctx context.Context) (int, error)
}

// SessionStore persists server-side session records.
type SessionStore interface {
	Insert(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, token string) (*model.Session, error)
	// Delete removes the session if present. Deleting an unknown token is
	// not an error; logout is idempotent.
	Delete(ctx context.Context, token string) error
}
