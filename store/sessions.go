package store

import (
	"context"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/whisperboard/secrets-backend/database"
	"github.com/whisperboard/secrets-backend/model"
)

// ArangoSessionStore implements SessionStore on the sessions collection.
type ArangoSessionStore struct {
	db database.DBConnection
}

// NewArangoSessionStore creates a SessionStore backed by ArangoDB.
func NewArangoSessionStore(db database.DBConnection) *ArangoSessionStore {
	return &ArangoSessionStore{db: db}
}

// Insert stores a new session record keyed by its token.
func (s *ArangoSessionStore) Insert(ctx context.Context, session *model.Session) error {
	query := `
		INSERT {
			_key: @token,
			user_key: @user_key,
			created_at: @created_at,
			expires_at: @expires_at
		} INTO sessions
	`
	bindVars := map[string]interface{}{
		"token":      session.Token,
		"user_key":   session.UserKey,
		"created_at": session.CreatedAt,
		"expires_at": session.ExpiresAt,
	}
	_, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	return err
}

// Get returns the session for the given token.
func (s *ArangoSessionStore) Get(ctx context.Context, token string) (*model.Session, error) {
	query := `FOR s IN sessions FILTER s._key == @token RETURN s`
	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"token": token},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, ErrNotFound
	}

	var session model.Session
	if _, err := cursor.ReadDocument(ctx, &session); err != nil {
		return nil, ErrNotFound
	}
	return &session, nil
}

// Delete removes the session if present. Unknown tokens are ignored so
// logout stays idempotent.
func (s *ArangoSessionStore) Delete(ctx context.Context, token string) error {
	query := `
		FOR s IN sessions
		FILTER s._key == @token
		REMOVE s IN sessions
	`
	_, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"token": token},
	})
	return err
}
