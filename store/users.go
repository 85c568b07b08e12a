package store

import (
	"context"
	"strings"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/google/uuid"

	"github.com/whisperboard/secrets-backend/database"
	"github.com/whisperboard/secrets-backend/model"
)

// ArangoUserStore implements UserStore on the users collection.
type ArangoUserStore struct {
	db database.DBConnection
}

// NewArangoUserStore creates a UserStore backed by ArangoDB.
func NewArangoUserStore(db database.DBConnection) *ArangoUserStore {
	return &ArangoUserStore{db: db}
}

// isUniqueViolation reports whether the driver error is a unique index
// conflict (ArangoDB error 1210).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique constraint violated") || strings.Contains(s, "conflict")
}

// GetByKey returns the user with the given document key.
func (s *ArangoUserStore) GetByKey(ctx context.Context, key string) (*model.User, error) {
	query := `FOR u IN users FILTER u._key == @key RETURN u`
	return s.queryOne(ctx, query, map[string]interface{}{"key": key})
}

// GetByUsername returns the local user with the given username.
func (s *ArangoUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `FOR u IN users FILTER u.username == @username RETURN u`
	return s.queryOne(ctx, query, map[string]interface{}{"username": username})
}

func (s *ArangoUserStore) queryOne(ctx context.Context, query string, bindVars map[string]interface{}) (*model.User, error) {
	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, ErrNotFound
	}

	var user model.User
	if _, err := cursor.ReadDocument(ctx, &user); err != nil {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Insert stores a new user document. The unique sparse indexes on username
// and the provider id fields turn a racing duplicate into ErrDuplicate.
func (s *ArangoUserStore) Insert(ctx context.Context, user *model.User) error {
	query := `
		INSERT {
			_key: @key,
			username: @username,
			password_hash: @password_hash,
			google_id: @google_id,
			facebook_id: @facebook_id,
			secret: @secret,
			auth_provider: @auth_provider,
			created_at: @created_at,
			updated_at: @updated_at
		} INTO users
	`
	bindVars := map[string]interface{}{
		"key":           user.Key,
		"username":      nullable(user.Username),
		"password_hash": nullable(user.PasswordHash),
		"google_id":     nullable(user.GoogleID),
		"facebook_id":   nullable(user.FacebookID),
		"secret":        nullable(user.Secret),
		"auth_provider": user.AuthProvider,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}
	_, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// FindOrCreateByProvider resolves an external identity to a user, creating
// the user on first sight. A single UPSERT keeps the operation idempotent
// even for two concurrent callbacks with the same external id.
func (s *ArangoUserStore) FindOrCreateByProvider(ctx context.Context, provider, externalID string) (*model.User, error) {
	var field string
	switch provider {
	case model.ProviderGoogle:
		field = "google_id"
	case model.ProviderFacebook:
		field = "facebook_id"
	default:
		return nil, ErrNotFound
	}

	now := time.Now()
	query := `
		UPSERT { ` + field + `: @external_id }
		INSERT {
			_key: @key,
			` + field + `: @external_id,
			auth_provider: @provider,
			created_at: @now,
			updated_at: @now
		}
		UPDATE {} IN users
		RETURN NEW
	`
	bindVars := map[string]interface{}{
		"external_id": externalID,
		"key":         uuid.New().String(),
		"provider":    provider,
		"now":         now,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var user model.User
	if _, err := cursor.ReadDocument(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateSecret overwrites the secret field of the given user.
func (s *ArangoUserStore) UpdateSecret(ctx context.Context, key, secret string) error {
	query := `
		FOR u IN users
		FILTER u._key == @key
		UPDATE u WITH { secret: @secret, updated_at: @now } IN users
	`
	bindVars := map[string]interface{}{
		"key":    key,
		"secret": secret,
		"now":    time.Now(),
	}
	_, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	return err
}

// ListWithSecrets returns all users whose secret field is set and non-empty.
func (s *ArangoUserStore) ListWithSecrets(ctx context.Context) ([]*model.User, error) {
	query := `
		FOR u IN users
		FILTER u.secret != null AND u.secret != ""
		RETURN u
	`
	cursor, err := s.db.Database.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var users []*model.User
	for cursor.HasMore() {
		var user model.User
		if _, err := cursor.ReadDocument(ctx, &user); err == nil {
			users = append(users, &user)
		}
	}
	return users, nil
}

// CountUsers returns the total number of user documents.
func (s *ArangoUserStore) CountUsers(ctx context.Context) (int, error) {
	query := `RETURN LENGTH(users)`
	cursor, err := s.db.Database.Query(ctx, query, nil)
	if err != nil {
		return 0, err
	}
	defer cursor.Close()

	var count int
	if _, err := cursor.ReadDocument(ctx, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// nullable maps an empty string to null so the sparse unique indexes skip
// the field entirely instead of colliding on "".
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
