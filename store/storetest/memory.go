// Package storetest provides in-memory store implementations for tests.
package storetest

import (
	"context"
	"sync"

	"github.com/whisperboard/secrets-backend/model"
	"github.com/whisperboard/secrets-backend/store"
)

// UserStore is an in-memory store.UserStore.
type UserStore struct {
	mu    sync.Mutex
	users map[string]*model.User

	// FailAll makes every call return the given error, simulating an
	// unreachable persistence service.
	FailAll error
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*model.User)}
}

func copyUser(u *model.User) *model.User {
	c := *u
	return &c
}

// GetByKey implements store.UserStore.
func (s *UserStore) GetByKey(_ context.Context, key string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return nil, s.FailAll
	}
	u, ok := s.users[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyUser(u), nil
}

// GetByUsername implements store.UserStore.
func (s *UserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return nil, s.FailAll
	}
	for _, u := range s.users {
		if u.Username != "" && u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

// Insert implements store.UserStore, enforcing the same uniqueness rules as
// the Arango indexes.
func (s *UserStore) Insert(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return s.FailAll
	}
	for _, u := range s.users {
		if user.Username != "" && u.Username == user.Username {
			return store.ErrDuplicate
		}
		if user.GoogleID != "" && u.GoogleID == user.GoogleID {
			return store.ErrDuplicate
		}
		if user.FacebookID != "" && u.FacebookID == user.FacebookID {
			return store.ErrDuplicate
		}
	}
	s.users[user.Key] = copyUser(user)
	return nil
}

// FindOrCreateByProvider implements store.UserStore.
func (s *UserStore) FindOrCreateByProvider(_ context.Context, provider, externalID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return nil, s.FailAll
	}
	for _, u := range s.users {
		switch provider {
		case model.ProviderGoogle:
			if u.GoogleID == externalID {
				return copyUser(u), nil
			}
		case model.ProviderFacebook:
			if u.FacebookID == externalID {
				return copyUser(u), nil
			}
		}
	}
	u := model.NewFederatedUser(provider, externalID)
	s.users[u.Key] = copyUser(u)
	return u, nil
}

// UpdateSecret implements store.UserStore.
func (s *UserStore) UpdateSecret(_ context.Context, key, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return s.FailAll
	}
	u, ok := s.users[key]
	if !ok {
		return store.ErrNotFound
	}
	u.Secret = secret
	return nil
}

// ListWithSecrets implements store.UserStore.
func (s *UserStore) ListWithSecrets(_ context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return nil, s.FailAll
	}
	var out []*model.User
	for _, u := range s.users {
		if u.Secret != "" {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

// CountUsers implements store.UserStore.
func (s *UserStore) CountUsers(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return 0, s.FailAll
	}
	return len(s.users), nil
}

// Count returns the number of stored users.
func (s *UserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// SessionStore is an in-memory store.SessionStore.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session

	FailAll error
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*model.Session)}
}

// Insert implements store.SessionStore.
func (s *SessionStore) Insert(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return s.FailAll
	}
	c := *session
	s.sessions[session.Token] = &c
	return nil
}

// Get implements store.SessionStore.
func (s *SessionStore) Get(_ context.Context, token string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return nil, s.FailAll
	}
	sess, ok := s.sessions[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *sess
	return &c, nil
}

// Delete implements store.SessionStore.
func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAll != nil {
		return s.FailAll
	}
	delete(s.sessions, token)
	return nil
}

// Count returns the number of live session records.
func (s *SessionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
