// Package model provides the data models for the secrets service.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Auth provider names stored on the user document.
const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// User represents an account in the system. Local accounts carry a username
// and password hash; federated accounts carry the provider id instead. The
// optional fields are sparse in the users collection and each is covered by
// a unique sparse index.
type User struct {
	Key          string    `json:"_key,omitempty"`
	Username     string    `json:"username,omitempty"`
	PasswordHash string    `json:"password_hash,omitempty"`
	GoogleID     string    `json:"google_id,omitempty"`
	FacebookID   string    `json:"facebook_id,omitempty"`
	Secret       string    `json:"secret,omitempty"`
	AuthProvider string    `json:"auth_provider"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewLocalUser creates a user backed by username/password credentials.
func NewLocalUser(username, passwordHash string) *User {
	now := time.Now()
	return &User{
		Key:          uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		AuthProvider: ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewFederatedUser creates a user backed by an external identity provider.
// Only the provider id is set; there is no username or password.
func NewFederatedUser(provider, externalID string) *User {
	now := time.Now()
	u := &User{
		Key:          uuid.New().String(),
		AuthProvider: provider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch provider {
	case ProviderGoogle:
		u.GoogleID = externalID
	case ProviderFacebook:
		u.FacebookID = externalID
	}
	return u
}

// HasSecret reports whether the user has posted a secret.
func (u *User) HasSecret() bool {
	return u.Secret != ""
}
