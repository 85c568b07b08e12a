package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLocalUser(t *testing.T) {
	u := NewLocalUser("alice", "hash")

	assert.NotEmpty(t, u.Key)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, ProviderLocal, u.AuthProvider)
	assert.Empty(t, u.GoogleID)
	assert.Empty(t, u.FacebookID)
	assert.False(t, u.HasSecret())
}

func TestNewFederatedUser(t *testing.T) {
	g := NewFederatedUser(ProviderGoogle, "g-1")
	assert.Equal(t, "g-1", g.GoogleID)
	assert.Empty(t, g.FacebookID)
	assert.Empty(t, g.Username)
	assert.Empty(t, g.PasswordHash)

	f := NewFederatedUser(ProviderFacebook, "fb-1")
	assert.Equal(t, "fb-1", f.FacebookID)
	assert.Empty(t, f.GoogleID)

	assert.NotEqual(t, g.Key, f.Key)
}

func TestSessionExpiry(t *testing.T) {
	s := NewSession("tok", "user-1", time.Hour)

	assert.False(t, s.Expired(time.Now()))
	assert.True(t, s.Expired(time.Now().Add(2*time.Hour)))
}
