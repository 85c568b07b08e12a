package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestSessionValueRoundTrip(t *testing.T) {
	secret := []byte("test-signing-secret")

	value, err := SignSessionValue(secret, "opaque-token-123", time.Hour)
	require.NoError(t, err)

	token, err := ParseSessionValue(secret, value)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token-123", token)
}

func TestSessionValueRejectsTampering(t *testing.T) {
	secret := []byte("test-signing-secret")

	value, err := SignSessionValue(secret, "opaque-token-123", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionValue(secret, value+"x")
	assert.Error(t, err)

	_, err = ParseSessionValue([]byte("different-secret"), value)
	assert.Error(t, err)

	_, err = ParseSessionValue(secret, "not-a-jwt")
	assert.Error(t, err)
}

func TestSessionValueRejectsExpired(t *testing.T) {
	secret := []byte("test-signing-secret")

	value, err := SignSessionValue(secret, "opaque-token-123", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionValue(secret, value)
	assert.Error(t, err)
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	require.NoError(t, err)
	b, err := GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)

	// Non-positive length falls back to the default.
	c, err := GenerateSecureToken(0)
	require.NoError(t, err)
	assert.NotEmpty(t, c)
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Error(t, ValidatePasswordStrength("short"))
	assert.NoError(t, ValidatePasswordStrength("long enough password"))
}
