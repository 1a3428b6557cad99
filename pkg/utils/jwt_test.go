package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestJWT(accessExp time.Duration) {
	InitJWT("test-access-secret", "test-refresh-secret", accessExp, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	initTestJWT(15 * time.Minute)

	token, err := GenerateAccessToken(42, true)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.IsSuperAdmin)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	initTestJWT(-time.Minute)

	token, err := GenerateAccessToken(42, false)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	initTestJWT(15 * time.Minute)
	token, err := GenerateAccessToken(42, false)
	require.NoError(t, err)

	InitJWT("different-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
	_, err = ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	initTestJWT(15 * time.Minute)
	_, err := ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	initTestJWT(15 * time.Minute)

	a, err := GenerateRefreshToken()
	require.NoError(t, err)
	b, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// The hash is deterministic and never equals the raw token.
	assert.Equal(t, HashRefreshToken(a), HashRefreshToken(a))
	assert.NotEqual(t, a, HashRefreshToken(a))
	assert.Len(t, HashRefreshToken(a), 64)

	assert.Equal(t, 7*24*time.Hour, GetRefreshTokenExpiry())
}
