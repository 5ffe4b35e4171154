package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	claims := &TokenClaims{
		UserID: "8e9f0f48-2f59-4a06-8a11-9a2c41f7b001",
		Email:  "carla@petmanager.local",
		Role:   "admin",
	}

	token, expiresIn, err := service.GenerateAccessToken(claims)
	require.NoError(t, err)
	assert.Equal(t, int64(15*60), expiresIn)

	parsed, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, claims.Email, parsed.Email)
	assert.Equal(t, claims.Role, parsed.Role)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a").GenerateAccessToken(&TokenClaims{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, _, err := service.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	userID, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	service := NewJWTService("test-secret")

	token, _, err := service.GenerateAccessToken(&TokenClaims{UserID: "user-123"})
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(token)
	assert.Error(t, err, "access tokens must not pass as refresh tokens")
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2-but-longer", hash)

	assert.NoError(t, VerifyPassword(hash, "hunter2-but-longer"))
	assert.Error(t, VerifyPassword(hash, "wrong-password"))
}
