package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginAndValidate(t *testing.T) {
	hash, err := HashPassword("moto-secreta")
	require.NoError(t, err)
	svc := NewAuthService(hash, "test-secret", time.Hour)
	require.True(t, svc.Enabled())

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.Login("moto-secreta")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_RejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewAuthService("", "test-secret", time.Hour)
	token, err := svc.Login("")
	require.NoError(t, err)

	other := NewAuthService("", "another-secret", time.Hour)
	_, err = other.Validate(token)
	assert.Error(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = svc.Validate("not-a-token")
	assert.Error(t, err)
}

func TestAuthService_OpenWithoutHash(t *testing.T) {
	svc := NewAuthService("", "test-secret", time.Hour)
	assert.False(t, svc.Enabled())

	_, err := svc.Login("anything")
	assert.NoError(t, err)
}

func TestAuthService_PlaceholderSecretIsReplaced(t *testing.T) {
	hash, err := HashPassword("moto-secreta")
	require.NoError(t, err)

	assert.True(t, NewAuthService(hash, "", time.Hour).EphemeralSecret())

	for _, secret := range []string{"change-me", "secret"} {
		svc := NewAuthService(hash, secret, time.Hour)
		assert.True(t, svc.EphemeralSecret())

		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
			Role: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		token, err := forged.SignedString([]byte(secret))
		require.NoError(t, err)
		_, err = svc.Validate(token)
		assert.Error(t, err, "token signed with %q must be rejected", secret)

		own, err := svc.Login("moto-secreta")
		require.NoError(t, err)
		_, err = svc.Validate(own)
		assert.NoError(t, err)
	}

	assert.False(t, NewAuthService(hash, "a-real-deployment-secret", time.Hour).EphemeralSecret())
}
