package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/auth"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidate(t *testing.T) {
	token, err := auth.GenerateJWT(secret, "operator", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := auth.ValidateJWT(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestValidateRejects(t *testing.T) {
	token, err := auth.GenerateJWT(secret, "operator", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = auth.ValidateJWT("ffffffffffffffffffffffffffffffff", token)
	assert.Error(t, err, "wrong secret")

	expired, err := auth.GenerateJWT(secret, "operator", auth.RoleAdmin, -time.Minute)
	require.NoError(t, err)
	_, err = auth.ValidateJWT(secret, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = auth.ValidateJWT(secret, "not-a-token")
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{Role: auth.RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.ValidateJWT(secret, unsigned)
	assert.Error(t, err)
}

func TestShortSecretRejected(t *testing.T) {
	_, err := auth.GenerateJWT("short", "operator", auth.RoleAdmin, time.Hour)
	assert.Error(t, err)

	_, err = auth.ValidateJWT("", "x")
	assert.Error(t, err)
}
