package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "dev")

	token, err := SignJWT(Claims{Email: "a@example.com", RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	require.NoError(t, err)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	past := time.Now().Add(-time.Hour)
	token, err := SignJWT(Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(past),
	}})
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	token, err := SignJWT(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "two")
	_, err = VerifyJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSecretRequiredInProduction(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENV", "production")
	_, err := SignJWT(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	assert.Error(t, err)
}
