package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldcheck/internal/auth"
	"fieldcheck/internal/config"
	"fieldcheck/internal/domain"
)

func testVerifier() *auth.TokenVerifier {
	return auth.NewTokenVerifier(config.JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "fieldcheck-test"})
}

func TestTokenVerifier_RoundTrip(t *testing.T) {
	v := testVerifier()
	token, err := v.Issue("user-1", "analyst@example.com", time.Hour)
	require.NoError(t, err)

	caller, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", caller.Subject)
	assert.Equal(t, "analyst@example.com", caller.Email)
	assert.True(t, caller.Authenticated)
}

func TestTokenVerifier_Expired(t *testing.T) {
	v := testVerifier()
	token, err := v.Issue("user-1", "", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenVerifier_WrongSecretOrIssuer(t *testing.T) {
	other := auth.NewTokenVerifier(config.JWTConfig{Secret: "another-secret", Issuer: "fieldcheck-test"})
	token, err := other.Issue("user-1", "", time.Hour)
	require.NoError(t, err)
	_, err = testVerifier().Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	foreign := auth.NewTokenVerifier(config.JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "someone-else"})
	token, err = foreign.Issue("user-1", "", time.Hour)
	require.NoError(t, err)
	_, err = testVerifier().Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenVerifier_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testVerifier().Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenVerifier_Garbage(t *testing.T) {
	_, err := testVerifier().Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewTokenVerifier_NoSecret(t *testing.T) {
	assert.Nil(t, auth.NewTokenVerifier(config.JWTConfig{}))
}
