// Package auth verifies caller tokens. Tokens are issued elsewhere; this
// service only needs to know who is calling so runs can be attributed.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fieldcheck/internal/config"
	"fieldcheck/internal/domain"
)

// Claims are the JWT claims read from caller tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenVerifier validates HS256 bearer tokens.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier returns a verifier, or nil when no secret is configured.
func NewTokenVerifier(cfg config.JWTConfig) *TokenVerifier {
	if cfg.Secret == "" {
		return nil
	}
	return &TokenVerifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer}
}

// Verify parses tokenString and returns the authenticated caller. Any
// failure is reported as domain.ErrUnauthorized.
func (v *TokenVerifier) Verify(tokenString string) (domain.Caller, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return domain.Caller{}, domain.ErrUnauthorized
	}
	if claims.Subject == "" && claims.Email == "" {
		return domain.Caller{}, fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}

	return domain.Caller{
		Subject:       claims.Subject,
		Email:         claims.Email,
		Authenticated: true,
	}, nil
}

// Issue signs a token for subject. It exists for local tooling and tests;
// production tokens come from the identity provider.
func (v *TokenVerifier) Issue(subject, email string, ttl time.Duration) (string, error) {
	if v == nil {
		return "", errors.New("token verifier not configured")
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
		Email: email,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
