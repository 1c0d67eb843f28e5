package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vouchd/vouchd/internal/core/domain"
	"github.com/vouchd/vouchd/internal/core/ports"
)

// tokenClaims is the wire shape of an issued token.
type tokenClaims struct {
	jwt.RegisteredClaims
}

// TokenAuthority issues and decodes HS256 session tokens. The signing secret
// is fixed at construction and never read from the environment at call time.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenAuthority(secret []byte, ttl time.Duration) *TokenAuthority {
	return &TokenAuthority{secret: secret, ttl: ttl, now: time.Now}
}

// TTL returns the fixed validity duration of issued tokens.
func (a *TokenAuthority) TTL() time.Duration {
	return a.ttl
}

// Issue creates a token with subject = email, expiry = now + TTL and a fresh
// token ID so that two logins in the same second still rotate the credential.
func (a *TokenAuthority) Issue(email domain.Email) (string, error) {
	now := a.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Decode verifies the signature and expiry of token. A structurally valid
// but stale token yields domain.ErrTokenExpired; everything else that fails
// (bad signature, wrong algorithm, garbage input) yields
// domain.ErrTokenMalformed.
func (a *TokenAuthority) Decode(token string) (domain.Claims, error) {
	claims := &tokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claims{}, domain.ErrTokenExpired
		}
		return domain.Claims{}, domain.ErrTokenMalformed
	}
	if !parsed.Valid || claims.ExpiresAt == nil {
		return domain.Claims{}, domain.ErrTokenMalformed
	}

	return domain.Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		TokenID:   claims.ID,
	}, nil
}

var _ ports.TokenAuthority = (*TokenAuthority)(nil)
