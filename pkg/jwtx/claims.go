package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default lifetime for login-issued bearer tokens.
// The TTL is configuration, not an invariant; short-lived tokens (e.g. 1h)
// verify through the same path.
const DefaultTokenTTL = 24 * time.Hour

// Claims are the bearer-token claims used across the service. The only
// claim the rest of the system relies on is Subject (the user id); the
// registered time claims are enforced by the verifier.
type Claims struct {
	jwt.RegisteredClaims
}

// NewClaims builds minimally-correct claims for a subject.
func NewClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateIssuer checks the issuer against an expected value.
// An empty expected issuer means "don't care".
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it becomes valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
