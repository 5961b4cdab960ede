package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Signer issues HS256 bearer tokens signed with a process-wide secret.
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Sign issues a token for the given subject using the configured TTL.
// A zero TTL falls back to DefaultTokenTTL; negative TTLs are honored
// and produce already-expired tokens.
func (s *Signer) Sign(subject string) (string, error) {
	ttl := s.TTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	claims := NewClaims(subject, s.Issuer, ttl, time.Now().UTC())
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verifier validates HS256 tokens against the shared secret. Verification
// is purely a function of the token, the secret and the current time; no
// issued-token state is kept.
type Verifier struct {
	Secret []byte
	Issuer string
}

// Verify parses and validates the token string, returning its claims.
// Structural and signature problems map to ErrMalformed/ErrInvalidSig,
// time problems to ErrExpired/ErrNotYetValid.
func (v *Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
