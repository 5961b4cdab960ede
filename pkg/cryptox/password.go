package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hashing cost factors. Account passwords get the higher factor because
// they are human-chosen and low entropy; reset secrets are 256 bits of
// randomness already, so brute-forcing the hash is not the weak point.
const (
	PasswordCost    = 12
	ResetSecretCost = 10
)

// ErrMismatch reports that a plaintext did not match its hash. Any other
// error from Verify* is a hashing-backend failure and must be treated as
// fatal by the caller, never as "no match".
var ErrMismatch = errors.New("cryptox: hash mismatch")

// HashPassword hashes an account password with bcrypt at PasswordCost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// HashResetSecret hashes a password-reset secret with bcrypt at
// ResetSecretCost.
func HashResetSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), ResetSecretCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash reset secret: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext against a bcrypt hash. It returns
// ErrMismatch when the plaintext does not match and passes through any
// other bcrypt failure (malformed hash, unsupported version).
func VerifyPassword(plaintext, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(plaintext))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("cryptox: verify: %w", err)
}
