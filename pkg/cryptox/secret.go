package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SecretSize is the byte length of generated secrets: 32 random bytes,
// i.e. 256 bits of entropy (43 chars base64url).
const SecretSize = 32

// GenerateSecret creates a cryptographically secure random secret,
// base64url-encoded without padding. Returns an error only if the
// system random source fails.
func GenerateSecret() (string, error) {
	buf := make([]byte, SecretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
