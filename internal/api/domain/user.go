package domain

import "time"

// User is the persisted account record. PasswordHash and the reset-token
// fields never leave the service layer.
type User struct {
	ID           string
	Email        string // unique, case-preserved
	Name         string // optional display name, empty when unset
	PasswordHash string // bcrypt encoded

	// ResetTokenHash and ResetTokenExpiry are either both nil or both set.
	// The forgot-password flow sets them together; the reset-password flow
	// clears them together.
	ResetTokenHash   *string
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveResetToken reports whether an unexpired reset token is
// outstanding at the given time.
func (u User) HasActiveResetToken(now time.Time) bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now)
}

// Identity is the request-scoped identity attached by the auth middleware.
// It is resolved fresh from the store on every request, never cached.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
