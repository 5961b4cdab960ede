package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/pocketlist/pocketlist/internal/api/domain"
	"github.com/pocketlist/pocketlist/internal/api/store"
	"github.com/pocketlist/pocketlist/pkg/cryptox"
	"github.com/pocketlist/pocketlist/pkg/idx"
	"github.com/pocketlist/pocketlist/pkg/jwtx"
	"github.com/pocketlist/pocketlist/pkg/slogx"
)

const (
	// MinPasswordLength applies to registration and password resets alike.
	MinPasswordLength = 6

	// DefaultResetTokenTTL is how long a password-reset secret stays valid.
	DefaultResetTokenTTL = time.Hour
)

// AuthService implements the four credential flows: register, login,
// forgot-password and reset-password. It is stateless between requests;
// all state lives in the Store.
type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer

	// ResetTokenTTL defaults to DefaultResetTokenTTL when zero.
	ResetTokenTTL time.Duration
}

// Register creates a new account, hashes the password and issues a bearer
// token for the fresh user id.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (domain.User, string, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := validateEmail(email); err != nil {
		return domain.User{}, "", err
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, "", validationf("Password must be at least %d characters", MinPasswordLength)
	}

	// Duplicate check before hashing; the schema's unique index still
	// backstops the race below.
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return domain.User{}, "", ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailTaken
		}
		return domain.User{}, "", err
	}

	token, err := s.Signer.Sign(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password both map to ErrInvalidCredentials so callers cannot
// probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.TrimSpace(email)

	if err := validateEmail(email); err != nil {
		return domain.User{}, "", err
	}
	if password == "" {
		return domain.User{}, "", validationf("Password is required")
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		// Hashing-backend failure: never treat as "no match".
		return domain.User{}, "", err
	}

	token, err := s.Signer.Sign(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

// ForgotPassword establishes a single outstanding reset secret for the
// account and returns its plaintext. When the email is not registered it
// returns an empty secret and no error: the caller must respond with the
// same generic message either way (anti-enumeration).
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)

	if err := validateEmail(email); err != nil {
		return "", err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	secret, err := cryptox.GenerateSecret()
	if err != nil {
		return "", err
	}
	hash, err := cryptox.HashResetSecret(secret)
	if err != nil {
		return "", err
	}

	ttl := s.ResetTokenTTL
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	expiry := time.Now().UTC().Add(ttl)

	// Overwrites any previously outstanding token: one reset per user at a time.
	if err := s.Store.Users().SetResetToken(ctx, user.ID, hash, expiry); err != nil {
		return "", err
	}

	slogx.FromContext(ctx).Info("password reset requested", "user_id", user.ID)
	return secret, nil
}

// ResetPassword spends a reset secret: verifies it against the outstanding
// token, sets the new password and clears both reset fields in one update.
// No bearer token is issued; the user must log in with the new credential.
func (s *AuthService) ResetPassword(ctx context.Context, secret, newPassword string) error {
	if strings.TrimSpace(secret) == "" {
		return validationf("Reset token is required")
	}
	if len(newPassword) < MinPasswordLength {
		return validationf("Password must be at least %d characters", MinPasswordLength)
	}

	now := time.Now().UTC()
	user, err := s.Store.Users().FindUserWithActiveResetToken(ctx, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	// "No matching user" and "wrong secret" intentionally collapse to the
	// same error so callers cannot tell how close a guess was.
	if err := cryptox.VerifyPassword(secret, *user.ResetTokenHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Users().ClearResetToken(ctx, user.ID, *user.ResetTokenHash, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token spent concurrently between read and write.
			return ErrInvalidResetToken
		}
		return err
	}

	slogx.FromContext(ctx).Info("password reset completed", "user_id", user.ID)
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return validationf("Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return validationf("A valid email is required")
	}
	return nil
}
