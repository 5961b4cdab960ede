package store

import (
	"context"
	"errors"
	"time"

	"github.com/pocketlist/pocketlist/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Todos() Todos

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns the full user record by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and registration duplicate checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetIdentityByID returns only {id, email, name}; the password hash and
	// reset-token fields are never fetched on this path.
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetResetToken stores a reset-token hash and expiry on the user,
	// overwriting any previously outstanding token.
	SetResetToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error

	// FindUserWithActiveResetToken returns the first user (ordered by id)
	// whose reset token is set and expires strictly after now.
	FindUserWithActiveResetToken(ctx context.Context, now time.Time) (domain.User, error)

	// ClearResetToken sets a new password hash and nulls both reset-token
	// fields in a single update. The update is guarded by the prior token
	// hash so a token can only be spent once; returns ErrNotFound when the
	// guard no longer matches.
	ClearResetToken(ctx context.Context, userID string, priorTokenHash string, newPasswordHash string) error

	// DeleteUser cascades to todos (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Todos interface {
	// CreateTodo inserts a new todo (id is ULID).
	CreateTodo(ctx context.Context, t domain.Todo) error

	// GetTodoByID returns a todo by id regardless of owner; ownership is
	// enforced in the service layer.
	GetTodoByID(ctx context.Context, id string) (domain.Todo, error)

	// ListTodosByUser returns a user's todos, newest first.
	ListTodosByUser(ctx context.Context, userID string) ([]domain.Todo, error)

	// UpdateTodo persists title, description and completed, bumps updated_at.
	UpdateTodo(ctx context.Context, t domain.Todo) error

	// DeleteTodo removes a todo by id.
	DeleteTodo(ctx context.Context, id string) error
}
