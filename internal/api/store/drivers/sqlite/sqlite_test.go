package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pocketlist/pocketlist/internal/api/domain"
	"github.com/pocketlist/pocketlist/internal/api/store/drivers/sqlite"
	"github.com/pocketlist/pocketlist/pkg/idx"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *sqlite.Store, email, name string) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: "$2a$12$notarealhashnotarealhashnotarealhashnotarealha",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedTodo(t *testing.T, st *sqlite.Store, userID, title string) domain.Todo {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	td := domain.Todo{
		ID:        idx.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Todos().CreateTodo(context.Background(), td))
	return td
}
