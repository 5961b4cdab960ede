package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pocketlist/pocketlist/internal/api/service"
	"github.com/pocketlist/pocketlist/internal/api/store"
	"github.com/pocketlist/pocketlist/internal/api/store/drivers/sqlite"
	"github.com/pocketlist/pocketlist/pkg/jwtx"
)

// newTestStore opens a fresh file-backed database under t.TempDir and runs
// the embedded migrations. A file DSN (not :memory:) keeps the connection
// pool pointed at a single database.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestSigner() *jwtx.Signer {
	return &jwtx.Signer{
		Secret: []byte("test-secret"),
		Issuer: "pocketlist-test",
		TTL:    time.Hour,
	}
}

func newAuthService(t *testing.T) (*service.AuthService, store.Store) {
	t.Helper()
	st := newTestStore(t)
	return &service.AuthService{Store: st, Signer: newTestSigner()}, st
}

func newTodoService(t *testing.T) (*service.TodoService, *service.AuthService) {
	t.Helper()
	st := newTestStore(t)
	return &service.TodoService{Store: st},
		&service.AuthService{Store: st, Signer: newTestSigner()}
}
