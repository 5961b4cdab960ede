package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apihttp "github.com/pocketlist/pocketlist/internal/api/http"
	"github.com/pocketlist/pocketlist/internal/api/service"
	"github.com/pocketlist/pocketlist/internal/api/store"
	"github.com/pocketlist/pocketlist/internal/api/store/drivers/sqlite"
	"github.com/pocketlist/pocketlist/pkg/jwtx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func testKeys() (*jwtx.Signer, *jwtx.Verifier) {
	secret := []byte("middleware-test-secret")
	return &jwtx.Signer{Secret: secret, Issuer: "pocketlist-test", TTL: time.Hour},
		&jwtx.Verifier{Secret: secret, Issuer: "pocketlist-test"}
}

// guarded wraps a probe handler in AuthnMiddleware and records whether the
// probe ran and what identity it saw.
func guarded(t *testing.T, st store.Store) (http.Handler, *jwtx.Signer, *bool, *string) {
	t.Helper()
	signer, verifier := testKeys()

	var called bool
	var seenID string
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if id, ok := apihttp.IdentityFromContext(r.Context()); ok {
			seenID = id.ID
		}
		w.WriteHeader(http.StatusOK)
	})

	return apihttp.AuthnMiddleware(verifier, st)(probe), signer, &called, &seenID
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAuthnMissingToken(t *testing.T) {
	st := newTestStore(t)
	handler, _, called, _ := guarded(t, st)

	// All three shapes count as "no token presented".
	for _, header := range []string{"", "Token abc", "Bearer "} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		require.Equal(t, "Access token required", errorBody(t, rec), "header %q", header)
		require.False(t, *called)
	}
}

func TestAuthnBadToken(t *testing.T) {
	st := newTestStore(t)
	handler, signer, called, _ := guarded(t, st)

	expired := &jwtx.Signer{Secret: signer.Secret, Issuer: signer.Issuer, TTL: -time.Hour}
	expiredToken, err := expired.Sign("someone")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage": "not.a.jwt",
		"expired": expiredToken,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, "Invalid or expired token", errorBody(t, rec))
			require.False(t, *called)
		})
	}
}

func TestAuthnValidTokenUnknownSubject(t *testing.T) {
	st := newTestStore(t)
	handler, signer, called, _ := guarded(t, st)

	// Cryptographically valid, but the subject does not exist.
	token, err := signer.Sign("01GONEGONEGONEGONEGONEGONE")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid token", errorBody(t, rec))
	require.False(t, *called)
}

func TestAuthnAttachesIdentity(t *testing.T) {
	st := newTestStore(t)
	handler, signer, called, seenID := guarded(t, st)

	auth := &service.AuthService{Store: st, Signer: signer}
	user, _, err := auth.Register(context.Background(), "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	token, err := signer.Sign(user.ID)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *called)
	require.Equal(t, user.ID, *seenID)
}

func TestAuthnDeletedUser(t *testing.T) {
	st := newTestStore(t)
	handler, signer, called, _ := guarded(t, st)

	auth := &service.AuthService{Store: st, Signer: signer}
	user, token, err := auth.Register(context.Background(), "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	// Token stays cryptographically valid after deletion but must stop working.
	require.NoError(t, st.Users().DeleteUser(context.Background(), user.ID))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid token", errorBody(t, rec))
	require.False(t, *called)
}
