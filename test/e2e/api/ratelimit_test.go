package api_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apihttp "github.com/pocketlist/pocketlist/internal/api/http"
	"github.com/pocketlist/pocketlist/internal/api/service"
	"github.com/pocketlist/pocketlist/internal/api/store/drivers/sqlite"
	"github.com/pocketlist/pocketlist/pkg/httpx"
	"github.com/pocketlist/pocketlist/pkg/jwtx"
)

// TestCredentialEndpointsRateLimited verifies the strict per-IP limit on
// the auth endpoints returns 429 with a Retry-After header once exhausted.
func TestCredentialEndpointsRateLimited(t *testing.T) {
	// Tight limits just for this test; TestMain loosened the globals.
	prev := httpx.StrictLimit
	httpx.StrictLimit = httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
	t.Cleanup(func() { httpx.StrictLimit = prev })

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "ratelimit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer := &jwtx.Signer{Secret: []byte(testSecret), Issuer: testIssuer, TTL: time.Hour}
	router := apihttp.NewRouter(apihttp.Deps{
		Store:    st,
		Auth:     &service.AuthService{Store: st, Signer: signer},
		Todos:    &service.TodoService{Store: st},
		Verifier: &jwtx.Verifier{Secret: []byte(testSecret), Issuer: testIssuer},
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	login := map[string]string{"email": testEmail, "password": testPassword}

	for i := 0; i < 3; i++ {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/auth/login", login, "")
		require.NotEqual(t, http.StatusTooManyRequests, status, "request %d", i)
	}

	req, err := http.NewRequest(http.MethodPost, server.URL+"/auth/login", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
}
