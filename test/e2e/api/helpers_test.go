package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
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

/*
 * Common helpers for API end-to-end tests. Each test boots the full router
 * over a throwaway file-backed database and talks to it over HTTP.
 */

const (
	testSecret = "e2e-test-secret"
	testIssuer = "pocketlist-test"

	testEmail    = "alice@example.com"
	testPassword = "password123"
	testName     = "Alice"
)

// TestMain raises the rate limits so rapid test requests do not trip the
// production limits. Individual rate-limit tests build their own router
// with tight limits.
func TestMain(m *testing.M) {
	httpx.StrictLimit = httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	httpx.ModerateLimit = httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	httpx.LenientLimit = httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}

	os.Exit(m.Run())
}

// setupServer boots the API over a fresh database and returns its base URL.
func setupServer(t *testing.T) string {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "e2e.db"))
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
	return server.URL
}

// doJSON issues a request with an optional JSON body and bearer token and
// decodes the JSON response into a generic map.
func doJSON(t *testing.T, method, url string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints that return a JSON array.
func doJSONList(t *testing.T, method, url, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// registerUser registers the default test user and returns its bearer token.
func registerUser(t *testing.T, baseURL string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, baseURL+"/auth/register", map[string]string{
		"email":    testEmail,
		"password": testPassword,
		"name":     testName,
	}, "")
	require.Equal(t, http.StatusCreated, status)

	token, ok := body["token"].(string)
	require.True(t, ok, "register response missing token: %v", body)
	return token
}

// createTodo creates a todo for the given token and returns its id.
func createTodo(t *testing.T, baseURL, token, title string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, baseURL+"/todos", map[string]string{
		"title": title,
	}, token)
	require.Equal(t, http.StatusCreated, status)

	id, ok := body["id"].(string)
	require.True(t, ok, "create todo response missing id: %v", body)
	return id
}

func todoURL(baseURL, id string) string {
	return fmt.Sprintf("%s/todos/%s", baseURL, id)
}
