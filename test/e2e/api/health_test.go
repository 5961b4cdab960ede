package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies liveness works without authentication.
func TestLivezEndpoint(t *testing.T) {
	baseURL := setupServer(t)

	status, body := doJSON(t, http.MethodGet, baseURL+"/livez", nil, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}

// TestReadyzEndpoint verifies readiness reports ok while the database is up.
func TestReadyzEndpoint(t *testing.T) {
	baseURL := setupServer(t)

	status, body := doJSON(t, http.MethodGet, baseURL+"/readyz", nil, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}
