package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoginFlow verifies correct credentials yield a token and the user shape.
func TestLoginFlow(t *testing.T) {
	baseURL := setupServer(t)
	registerUser(t, baseURL)

	status, body := doJSON(t, http.MethodPost, baseURL+"/auth/login", map[string]string{
		"email":    testEmail,
		"password": testPassword,
	}, "")

	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, testEmail, user["email"])
}

// TestLoginFailuresIndistinguishable verifies an unknown email and a wrong
// password produce identical status codes and bodies, so login cannot be
// used to enumerate accounts.
func TestLoginFailuresIndistinguishable(t *testing.T) {
	baseURL := setupServer(t)
	registerUser(t, baseURL)

	wrongPassStatus, wrongPassBody := doJSON(t, http.MethodPost, baseURL+"/auth/login", map[string]string{
		"email":    testEmail,
		"password": "wrong-password",
	}, "")
	noUserStatus, noUserBody := doJSON(t, http.MethodPost, baseURL+"/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": testPassword,
	}, "")

	require.Equal(t, http.StatusBadRequest, wrongPassStatus)
	require.Equal(t, wrongPassStatus, noUserStatus)
	require.Equal(t, "Invalid email or password", wrongPassBody["error"])
	require.Equal(t, wrongPassBody, noUserBody)
}
