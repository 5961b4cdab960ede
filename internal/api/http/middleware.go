package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pocketlist/pocketlist/internal/api/store"
	"github.com/pocketlist/pocketlist/pkg/jwtx"
	"github.com/pocketlist/pocketlist/pkg/slogx"
)

// AuthnMiddleware guards a route behind bearer-token authentication:
// extract the token, verify its signature and expiry, resolve the subject
// to a live identity, and attach it to the request context. Each step
// short-circuits with a 401 so handlers only ever see authenticated
// requests.
func AuthnMiddleware(verifier *jwtx.Verifier, st store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				writeErrorMessage(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeErrorMessage(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			// Resolve the subject fresh on every request. A valid token for a
			// since-deleted user must not pass.
			identity, err := st.Users().GetIdentityByID(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeErrorMessage(w, http.StatusUnauthorized, "Invalid token")
					return
				}
				slogx.FromContext(r.Context()).Error("identity lookup failed", "error", err)
				writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
// A missing header, a non-Bearer scheme and a bare "Bearer " all count
// as absent, not malformed.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
