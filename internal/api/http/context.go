package http

import (
	"context"

	"github.com/pocketlist/pocketlist/internal/api/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity attaches the authenticated identity to the context.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity attached by AuthnMiddleware.
// The second return is false on routes the middleware does not guard.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}
