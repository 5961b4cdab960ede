package http

import (
	"log/slog"
	"net/http"

	"github.com/pocketlist/pocketlist/internal/api/service"
	"github.com/pocketlist/pocketlist/internal/api/store"
	"github.com/pocketlist/pocketlist/pkg/httpx"
	"github.com/pocketlist/pocketlist/pkg/jwtx"
	"github.com/pocketlist/pocketlist/pkg/slogx"
)

// Deps carries everything the router needs. The caller owns construction
// so tests can assemble a router around a throwaway store.
type Deps struct {
	Store    store.Store
	Auth     *service.AuthService
	Todos    *service.TodoService
	Verifier *jwtx.Verifier

	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
}

// NewRouter builds the full HTTP surface: credential flows behind a strict
// per-IP rate limit, todos behind authentication and a moderate limit, and
// unauthenticated health probes.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Auth: deps.Auth}
	todoHandler := &TodoHandler{Todos: deps.Todos}

	strict := httpx.RateLimitByIP(httpx.StrictLimit)
	moderate := httpx.RateLimitByIP(httpx.ModerateLimit)
	lenient := httpx.RateLimitByIP(httpx.LenientLimit)
	authn := AuthnMiddleware(deps.Verifier, deps.Store)

	mux.Handle("POST /auth/register", httpx.Chain(http.HandlerFunc(authHandler.Register), strict))
	mux.Handle("POST /auth/login", httpx.Chain(http.HandlerFunc(authHandler.Login), strict))
	mux.Handle("POST /auth/forgot-password", httpx.Chain(http.HandlerFunc(authHandler.ForgotPassword), strict))
	mux.Handle("POST /auth/reset-password", httpx.Chain(http.HandlerFunc(authHandler.ResetPassword), strict))

	mux.Handle("POST /todos", httpx.Chain(http.HandlerFunc(todoHandler.Create), moderate, authn))
	mux.Handle("GET /todos", httpx.Chain(http.HandlerFunc(todoHandler.List), moderate, authn))
	mux.Handle("GET /todos/{id}", httpx.Chain(http.HandlerFunc(todoHandler.Get), moderate, authn))
	mux.Handle("PUT /todos/{id}", httpx.Chain(http.HandlerFunc(todoHandler.Update), moderate, authn))
	mux.Handle("DELETE /todos/{id}", httpx.Chain(http.HandlerFunc(todoHandler.Delete), moderate, authn))

	mux.Handle("GET /livez", httpx.Chain(http.HandlerFunc(Livez), lenient))
	mux.Handle("GET /readyz", httpx.Chain(Readyz(deps.Store), lenient))

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return httpx.Chain(mux, slogx.HTTPMiddleware(logger))
}
