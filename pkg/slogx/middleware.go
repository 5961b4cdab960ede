package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pocketlist/pocketlist/pkg/idx"
)

// HTTPMiddleware gives every request a logger carrying a request id plus
// the method/path/remote fields, stores it in the request context, and
// emits one completion line per request. Incoming X-Request-ID headers
// are trusted so ids survive proxy hops; otherwise a fresh ULID is used.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = idx.New().String()
			}

			logger := base.With(
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r.WithContext(WithContext(r.Context(), logger)))

			logger.Info("http_request",
				"status", recorder.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// statusRecorder captures the status code written by the handler so the
// completion log can include it. Handlers that never call WriteHeader
// implicitly respond 200.
type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}
