package http

import (
	"errors"
	"net/http"

	"github.com/pocketlist/pocketlist/internal/api/service"
	"github.com/pocketlist/pocketlist/pkg/httpx"
	"github.com/pocketlist/pocketlist/pkg/slogx"
)

// ErrorResponse is the single error envelope for every failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError is the one place service errors become HTTP responses.
// Credential-content problems are 400s; only token problems are 401s.
// Anything unrecognised is logged and returned as an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeErrorMessage(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, service.ErrEmailTaken):
		writeErrorMessage(w, http.StatusBadRequest, "User already exists with this email")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, service.ErrInvalidResetToken):
		writeErrorMessage(w, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, service.ErrTodoNotFound):
		writeErrorMessage(w, http.StatusNotFound, "Todo not found")
	default:
		slogx.FromContext(r.Context()).Error("internal error", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeErrorMessage(w http.ResponseWriter, code int, msg string) {
	httpx.WriteJSON(w, code, ErrorResponse{Error: msg})
}
