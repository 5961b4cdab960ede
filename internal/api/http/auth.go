package http

import (
	"encoding/json"
	"net/http"

	"github.com/pocketlist/pocketlist/internal/api/service"
	"github.com/pocketlist/pocketlist/pkg/httpx"
)

// AuthHandler exposes the four credential flows over HTTP.
type AuthHandler struct {
	Auth *service.AuthService
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.Auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
		Token:   token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		User:    toUserResponse(user),
		Token:   token,
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	secret, err := h.Auth.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Same message whether or not the email matched an account.
	httpx.WriteJSON(w, http.StatusOK, forgotPasswordResponse{
		Message:    "Reset link has been sent",
		ResetToken: secret,
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{
		Message: "Password has been reset successfully",
	})
}
