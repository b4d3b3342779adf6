package handler

import (
	"errors"
	"net/http"

	"github.com/preptrack/preptrack-go/internal/model"
	"github.com/preptrack/preptrack-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case service.IsValidation(err):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		case errors.Is(err, service.ErrUsernameTaken):
			writeJSON(w, http.StatusBadRequest, messageResponse("User already exists"))
		default:
			serverError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case service.IsValidation(err):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusBadRequest, messageResponse("Invalid Credentials"))
		default:
			serverError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUnknown answers POSTs to auth sub-routes that do not exist.
func (h *AuthHandler) HandleUnknown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, messageResponse("Endpoint not found"))
}
