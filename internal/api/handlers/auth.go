package handlers

import (
	"errors"
	"net/http"

	"tradediary/internal/api/request"
	"tradediary/internal/api/response"
	"tradediary/internal/apperrors"
	"tradediary/internal/service"
)

// AuthHandler handles login requests.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST requests to exchange credentials for a token.
//
// Endpoint: POST /api/auth/login
// Response: 200 OK with LoginResponse
// Error: 400 Bad Request if the body is malformed
// Error: 401 Unauthorized on bad credentials or when auth is disabled
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "login failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, LoginResponse{Token: token})
}
