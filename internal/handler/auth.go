package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasktrack/tasktrack-go/internal/model"
	"github.com/tasktrack/tasktrack-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// HandleRegister handles POST /api/v1/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		var fields service.FieldErrors
		if errors.As(err, &fields) {
			writeValidationError(w, "Registration failed", fields)
			return
		}
		h.logger.ErrorContext(r.Context(), "register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeSuccess(w, http.StatusCreated, "User registered successfully", user.ToResponse())
}

// HandleLogin handles POST /api/v1/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Login failed", err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", tokens)
}

// HandleRefresh handles POST /api/v1/auth/refresh requests.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	access, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshTokenRequired):
			writeError(w, http.StatusBadRequest, "Token refresh failed", err.Error())
		case errors.Is(err, service.ErrInvalidRefreshToken):
			writeError(w, http.StatusUnauthorized, "Token refresh failed", err.Error())
		default:
			h.logger.ErrorContext(r.Context(), "refresh failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeSuccess(w, http.StatusOK, "Token refreshed successfully", model.AccessTokenResponse{Access: access})
}

// HandleLogout handles POST /api/v1/auth/logout requests. The caller must be
// authenticated; the refresh token to revoke comes from the body.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Logout(r.Context(), req.Refresh); err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshTokenRequired):
			writeError(w, http.StatusBadRequest, "'refresh' token is required.")
		case errors.Is(err, service.ErrInvalidRefreshToken):
			writeError(w, http.StatusBadRequest, "Invalid refresh token.")
		default:
			// Store failures must not masquerade as an invalid token.
			h.logger.ErrorContext(r.Context(), "logout failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeSuccess(w, http.StatusOK, "Logged out successfully", nil)
}
