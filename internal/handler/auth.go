package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/devpress/devpress/internal/handler/dto"
	"github.com/devpress/devpress/internal/middleware"
	"github.com/devpress/devpress/internal/service"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, "Email and password required")
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "User already exists")
		default:
			h.logger.Error("registration failed",
				slog.String("error", err.Error()),
				slog.String("request_id", middleware.GetRequestID(r.Context())),
			)
			writeError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	h.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		Message: "User successfully registered",
		User:    user.Public(),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, "Email and password required")
		case errors.Is(err, service.ErrInvalidCredentials):
			// Unknown email and wrong password share this path; the
			// service already logged nothing that tells them apart
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			h.logger.Error("login failed",
				slog.String("error", err.Error()),
				slog.String("request_id", middleware.GetRequestID(r.Context())),
			)
			writeError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	h.logger.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User:    user.Public(),
		Token:   token,
	})
}
