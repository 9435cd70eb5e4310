package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/devpress/devpress/internal/middleware"
	"github.com/devpress/devpress/internal/repository"
	"github.com/devpress/devpress/internal/service"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("delete user failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "Unable to delete user")
		return
	}

	h.logger.Info("user deleted",
		slog.Int64("user_id", id),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	w.WriteHeader(http.StatusNoContent)
}
