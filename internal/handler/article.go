package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/devpress/devpress/internal/auth"
	"github.com/devpress/devpress/internal/handler/dto"
	"github.com/devpress/devpress/internal/middleware"
	"github.com/devpress/devpress/internal/repository"
	"github.com/devpress/devpress/internal/service"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	svc    *service.ArticleService
	logger *slog.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(svc *service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, logger: logger}
}

// List handles GET /articles.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if p := query.Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	limit := 0
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	articles, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("list articles failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "Failed to fetch articles")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToArticleListResponse(articles))
}

// Get handles GET /articles/{id}.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	article, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
			return
		}
		h.logger.Error("get article failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "Failed to fetch articles")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToArticleResponse(article))
}

// Create handles POST /articles. Requires authentication; the author
// is taken from the request principal, never from the body.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Both title and body required")
		return
	}

	article, err := h.svc.Create(r.Context(), service.CreateArticleInput{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Tags:     req.Tags,
		AuthorID: auth.UserIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingArticleFields) {
			writeError(w, http.StatusBadRequest, "Both title and body required")
			return
		}
		h.logger.Error("create article failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "Failed to create article")
		return
	}

	h.logger.Info("article created",
		slog.Int64("article_id", article.ID),
		slog.Int64("author_id", article.AuthorID),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	writeJSON(w, http.StatusCreated, dto.ToArticleResponse(article))
}

// Delete handles DELETE /articles/{id}.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid article ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "Article not found")
			return
		}
		h.logger.Error("delete article failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "Unable to delete article")
		return
	}

	h.logger.Info("article deleted",
		slog.Int64("article_id", id),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	w.WriteHeader(http.StatusNoContent)
}
