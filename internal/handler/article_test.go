package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/devpress/devpress/internal/auth"
	"github.com/devpress/devpress/internal/model"
	"github.com/devpress/devpress/internal/repository"
	"github.com/devpress/devpress/internal/service"
)

// memArticleStore implements service.ArticleStore in memory.
type memArticleStore struct {
	articles []*model.Article
	nextID   int64
}

func newMemArticleStore() *memArticleStore {
	return &memArticleStore{nextID: 1}
}

func (m *memArticleStore) CreateArticle(_ context.Context, article *model.Article) error {
	article.ID = m.nextID
	article.CreatedAt = time.Now()
	m.nextID++
	stored := *article
	m.articles = append(m.articles, &stored)
	return nil
}

func (m *memArticleStore) GetArticleByID(_ context.Context, id int64) (*model.Article, error) {
	for _, a := range m.articles {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrArticleNotFound
}

func (m *memArticleStore) ListArticles(_ context.Context, limit, offset int) ([]*model.Article, error) {
	if offset >= len(m.articles) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.articles) {
		end = len(m.articles)
	}
	return m.articles[offset:end], nil
}

func (m *memArticleStore) DeleteArticle(_ context.Context, id int64) error {
	for i, a := range m.articles {
		if a.ID == id {
			m.articles = append(m.articles[:i], m.articles[i+1:]...)
			return nil
		}
	}
	return repository.ErrArticleNotFound
}

// newArticleRouter mounts the handler on a chi router so URL params
// resolve the same way they do in production.
func newArticleRouter(t *testing.T) (*chi.Mux, *memArticleStore) {
	t.Helper()

	store := newMemArticleStore()
	h := NewArticleHandler(service.NewArticleService(store, nil), testLogger())

	r := chi.NewRouter()
	r.Get("/articles", h.List)
	r.Get("/articles/{id}", h.Get)
	r.Post("/articles", h.Create)
	r.Delete("/articles/{id}", h.Delete)
	return r, store
}

func TestArticleHandler_CreateAndGet(t *testing.T) {
	t.Parallel()

	router, _ := newArticleRouter(t)

	body := `{"title":"Intro to Go","body":"Hello","category":"go","tags":["intro"]}`
	req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(body))
	ctx := auth.ContextWithPrincipal(req.Context(), model.Principal{UserID: 7})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID       int64 `json:"id"`
		AuthorID int64 `json:"author_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.AuthorID != 7 {
		t.Errorf("author should come from the principal, got %d", created.AuthorID)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/articles/1", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getRec.Code)
	}
}

func TestArticleHandler_CreateValidation(t *testing.T) {
	t.Parallel()

	router, store := newArticleRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"body":"b"}`},
		{"missing body", `{"title":"t"}`},
		{"invalid json", `{nope`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Both title and body required") {
				t.Errorf("unexpected body: %s", rec.Body.String())
			}
		})
	}

	if len(store.articles) != 0 {
		t.Errorf("no articles should be written, got %d", len(store.articles))
	}
}

func TestArticleHandler_GetInvalidAndMissing(t *testing.T) {
	t.Parallel()

	router, _ := newArticleRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/articles/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/articles/999", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing article: expected 404, got %d", rec.Code)
	}
}

func TestArticleHandler_List(t *testing.T) {
	t.Parallel()

	router, store := newArticleRouter(t)

	for i := 0; i < 3; i++ {
		_ = store.CreateArticle(context.Background(), &model.Article{Title: "t", Body: "b", AuthorID: 1})
	}

	req := httptest.NewRequest(http.MethodGet, "/articles?page=1&limit=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var articles []json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&articles); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("expected 2 articles, got %d", len(articles))
	}
}

func TestArticleHandler_Delete(t *testing.T) {
	t.Parallel()

	router, store := newArticleRouter(t)
	_ = store.CreateArticle(context.Background(), &model.Article{Title: "t", Body: "b", AuthorID: 1})

	req := httptest.NewRequest(http.MethodDelete, "/articles/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/articles/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", rec.Code)
	}
}
