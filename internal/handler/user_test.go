package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/devpress/devpress/internal/auth"
	"github.com/devpress/devpress/internal/service"
)

func newUserRouter(t *testing.T) (*chi.Mux, *service.AuthService) {
	t.Helper()

	codec, err := auth.NewTokenCodec([]byte("test-signing-secret"))
	if err != nil {
		t.Fatalf("NewTokenCodec failed: %v", err)
	}
	hasher := auth.NewHasher(auth.HashParams{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
	svc := service.NewAuthService(newMemUserStore(), hasher, codec, 24*time.Hour, nil)
	h := NewUserHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Delete("/users/{id}", h.Delete)
	return r, svc
}

func TestUserHandler_Delete(t *testing.T) {
	t.Parallel()

	router, svc := newUserRouter(t)

	if _, err := svc.Register(context.Background(), "a@b.com", "pw123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	// Second delete finds nothing
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/1", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_DeleteInvalidID(t *testing.T) {
	t.Parallel()

	router, _ := newUserRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/users/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid user ID") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
