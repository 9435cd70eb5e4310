package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devpress/devpress/internal/auth"
	"github.com/devpress/devpress/internal/metrics"
)

func newAuthTestSetup(t *testing.T) (*auth.TokenCodec, func(http.Handler) http.Handler, *metrics.InMemoryRecorder) {
	t.Helper()

	codec, err := auth.NewTokenCodec([]byte("test-signing-secret"))
	if err != nil {
		t.Fatalf("NewTokenCodec failed: %v", err)
	}
	recorder := metrics.NewInMemory()
	mw := Auth(AuthConfig{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens:  codec,
		Metrics: recorder,
	})
	return codec, mw, recorder
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	codec, mw, _ := newAuthTestSetup(t)

	token, err := codec.Issue(42, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var gotUserID int64
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = auth.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/users/42", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if gotUserID != 42 {
		t.Errorf("principal user ID = %d, want 42", gotUserID)
	}
}

func TestAuth_Rejections(t *testing.T) {
	t.Parallel()

	codec, mw, _ := newAuthTestSetup(t)

	expired, err := codec.Issue(42, -1*time.Second)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	otherCodec, err := auth.NewTokenCodec([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("NewTokenCodec failed: %v", err)
	}
	foreign, err := otherCodec.Issue(42, time.Hour)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer scheme", "Basic dXNlcjpwdw=="},
		{"bearer with empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signing secret", "Bearer " + foreign},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handlerRan := false
			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerRan = true
			}))

			req := httptest.NewRequest(http.MethodPost, "/articles", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if handlerRan {
				t.Error("downstream handler must not run on rejection")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			// All rejections share one body so callers cannot probe
			// which check failed
			if got := rec.Body.String(); got != `{"error":"Invalid or missing token"}` {
				t.Errorf("unexpected body: %s", got)
			}
		})
	}
}

func TestAuth_RejectionReasonsCounted(t *testing.T) {
	t.Parallel()

	codec, mw, recorder := newAuthTestSetup(t)

	expired, err := codec.Issue(1, -1*time.Second)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, header := range []string{"", "Bearer not-a-jwt", "Bearer " + expired} {
		req := httptest.NewRequest(http.MethodPost, "/articles", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := recorder.Snapshot().TokensRejected; got != 3 {
		t.Errorf("TokensRejected = %d, want 3", got)
	}
}
