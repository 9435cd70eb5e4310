package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogger_CapturesStatusAndPath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := buf.String()
	if !strings.Contains(out, `"status_code":201`) {
		t.Errorf("log should contain status 201, got: %s", out)
	}
	if !strings.Contains(out, `"path":"/auth/register"`) {
		t.Errorf("log should contain path, got: %s", out)
	}
}

func TestLogger_ImplicitOKStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), `"status_code":200`) {
		t.Errorf("implicit status should log as 200, got: %s", buf.String())
	}
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	t.Parallel()

	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if ctxID == "" {
		t.Error("request ID should be present in context")
	}
	if rec.Header().Get(RequestIDHeader) != ctxID {
		t.Error("request ID should be echoed in the response header")
	}
}

func TestRequestID_CallerSupplied(t *testing.T) {
	t.Parallel()

	var ctxID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "caller-id-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if ctxID != "caller-id-123" {
		t.Errorf("caller-supplied request ID should win, got %q", ctxID)
	}
}
