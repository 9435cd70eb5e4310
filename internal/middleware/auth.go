// Package middleware provides HTTP middleware components.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/devpress/devpress/internal/auth"
	"github.com/devpress/devpress/internal/metrics"
	"github.com/devpress/devpress/internal/model"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  *auth.TokenCodec
	Metrics metrics.Recorder
}

// Auth returns a middleware that guards protected routes. It extracts
// the bearer token from the Authorization header, verifies it against
// the signing secret, and injects the principal into the request
// context. Verification is entirely self-contained: no store access
// happens here, which is why a stolen token cannot be revoked before
// it expires.
//
// Every failure reason is logged distinctly but answered with the
// same 401 body, so callers cannot probe which check failed.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reject := func(reason string) {
				cfg.Logger.Warn("authorization failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncTokenRejected(reason)
				writeAuthError(w)
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				reject("missing_header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				reject("malformed_header")
				return
			}

			userID, err := cfg.Tokens.Verify(token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					reject("token_expired")
				case errors.Is(err, auth.ErrTokenSignature):
					reject("bad_signature")
				case errors.Is(err, auth.ErrTokenMalformed):
					reject("malformed_token")
				default:
					reject("invalid_token")
				}
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), model.Principal{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a 401 Unauthorized response.
// The same body is used for all auth failures to prevent probing.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Invalid or missing token"}`))
}
