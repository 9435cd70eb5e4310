package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/devpress/devpress/internal/cache"
)

// RateLimitConfig holds configuration for the login rate limiter.
type RateLimitConfig struct {
	Logger    *slog.Logger
	Cache     *cache.Cache
	Enabled   bool
	PerMinute int
	Burst     int
}

// LoginRateLimit returns a middleware that throttles login attempts
// per client IP using a Redis token bucket. Failed Redis lookups fail
// open so an unavailable cache never locks everyone out.
func LoginRateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || cfg.Cache == nil {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Cache.CheckLoginRateLimit(r.Context(), r.RemoteAddr, cfg.PerMinute, cfg.Burst)
			if err != nil {
				cfg.Logger.Error("login rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				cfg.Logger.Warn("login rate limit exceeded",
					slog.String("ip", r.RemoteAddr),
					slog.Int64("retry_after_seconds", int64(result.RetryAfter.Seconds())),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many login attempts, try again later"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
