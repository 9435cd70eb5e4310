// Package main is the entrypoint for the Devpress API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/devpress/devpress/internal/auth"
	"github.com/devpress/devpress/internal/cache"
	"github.com/devpress/devpress/internal/config"
	"github.com/devpress/devpress/internal/handler"
	"github.com/devpress/devpress/internal/metrics"
	"github.com/devpress/devpress/internal/middleware"
	"github.com/devpress/devpress/internal/repository"
	"github.com/devpress/devpress/internal/server"
	"github.com/devpress/devpress/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		repo.Close()
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize auth primitives
	tokenCodec, err := auth.NewTokenCodec([]byte(cfg.JWTSecret))
	if err != nil {
		logger.Error("failed to initialize token codec", "error", err)
		os.Exit(1)
	}
	hasher := auth.NewHasher(auth.DefaultHashParams())

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	authService := service.NewAuthService(repo, hasher, tokenCodec, cfg.TokenTTL, metricsRecorder)
	articleService := service.NewArticleService(repo, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(authService, logger)
	articleHandler := handler.NewArticleHandler(articleService, logger)
	userHandler := handler.NewUserHandler(authService, logger)

	r := setupRouter(h, healthHandler, authHandler, articleHandler, userHandler, tokenCodec, metricsRecorder, cacheClient, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("database", func(_ context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(_ context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	articleHandler *handler.ArticleHandler,
	userHandler *handler.UserHandler,
	tokenCodec *auth.TokenCodec,
	metricsRecorder metrics.Recorder,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	if cfg.MaxRequestBodySize > 0 {
		r.Use(chimiddleware.RequestSize(cfg.MaxRequestBodySize))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	authCfg := middleware.AuthConfig{
		Logger:  logger,
		Tokens:  tokenCodec,
		Metrics: metricsRecorder,
	}

	loginRateCfg := middleware.RateLimitConfig{
		Logger:    logger,
		Cache:     cacheClient,
		Enabled:   cfg.RateLimitLoginEnabled,
		PerMinute: cfg.RateLimitLoginPerMinute,
		Burst:     cfg.RateLimitLoginBurst,
	}

	// Authentication endpoints (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.With(middleware.LoginRateLimit(loginRateCfg)).Post("/login", authHandler.Login)
	})

	// Article endpoints: reads are public, mutations require a token
	r.Route("/articles", func(r chi.Router) {
		r.Get("/", articleHandler.List)
		r.Get("/{id}", articleHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Post("/", articleHandler.Create)
			r.Delete("/{id}", articleHandler.Delete)
		})
	})

	// User management (requires a token)
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))
		r.Delete("/{id}", userHandler.Delete)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
