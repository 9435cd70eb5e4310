// Package testutil provides helpers for integration tests that need a
// real Postgres or Redis instance.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/devpress/devpress/internal/migrate"
	"github.com/devpress/devpress/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 780214

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// EnsureSchema applies all migrations so the tables exist.
func EnsureSchema(ctx context.Context, dsn string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	runner, err := migrate.New(dsn, filepath.Join(root, "migrations"), nil)
	if err != nil {
		return fmt.Errorf("configure migration runner: %w", err)
	}
	return runner.Up(ctx)
}

// ResetTables empties the users and articles tables and resets their
// id sequences, leaving the schema in place.
func ResetTables(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "TRUNCATE articles, users RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestUser creates a user row value with sensible defaults. The
// password hash is a placeholder, not a real argon2 digest.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	return &model.User{
		Email:        email,
		PasswordHash: fmt.Sprintf("hash-%d", time.Now().UnixNano()),
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestArticle creates an article value owned by the given author.
func NewTestArticle(t testing.TB, authorID int64, title string) *model.Article {
	t.Helper()
	return &model.Article{
		Title:     title,
		Body:      "Body for " + title,
		Category:  "general",
		Tags:      []string{"test"},
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
