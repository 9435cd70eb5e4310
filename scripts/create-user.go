// Command create-user seeds an account directly in the database,
// bypassing the HTTP API. Useful for bootstrapping a first login.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/devpress/devpress/internal/auth"
	"github.com/devpress/devpress/internal/model"
	"github.com/devpress/devpress/internal/repository"
)

type output struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "", "Account email (required)")
		password    = flag.String("password", "", "Account password (required)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-email and -password are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	normalized := strings.ToLower(strings.TrimSpace(*email))

	if _, err := repo.GetUserByEmail(ctx, normalized); err == nil {
		fmt.Fprintln(os.Stderr, "user already exists:", normalized)
		os.Exit(1)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		fmt.Fprintln(os.Stderr, "lookup user:", err)
		os.Exit(1)
	}

	hasher := auth.NewHasher(auth.DefaultHashParams())
	hash, err := hasher.Hash(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		Email:        normalized,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	out := output{UserID: user.ID, Email: user.Email}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Printf("created user %d (%s)\n", out.UserID, out.Email)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
