// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devpress/devpress/internal/auth"
	"github.com/devpress/devpress/internal/metrics"
	"github.com/devpress/devpress/internal/model"
	"github.com/devpress/devpress/internal/repository"
)

// Auth service errors.
var (
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("email and password required")
	// ErrEmailTaken is returned when registering an email that already
	// has an account. Nothing about the existing account is exposed.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown-email and wrong-password
	// logins so the two cannot be told apart from the outside.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// CredentialStore is the slice of the storage layer the auth flows
// need: one lookup and one insert, plus the user endpoints' extras.
// *repository.Repository satisfies it.
type CredentialStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// AuthService implements registration, login, and account removal.
type AuthService struct {
	store    CredentialStore
	hasher   *auth.Hasher
	tokens   *auth.TokenCodec
	tokenTTL time.Duration
	metrics  metrics.Recorder
}

// NewAuthService creates an AuthService. tokenTTL is the fixed
// validity window for issued tokens.
func NewAuthService(store CredentialStore, hasher *auth.Hasher, tokens *auth.TokenCodec, tokenTTL time.Duration, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		metrics:  recorder,
	}
}

// normalizeEmail trims whitespace and lowercases, so accounts cannot
// be duplicated by case or padding alone.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns it. On any failure path
// no row is written.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		s.metrics.IncRegistration("duplicate")
		return nil, ErrEmailTaken
	case errors.Is(err, repository.ErrUserNotFound):
		// email is free
	default:
		s.metrics.IncRegistration("failed")
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.metrics.IncRegistration("failed")
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// A concurrent registration can win between the duplicate check
		// and the insert; surface it as the same duplicate error.
		if errors.Is(err, repository.ErrEmailExists) {
			s.metrics.IncRegistration("duplicate")
			return nil, ErrEmailTaken
		}
		s.metrics.IncRegistration("failed")
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncRegistration("success")
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLogin("rejected")
			return nil, "", ErrInvalidCredentials
		}
		s.metrics.IncLogin("failed")
		return nil, "", fmt.Errorf("look up user: %w", err)
	}

	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.metrics.IncLogin("failed")
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.metrics.IncLogin("rejected")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, s.tokenTTL)
	if err != nil {
		s.metrics.IncLogin("failed")
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLogin("success")
	return user, token, nil
}

// DeleteUser removes an account. Passes repository.ErrUserNotFound
// through for the handler to translate.
func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
