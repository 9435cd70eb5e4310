// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/devpress/devpress/internal/model"

// CredentialsRequest is the request body for register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Message string           `json:"message"`
	User    model.PublicUser `json:"user"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Message string           `json:"message"`
	User    model.PublicUser `json:"user"`
	Token   string           `json:"token"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
