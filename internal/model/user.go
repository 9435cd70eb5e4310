// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. PasswordHash is opaque to
// everything except the password hasher and is never serialized;
// responses carry PublicUser instead.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the outward projection of a User.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Public strips credential fields from a User.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
	}
}
