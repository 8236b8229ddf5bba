package model

import (
	"strings"
	"time"
)

// User is the persisted record. It carries the password hash and must not
// leave the credential store; callers receive a PublicUser instead.
type User struct {
	ID           int64     `json:"-"`
	Name         string    `json:"-"`
	Email        string    `json:"-"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Public returns the redacted view of the record.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// PublicUser is the only user shape that crosses the service boundary.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser is a registration candidate. Password is plaintext and is hashed
// by the credential store before anything is persisted.
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// TokenClaims is the identity embedded in a bearer token.
type TokenClaims struct {
	UserID    int64
	Email     string
	Name      string
	ExpiresAt time.Time
}

type AuthResult struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

type CurrentUser struct {
	User PublicUser `json:"user"`
}

// NormalizeEmail is applied before every store write and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
