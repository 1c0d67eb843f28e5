package domain

import "time"

// User is an account in the directory, keyed by its email. Users are created
// at signup and never mutated or deleted afterwards.
type User struct {
	Email        Email  `json:"email"`
	PasswordHash string `json:"-"`
	Requires2FA  bool   `json:"requires2FA"`
}

// Claims is the decoded payload of a session token.
type Claims struct {
	Subject   string    `json:"sub"`
	ExpiresAt time.Time `json:"exp"`
	TokenID   string    `json:"jti"`
}
