// Package auth is the credential-and-identity boundary: it hashes passwords,
// issues opaque bearer tokens and resolves them back to a stable user id.
// The authorization core treats all of this as an opaque provider.
package auth

import "time"

// Account is the credential projection of a user.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
