package users

import "time"

// User represents a console account. The credential hash is opaque to this
// module and never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GroupSummary is the slim group projection attached to user detail reads.
type GroupSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Detail is a user together with its current group memberships.
type Detail struct {
	User
	Groups []GroupSummary `json:"groups"`
}
