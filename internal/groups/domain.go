package groups

import "time"

// Group represents a named bundle of users and roles. Groups are the only
// path through which users gain permissions.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserSummary is the slim user projection attached to group detail reads.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RoleSummary is the slim role projection attached to group detail reads.
type RoleSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Detail is a group together with its current members and role grants.
type Detail struct {
	Group
	Users []UserSummary `json:"users"`
	Roles []RoleSummary `json:"roles"`
}
