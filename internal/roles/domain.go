package roles

import (
	"time"

	"github.com/vantage-console/vantage/internal/rbac"
)

// Role represents a named bundle of permissions.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionSummary is the slim permission projection on role detail reads.
type PermissionSummary struct {
	ID     int64       `json:"id"`
	Action rbac.Action `json:"action"`
	Module string      `json:"module"`
}

// GroupSummary is the slim group projection on role detail reads.
type GroupSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Detail is a role together with its permissions and the groups holding it.
type Detail struct {
	Role
	Permissions []PermissionSummary `json:"permissions"`
	Groups      []GroupSummary      `json:"groups"`
}
