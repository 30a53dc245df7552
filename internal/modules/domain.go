package modules

import (
	"time"

	"github.com/vantage-console/vantage/internal/rbac"
)

// Module represents a protectable resource or business area.
type Module struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionSummary is the slim permission projection on module detail reads.
type PermissionSummary struct {
	ID     int64       `json:"id"`
	Action rbac.Action `json:"action"`
}

// Detail is a module together with the permissions scoped to it.
type Detail struct {
	Module
	Permissions []PermissionSummary `json:"permissions"`
}
