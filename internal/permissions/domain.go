package permissions

import (
	"time"

	"github.com/vantage-console/vantage/internal/rbac"
)

// Permission is an (action, module) pair, the atomic grantable capability.
// It is owned by its module and cannot outlive it.
type Permission struct {
	ID         int64       `json:"id"`
	Action     rbac.Action `json:"action"`
	ModuleID   int64       `json:"module_id"`
	ModuleName string      `json:"module"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ModuleGroup is one module with all its permissions, for the grouped listing.
type ModuleGroup struct {
	ModuleID    int64        `json:"module_id"`
	ModuleName  string       `json:"module"`
	Permissions []Permission `json:"permissions"`
}
