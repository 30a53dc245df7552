// Package rbac resolves whether a user may perform an action on a module by
// walking the User -> Group -> Role -> Permission -> Module graph.
package rbac

// Action is one of the four canonical verbs a permission can grant.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions returns the canonical actions in their seeding order.
func Actions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}

// Valid reports whether a is one of the canonical actions.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Canonical module names protected by the console itself.
const (
	ModuleUsers       = "Users"
	ModuleGroups      = "Groups"
	ModuleRoles       = "Roles"
	ModuleModules     = "Modules"
	ModulePermissions = "Permissions"
)

// Modules returns the canonical module names in their seeding order.
func Modules() []string {
	return []string{ModuleUsers, ModuleGroups, ModuleRoles, ModuleModules, ModulePermissions}
}

// Decision is the outcome of a simulated permission check. The rationale
// deliberately avoids revealing whether the user or module exists.
type Decision struct {
	HasPermission bool   `json:"hasPermission"`
	Rationale     string `json:"rationale"`
}
