package rbac

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed resolution queries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// HasPermission reports whether at least one path exists from the user to the
// (module, action) pair. Module matching is exact and case-sensitive.
func (r *Repository) HasPermission(ctx context.Context, userID int64, module string, action Action) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM user_groups ug
			JOIN group_roles gr ON gr.group_id = ug.group_id
			JOIN role_permissions rp ON rp.role_id = gr.role_id
			JOIN permissions p ON p.id = rp.permission_id
			JOIN modules m ON m.id = p.module_id
			WHERE ug.user_id = $1 AND m.name = $2 AND p.action = $3
		)`
	var allowed bool
	if err := r.pool.QueryRow(ctx, query, userID, module, string(action)).Scan(&allowed); err != nil {
		return false, err
	}
	return allowed, nil
}

// PermissionMap returns every (module, action) pair reachable from the user,
// grouped by module name. Users without grants yield an empty map.
func (r *Repository) PermissionMap(ctx context.Context, userID int64) (map[string][]Action, error) {
	const query = `
		SELECT DISTINCT m.name, p.action
		FROM user_groups ug
		JOIN group_roles gr ON gr.group_id = ug.group_id
		JOIN role_permissions rp ON rp.role_id = gr.role_id
		JOIN permissions p ON p.id = rp.permission_id
		JOIN modules m ON m.id = p.module_id
		WHERE ug.user_id = $1
		ORDER BY m.name, p.action`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perms := make(map[string][]Action)
	for rows.Next() {
		var module string
		var action string
		if err := rows.Scan(&module, &action); err != nil {
			return nil, err
		}
		perms[module] = append(perms[module], Action(action))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return perms, nil
}
