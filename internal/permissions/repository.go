package permissions

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-console/vantage/internal/platform/db"
	"github.com/vantage-console/vantage/internal/shared"
)

const selectPermission = `
	SELECT p.id, p.action, p.module_id, m.name, p.created_at, p.updated_at
	FROM permissions p
	JOIN modules m ON m.id = p.module_id`

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all permissions with their module names.
func (r *Repository) List(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, selectPermission+` ORDER BY m.name, p.action`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Action, &p.ModuleID, &p.ModuleName, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Get fetches a single permission.
func (r *Repository) Get(ctx context.Context, id int64) (Permission, error) {
	var p Permission
	err := r.pool.QueryRow(ctx, selectPermission+` WHERE p.id = $1`, id).
		Scan(&p.ID, &p.Action, &p.ModuleID, &p.ModuleName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Permission{}, db.TranslateError(err)
	}
	return p, nil
}

// Create inserts a permission for a module. The schema rejects a duplicate
// (module, action) pair and an unknown module id.
func (r *Repository) Create(ctx context.Context, action string, moduleID int64) (Permission, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO permissions (action, module_id) VALUES ($1, $2) RETURNING id`,
		action, moduleID).Scan(&id)
	if err != nil {
		return Permission{}, db.TranslateError(err)
	}
	return r.Get(ctx, id)
}

// Update changes the action of an existing permission.
func (r *Repository) Update(ctx context.Context, id int64, action string) (Permission, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE permissions SET action = $2, updated_at = NOW() WHERE id = $1`,
		id, action)
	if err != nil {
		return Permission{}, db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return Permission{}, shared.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a permission; role links holding it cascade away.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GroupedByModule returns every module with its permissions, including
// modules that currently have none.
func (r *Repository) GroupedByModule(ctx context.Context) ([]ModuleGroup, error) {
	moduleRows, err := r.pool.Query(ctx, `SELECT id, name FROM modules ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer moduleRows.Close()

	groups := []ModuleGroup{}
	index := make(map[int64]int)
	for moduleRows.Next() {
		var g ModuleGroup
		if err := moduleRows.Scan(&g.ModuleID, &g.ModuleName); err != nil {
			return nil, err
		}
		g.Permissions = []Permission{}
		index[g.ModuleID] = len(groups)
		groups = append(groups, g)
	}
	if err := moduleRows.Err(); err != nil {
		return nil, err
	}

	perms, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range perms {
		if i, ok := index[p.ModuleID]; ok {
			groups[i].Permissions = append(groups[i].Permissions, p)
		}
	}
	return groups, nil
}
