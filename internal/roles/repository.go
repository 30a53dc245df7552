package roles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-console/vantage/internal/platform/db"
	"github.com/vantage-console/vantage/internal/shared"
)

var permissionLinks = db.LinkTable{Table: "role_permissions", OwnerCol: "role_id", LinkedCol: "permission_id"}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all roles ordered by id.
func (r *Repository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

// Get fetches a role with its permissions and holding groups.
func (r *Repository) Get(ctx context.Context, id int64) (Detail, error) {
	var d Detail
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Detail{}, db.TranslateError(err)
	}

	d.Permissions = []PermissionSummary{}
	permRows, err := r.pool.Query(ctx,
		`SELECT p.id, p.action, m.name
		 FROM permissions p
		 JOIN role_permissions rp ON rp.permission_id = p.id
		 JOIN modules m ON m.id = p.module_id
		 WHERE rp.role_id = $1
		 ORDER BY m.name, p.action`, id)
	if err != nil {
		return Detail{}, err
	}
	defer permRows.Close()
	for permRows.Next() {
		var p PermissionSummary
		if err := permRows.Scan(&p.ID, &p.Action, &p.Module); err != nil {
			return Detail{}, err
		}
		d.Permissions = append(d.Permissions, p)
	}
	if err := permRows.Err(); err != nil {
		return Detail{}, err
	}

	d.Groups = []GroupSummary{}
	groupRows, err := r.pool.Query(ctx,
		`SELECT g.id, g.name
		 FROM groups g
		 JOIN group_roles gr ON gr.group_id = g.id
		 WHERE gr.role_id = $1
		 ORDER BY g.name`, id)
	if err != nil {
		return Detail{}, err
	}
	defer groupRows.Close()
	for groupRows.Next() {
		var g GroupSummary
		if err := groupRows.Scan(&g.ID, &g.Name); err != nil {
			return Detail{}, err
		}
		d.Groups = append(d.Groups, g)
	}
	return d, groupRows.Err()
}

// Create inserts a new role.
func (r *Repository) Create(ctx context.Context, name, description string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx,
		`INSERT INTO roles (name, description)
		 VALUES ($1, $2)
		 RETURNING id, name, description, created_at, updated_at`,
		name, description).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return Role{}, db.TranslateError(err)
	}
	return role, nil
}

// Update rewrites name and description.
func (r *Repository) Update(ctx context.Context, id int64, name, description string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx,
		`UPDATE roles SET name = $2, description = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, description, created_at, updated_at`,
		id, name, description).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return Role{}, db.TranslateError(err)
	}
	return role, nil
}

// Delete removes a role. Its permission links and group assignments cascade;
// the permissions themselves survive.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddPermissions links permissions to the role, idempotently, in one
// transaction. A missing permission id aborts the whole call.
func (r *Repository) AddPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	permissionIDs = db.Dedupe(permissionIDs)
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		ok, err := db.AllExist(ctx, tx, "roles", []int64{roleID})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: role %d", shared.ErrNotFound, roleID)
		}
		ok, err = db.AllExist(ctx, tx, "permissions", permissionIDs)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: one or more permissions do not exist", shared.ErrNotFound)
		}
		return db.ReplaceLinks(ctx, tx, permissionLinks, roleID, permissionIDs)
	})
	return db.TranslateError(err)
}

// RemovePermissions unlinks permissions from the role and returns rows removed.
func (r *Repository) RemovePermissions(ctx context.Context, roleID int64, permissionIDs []int64) (int64, error) {
	permissionIDs = db.Dedupe(permissionIDs)
	var removed int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		ok, err := db.AllExist(ctx, tx, "roles", []int64{roleID})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: role %d", shared.ErrNotFound, roleID)
		}
		removed, err = db.DeleteLinks(ctx, tx, permissionLinks, roleID, permissionIDs)
		return err
	})
	return removed, db.TranslateError(err)
}
