package modules

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-console/vantage/internal/platform/db"
	"github.com/vantage-console/vantage/internal/rbac"
	"github.com/vantage-console/vantage/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all modules ordered by id.
func (r *Repository) List(ctx context.Context) ([]Module, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM modules ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Module
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Get fetches a module with its permissions.
func (r *Repository) Get(ctx context.Context, id int64) (Detail, error) {
	var d Detail
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM modules WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Detail{}, db.TranslateError(err)
	}

	d.Permissions = []PermissionSummary{}
	rows, err := r.pool.Query(ctx,
		`SELECT id, action FROM permissions WHERE module_id = $1 ORDER BY action`, id)
	if err != nil {
		return Detail{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var p PermissionSummary
		if err := rows.Scan(&p.ID, &p.Action); err != nil {
			return Detail{}, err
		}
		d.Permissions = append(d.Permissions, p)
	}
	return d, rows.Err()
}

// Create inserts the module and its four canonical permissions inside a
// single transaction, so a module never exists half-provisioned.
func (r *Repository) Create(ctx context.Context, name, description string) (Module, error) {
	var m Module
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO modules (name, description)
			 VALUES ($1, $2)
			 RETURNING id, name, description, created_at, updated_at`,
			name, description).
			Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return err
		}
		for _, action := range rbac.Actions() {
			if _, err := tx.Exec(ctx,
				`INSERT INTO permissions (action, module_id) VALUES ($1, $2)`,
				string(action), m.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Module{}, db.TranslateError(err)
	}
	return m, nil
}

// Update rewrites name and description.
func (r *Repository) Update(ctx context.Context, id int64, name, description string) (Module, error) {
	var m Module
	err := r.pool.QueryRow(ctx,
		`UPDATE modules SET name = $2, description = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, description, created_at, updated_at`,
		id, name, description).
		Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Module{}, db.TranslateError(err)
	}
	return m, nil
}

// Delete removes a module. Its permissions cascade away, and with them every
// role link that held those permissions.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
