package groups

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-console/vantage/internal/platform/db"
	"github.com/vantage-console/vantage/internal/shared"
)

var (
	memberLinks = db.LinkTable{Table: "user_groups", OwnerCol: "group_id", LinkedCol: "user_id"}
	roleLinks   = db.LinkTable{Table: "group_roles", OwnerCol: "group_id", LinkedCol: "role_id"}
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all groups ordered by id.
func (r *Repository) List(ctx context.Context) ([]Group, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// Get fetches a group with its current users and roles.
func (r *Repository) Get(ctx context.Context, id int64) (Detail, error) {
	var d Detail
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM groups WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Detail{}, db.TranslateError(err)
	}

	d.Users = []UserSummary{}
	userRows, err := r.pool.Query(ctx,
		`SELECT u.id, u.username, u.email
		 FROM users u
		 JOIN user_groups ug ON ug.user_id = u.id
		 WHERE ug.group_id = $1
		 ORDER BY u.username`, id)
	if err != nil {
		return Detail{}, err
	}
	defer userRows.Close()
	for userRows.Next() {
		var u UserSummary
		if err := userRows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return Detail{}, err
		}
		d.Users = append(d.Users, u)
	}
	if err := userRows.Err(); err != nil {
		return Detail{}, err
	}

	d.Roles = []RoleSummary{}
	roleRows, err := r.pool.Query(ctx,
		`SELECT ro.id, ro.name
		 FROM roles ro
		 JOIN group_roles gr ON gr.role_id = ro.id
		 WHERE gr.group_id = $1
		 ORDER BY ro.name`, id)
	if err != nil {
		return Detail{}, err
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var ro RoleSummary
		if err := roleRows.Scan(&ro.ID, &ro.Name); err != nil {
			return Detail{}, err
		}
		d.Roles = append(d.Roles, ro)
	}
	return d, roleRows.Err()
}

// Create inserts a new group.
func (r *Repository) Create(ctx context.Context, name, description string) (Group, error) {
	var g Group
	err := r.pool.QueryRow(ctx,
		`INSERT INTO groups (name, description)
		 VALUES ($1, $2)
		 RETURNING id, name, description, created_at, updated_at`,
		name, description).
		Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return Group{}, db.TranslateError(err)
	}
	return g, nil
}

// Update rewrites name and description.
func (r *Repository) Update(ctx context.Context, id int64, name, description string) (Group, error) {
	var g Group
	err := r.pool.QueryRow(ctx,
		`UPDATE groups SET name = $2, description = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, description, created_at, updated_at`,
		id, name, description).
		Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return Group{}, db.TranslateError(err)
	}
	return g, nil
}

// Delete removes a group. Membership and role links cascade at the schema
// level; users and roles themselves survive.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddUsers links users into the group, idempotently, in one transaction.
func (r *Repository) AddUsers(ctx context.Context, groupID int64, userIDs []int64) error {
	return r.link(ctx, groupID, userIDs, "users", memberLinks)
}

// RemoveUsers unlinks users from the group and returns rows removed.
func (r *Repository) RemoveUsers(ctx context.Context, groupID int64, userIDs []int64) (int64, error) {
	return r.unlink(ctx, groupID, userIDs, memberLinks)
}

// AddRoles links roles to the group, idempotently, in one transaction.
func (r *Repository) AddRoles(ctx context.Context, groupID int64, roleIDs []int64) error {
	return r.link(ctx, groupID, roleIDs, "roles", roleLinks)
}

// RemoveRoles unlinks roles from the group and returns rows removed.
func (r *Repository) RemoveRoles(ctx context.Context, groupID int64, roleIDs []int64) (int64, error) {
	return r.unlink(ctx, groupID, roleIDs, roleLinks)
}

// link validates the group and every counterpart before writing; any missing
// id aborts the transaction so no partial link set is ever committed.
func (r *Repository) link(ctx context.Context, groupID int64, ids []int64, counterpartTable string, lt db.LinkTable) error {
	ids = db.Dedupe(ids)
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		ok, err := db.AllExist(ctx, tx, "groups", []int64{groupID})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: group %d", shared.ErrNotFound, groupID)
		}
		ok, err = db.AllExist(ctx, tx, counterpartTable, ids)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: one or more %s do not exist", shared.ErrNotFound, counterpartTable)
		}
		return db.ReplaceLinks(ctx, tx, lt, groupID, ids)
	})
	return db.TranslateError(err)
}

func (r *Repository) unlink(ctx context.Context, groupID int64, ids []int64, lt db.LinkTable) (int64, error) {
	ids = db.Dedupe(ids)
	var removed int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		ok, err := db.AllExist(ctx, tx, "groups", []int64{groupID})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: group %d", shared.ErrNotFound, groupID)
		}
		removed, err = db.DeleteLinks(ctx, tx, lt, groupID, ids)
		return err
	})
	return removed, db.TranslateError(err)
}
