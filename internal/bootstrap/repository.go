package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-console/vantage/internal/platform/db"
)

// StorePort is the minimal storage surface the seeder needs.
type StorePort interface {
	CountUsers(ctx context.Context) (int64, error)
	InTx(ctx context.Context, fn func(TxPort) error) error
}

// TxPort exposes the seeding inserts inside one transaction.
type TxPort interface {
	InsertModule(ctx context.Context, name, description string) (int64, error)
	InsertPermission(ctx context.Context, action string, moduleID int64) (int64, error)
	InsertRole(ctx context.Context, name, description string) (int64, error)
	LinkRolePermission(ctx context.Context, roleID, permissionID int64) error
	InsertGroup(ctx context.Context, name, description string) (int64, error)
	LinkGroupRole(ctx context.Context, groupID, roleID int64) error
	InsertUser(ctx context.Context, username, email, passwordHash string) (int64, error)
	LinkUserGroup(ctx context.Context, userID, groupID int64) error
}

// Repository implements StorePort over PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CountUsers reports how many user rows exist.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// InTx runs the seeding sequence inside a single transaction so a failed
// step leaves the store untouched.
func (r *Repository) InTx(ctx context.Context, fn func(TxPort) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(txRepo{tx: tx})
	})
}

type txRepo struct {
	tx pgx.Tx
}

func (t txRepo) InsertModule(ctx context.Context, name, description string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO modules (name, description) VALUES ($1, $2) RETURNING id`,
		name, description).Scan(&id)
	return id, err
}

func (t txRepo) InsertPermission(ctx context.Context, action string, moduleID int64) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO permissions (action, module_id) VALUES ($1, $2) RETURNING id`,
		action, moduleID).Scan(&id)
	return id, err
}

func (t txRepo) InsertRole(ctx context.Context, name, description string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id`,
		name, description).Scan(&id)
	return id, err
}

func (t txRepo) LinkRolePermission(ctx context.Context, roleID, permissionID int64) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
		roleID, permissionID)
	return err
}

func (t txRepo) InsertGroup(ctx context.Context, name, description string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO groups (name, description) VALUES ($1, $2) RETURNING id`,
		name, description).Scan(&id)
	return id, err
}

func (t txRepo) LinkGroupRole(ctx context.Context, groupID, roleID int64) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO group_roles (group_id, role_id) VALUES ($1, $2)`,
		groupID, roleID)
	return err
}

func (t txRepo) InsertUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		username, email, passwordHash).Scan(&id)
	return id, err
}

func (t txRepo) LinkUserGroup(ctx context.Context, userID, groupID int64) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)`,
		userID, groupID)
	return err
}
