package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-console/vantage/internal/platform/db"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
	CreateAccount(ctx context.Context, username, email, passwordHash string) (Account, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByUsername fetches an account by exact username.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE username = $1`,
		username).
		Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &a, nil
}

// CreateAccount registers a new user row.
func (r *PGRepository) CreateAccount(ctx context.Context, username, email, passwordHash string) (Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, username, email, password_hash, created_at, updated_at`,
		username, email, passwordHash).
		Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Account{}, db.TranslateError(err)
	}
	return a, nil
}

var _ Repository = (*PGRepository)(nil)
