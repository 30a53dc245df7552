package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantage-console/vantage/internal/platform/db"
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

// List returns all users ordered by id.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, username, email, password_hash, created_at, updated_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Get fetches a user together with its group memberships.
func (r *Repository) Get(ctx context.Context, id int64) (Detail, error) {
	var d Detail
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE id = $1`, id).
		Scan(&d.ID, &d.Username, &d.Email, &d.PasswordHash, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return Detail{}, db.TranslateError(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT g.id, g.name
		 FROM groups g
		 JOIN user_groups ug ON ug.group_id = g.id
		 WHERE ug.user_id = $1
		 ORDER BY g.name`, id)
	if err != nil {
		return Detail{}, err
	}
	defer rows.Close()

	d.Groups = []GroupSummary{}
	for rows.Next() {
		var g GroupSummary
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return Detail{}, err
		}
		d.Groups = append(d.Groups, g)
	}
	return d, rows.Err()
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, username, email, passwordHash string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, username, email, password_hash, created_at, updated_at`,
		username, email, passwordHash).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, db.TranslateError(err)
	}
	return u, nil
}

// Update rewrites username and email, and the credential hash when non-empty.
func (r *Repository) Update(ctx context.Context, id int64, username, email, passwordHash string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET username = $2,
		     email = $3,
		     password_hash = CASE WHEN $4 = '' THEN password_hash ELSE $4 END,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, username, email, password_hash, created_at, updated_at`,
		id, username, email, passwordHash).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, db.TranslateError(err)
	}
	return u, nil
}

// Delete removes a user. Group membership rows cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
