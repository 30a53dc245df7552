package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vantage-console/vantage/internal/shared"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// TranslateError maps pgx-level failures onto the shared error taxonomy so
// services never have to inspect SQLSTATE codes themselves.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shared.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return shared.ErrConflict
		case foreignKeyViolation:
			return shared.ErrNotFound
		}
	}
	return err
}
