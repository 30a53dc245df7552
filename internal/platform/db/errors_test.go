package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/vantage-console/vantage/internal/shared"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows maps to not found", pgx.ErrNoRows, shared.ErrNotFound},
		{"unique violation maps to conflict", &pgconn.PgError{Code: "23505"}, shared.ErrConflict},
		{"foreign key violation maps to not found", &pgconn.PgError{Code: "23503"}, shared.ErrNotFound},
		{"wrapped pg error is unwrapped", fmt.Errorf("insert links: %w", &pgconn.PgError{Code: "23505"}), shared.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, TranslateError(tc.in))
		})
	}
}

func TestTranslateErrorKeepsSentinelWrapping(t *testing.T) {
	in := fmt.Errorf("%w: group 7", shared.ErrNotFound)
	out := TranslateError(in)
	require.ErrorIs(t, out, shared.ErrNotFound)
	require.EqualError(t, out, in.Error())
}

func TestTranslateErrorPassesUnknownErrorsThrough(t *testing.T) {
	in := errors.New("connection reset")
	require.Same(t, in, TranslateError(in))
}
