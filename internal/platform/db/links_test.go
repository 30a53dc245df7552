package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	require.Equal(t, []int64{3, 1, 2}, Dedupe([]int64{3, 1, 3, 2, 1}))
	require.Empty(t, Dedupe(nil))
	require.Equal(t, []int64{5}, Dedupe([]int64{5, 5, 5}))
}

// recordingTx captures executed SQL. Methods outside Exec panic via the
// embedded nil interface, which is fine for these tests.
type recordingTx struct {
	pgx.Tx
	stmts []string
}

func (r *recordingTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	return pgconn.CommandTag{}, nil
}

func TestReplaceLinksToleratesAlreadyCommittedPairs(t *testing.T) {
	tx := &recordingTx{}
	lt := LinkTable{Table: "user_groups", OwnerCol: "group_id", LinkedCol: "user_id"}

	require.NoError(t, ReplaceLinks(context.Background(), tx, lt, 1, []int64{2, 3}))
	require.Len(t, tx.stmts, 2)
	// A pair committed by a concurrent link on the same owner must not fail
	// the insert; both writers converge on the same link set.
	require.Contains(t, tx.stmts[1], "ON CONFLICT (group_id, user_id) DO NOTHING")
}

func TestReplaceLinksSkipsEmptyInput(t *testing.T) {
	tx := &recordingTx{}
	lt := LinkTable{Table: "user_groups", OwnerCol: "group_id", LinkedCol: "user_id"}
	require.NoError(t, ReplaceLinks(context.Background(), tx, lt, 1, nil))
	require.Empty(t, tx.stmts)
}
