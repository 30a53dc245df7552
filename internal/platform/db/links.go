package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// LinkTable describes a many-to-many association table between an owner
// entity and a linked entity.
type LinkTable struct {
	Table     string
	OwnerCol  string
	LinkedCol string
}

// Dedupe returns ids with duplicates removed, preserving first occurrence.
func Dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AllExist reports whether every id references a row in table. ids must be
// deduplicated by the caller.
func AllExist(ctx context.Context, tx pgx.Tx, table string, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ANY($1)`, table)
	var count int64
	if err := tx.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return false, err
	}
	return count == int64(len(ids)), nil
}

// ReplaceLinks deletes then reinserts the (owner, linked) pairs for the given
// linked ids, making link operations idempotent and retry-safe. The insert
// tolerates pairs committed by a concurrent link on the same owner: both
// transactions converge on the same pair set instead of the later committer
// failing on the primary key.
func ReplaceLinks(ctx context.Context, tx pgx.Tx, lt LinkTable, ownerID int64, linkedIDs []int64) error {
	if len(linkedIDs) == 0 {
		return nil
	}
	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = ANY($2)`, lt.Table, lt.OwnerCol, lt.LinkedCol)
	if _, err := tx.Exec(ctx, del, ownerID, linkedIDs); err != nil {
		return err
	}
	ins := fmt.Sprintf(
		`INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[]) ON CONFLICT (%s, %s) DO NOTHING`,
		lt.Table, lt.OwnerCol, lt.LinkedCol, lt.OwnerCol, lt.LinkedCol)
	if _, err := tx.Exec(ctx, ins, ownerID, linkedIDs); err != nil {
		return err
	}
	return nil
}

// DeleteLinks removes the given (owner, linked) pairs and returns the number
// of rows actually removed. Removing an absent pair is not an error.
func DeleteLinks(ctx context.Context, tx pgx.Tx, lt LinkTable, ownerID int64, linkedIDs []int64) (int64, error) {
	if len(linkedIDs) == 0 {
		return 0, nil
	}
	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = ANY($2)`, lt.Table, lt.OwnerCol, lt.LinkedCol)
	tag, err := tx.Exec(ctx, del, ownerID, linkedIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
