package iotesting_test

import (
	"context"
	"testing"

	"github.com/chemexpo/factodb/internal/iotesting"
	"github.com/chemexpo/factodb/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerier(t *testing.T) {
	var _ db.Querier = &iotesting.Querier{}
	ctx := context.Background()

	q := iotesting.NewQuerier(func(sql string, args []any) ([][]any, error) {
		if sql == "SELECT id, name" {
			return [][]any{{int64(1), "a"}, {int64(2), nil}}, nil
		}
		return nil, nil
	})

	rows, err := q.Query(ctx, "SELECT id, name", []int64{1, 2})
	require.NoError(t, err)
	var ids []int64
	var names []string
	for rows.Next() {
		var id int64
		var name *string
		require.NoError(t, rows.Scan(&id, &name))
		ids = append(ids, id)
		if name != nil {
			names = append(names, *name)
		}
	}
	assert.Equal(t, []int64{1, 2}, ids)
	assert.Equal(t, []string{"a"}, names)

	var n int
	err = q.QueryRow(ctx, "SELECT none").Scan(&n)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = q.Exec(ctx, "UPDATE x SET y = $1", 1)
	require.NoError(t, err)

	cnt, err := q.CopyFrom(ctx, pgx.Identifier{"raw_chem_functional_uses"},
		[]string{"raw_chem_id", "functional_use_id"},
		pgx.CopyFromRows([][]any{{int64(1), int64(2)}}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
	assert.Len(t, q.Copied["raw_chem_functional_uses"], 1)

	assert.Len(t, q.Calls, 4)
	assert.Len(t, q.Statements("UPDATE"), 1)
}
