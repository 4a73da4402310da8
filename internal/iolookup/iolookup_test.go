package iolookup_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chemexpo/factodb/internal/iolookup"
	"github.com/chemexpo/factodb/internal/iotesting"
	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// idResponder answers "SELECT id, true" queries with ids of the chunk
// present in stored.
func idResponder(stored map[int64]bool) iotesting.Responder {
	return func(sql string, args []any) ([][]any, error) {
		var res [][]any
		for _, id := range args[0].([]int64) {
			if stored[id] {
				res = append(res, []any{id, true})
			}
		}
		return res, nil
	}
}

func TestExistingChunks(t *testing.T) {
	ctx := context.Background()
	stored := map[int64]bool{1: true, 3: true, 5: true, 8: true}

	tests := []struct {
		name      string
		batchSize int
		jobs      int
		calls     int
	}{
		{"one chunk", 100, 1, 1},
		{"sequential chunks", 2, 1, 4},
		{"concurrent chunks", 2, 4, 4},
	}

	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := iotesting.NewQuerier(idResponder(stored))
			l := iolookup.New(q, tt.batchSize, tt.jobs)

			res, err := l.ExistingRawChems(ctx, ids)
			require.NoError(t, err)
			assert.Equal(t, stored, res)
			assert.Len(t, q.Calls, tt.calls)
		})
	}
}

func TestExistingDocumentsArgs(t *testing.T) {
	q := iotesting.NewQuerier(idResponder(map[int64]bool{7: true}))
	l := iolookup.New(q, 10, 1)

	res, err := l.ExistingDocuments(context.Background(), 42, []int64{7, 9})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{7: true}, res)
	require.Len(t, q.Calls, 1)
	assert.Equal(t, int64(42), q.Calls[0].Args[1])
	assert.Contains(t, q.Calls[0].SQL, "data_group_id = $2")
}

func TestNoKeysNoQuery(t *testing.T) {
	q := iotesting.NewQuerier(nil)
	l := iolookup.New(q, 10, 2)

	res, err := l.ExistingProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Empty(t, q.Calls)
}

func TestScriptType(t *testing.T) {
	q := iotesting.NewQuerier(func(sql string, args []any) ([][]any, error) {
		if args[0].(int64) == 3 {
			return [][]any{{"EX"}}, nil
		}
		return nil, nil
	})
	l := iolookup.New(q, 10, 1)

	st, ok, err := l.ScriptType(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "EX", st)

	_, ok, err = l.ScriptType(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMethodRanks(t *testing.T) {
	q := iotesting.NewQuerier(func(string, []any) ([][]any, error) {
		return [][]any{{"MA", 1}, {"AU", 5}}, nil
	})
	l := iolookup.New(q, 10, 1)

	res, err := l.MethodRanks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"MA": 1, "AU": 5}, res)
}

func TestLookupError(t *testing.T) {
	boom := errors.New("connection reset")
	q := iotesting.NewQuerier(func(string, []any) ([][]any, error) {
		return nil, boom
	})
	l := iolookup.New(q, 10, 1)

	_, err := l.ExistingPUCs(context.Background(), []int64{1})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.IngestLookupError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, boom)
}

func TestEntities(t *testing.T) {
	ctx := context.Background()
	q := iotesting.NewQuerier(func(sql string, args []any) ([][]any, error) {
		switch {
		case strings.Contains(sql, "dsstox_lookups"):
			return [][]any{{int64(1), "DTXSID1", "water", "7732-18-5"}}, nil
		case strings.Contains(sql, "functional_uses"):
			return [][]any{{int64(4), "solvent", nil}}, nil
		case strings.Contains(sql, "FROM products"):
			return [][]any{{"0001"}}, nil
		case strings.Contains(sql, "extracted_texts"):
			return [][]any{
				{int64(10), "Cleaners", int64(10), "soap", "2020", "1", int64(3)},
				{int64(11), "", nil, nil, nil, nil, nil},
			}, nil
		}
		return nil, nil
	})
	l := iolookup.New(q, 10, 1)

	ds, err := l.DSSToxBySID(ctx, []string{"DTXSID1"})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "water", ds[0].TrueChemName)

	fus, err := l.FunctionalUsesByName(ctx, []string{"solvent"})
	require.NoError(t, err)
	require.Len(t, fus, 1)
	assert.Nil(t, fus[0].CategoryID)

	upcs, err := l.ProductUPCs(ctx, []string{"0001", "0002"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"0001": true}, upcs)

	parents, err := l.ParentDocuments(ctx, []int64{10, 11})
	require.NoError(t, err)
	require.NotNil(t, parents[10].Text)
	assert.Equal(t, "soap", parents[10].Text.ProdName)
	assert.Equal(t, int64(3), parents[10].Text.ExtractionScriptID)
	assert.Equal(t, "Cleaners", parents[10].RawCategory)
	assert.Nil(t, parents[11].Text)
}
