// Package iolookup answers bulk existence questions about stored entities
// and loads stored canonical entities. Every question is one query per
// chunk of keys, chunks are sent concurrently when the underlying
// Querier allows it.
package iolookup

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/chemexpo/factodb/pkg/db"
	"github.com/chemexpo/factodb/pkg/validate"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// Lookup implements validate.Lookup with PostgreSQL queries.
type Lookup struct {
	q         db.Querier
	batchSize int
	jobs      int
}

var _ validate.Lookup = (*Lookup)(nil)

// New creates a Lookup. Keys are sent in chunks of batchSize. With jobs
// greater than one, chunks are queried concurrently, so q must be a pool.
// Use jobs of one with a transaction.
func New(q db.Querier, batchSize, jobs int) *Lookup {
	return &Lookup{
		q:         q,
		batchSize: max(batchSize, 1),
		jobs:      max(jobs, 1),
	}
}

// pairs runs a two-column query for each chunk of keys. The chunk is the
// first argument of the query, extra arguments follow.
func pairs[K comparable, V any](
	ctx context.Context,
	l *Lookup,
	query string,
	keys []K,
	extra ...any,
) (map[K]V, error) {
	res := make(map[K]V, len(keys))
	if len(keys) == 0 {
		return res, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.jobs)

	for chunk := range slices.Chunk(keys, l.batchSize) {
		g.Go(func() error {
			args := append([]any{chunk}, extra...)
			rows, err := l.q.Query(ctx, query, args...)
			if err != nil {
				return err
			}
			defer rows.Close()

			for rows.Next() {
				var k K
				var v V
				if err := rows.Scan(&k, &v); err != nil {
					return err
				}
				mu.Lock()
				res[k] = v
				mu.Unlock()
			}
			return rows.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// all runs a two-column query without keys.
func all[K comparable, V any](
	ctx context.Context,
	l *Lookup,
	query string,
	args ...any,
) (map[K]V, error) {
	rows, err := l.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[K]V)
	for rows.Next() {
		var k K
		var v V
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		res[k] = v
	}
	return res, rows.Err()
}

func (l *Lookup) ExistingDocuments(
	ctx context.Context,
	groupID int64,
	ids []int64,
) (map[int64]bool, error) {
	q := `SELECT id, true FROM data_documents
	       WHERE id = ANY($1) AND data_group_id = $2`
	res, err := pairs[int64, bool](ctx, l, q, ids, groupID)
	if err != nil {
		return nil, LookupError("data documents", err)
	}
	return res, nil
}

func (l *Lookup) ExistingFilenames(
	ctx context.Context,
	groupID int64,
	names []string,
) (map[string]bool, error) {
	q := `SELECT filename, true FROM data_documents
	       WHERE filename = ANY($1) AND data_group_id = $2`
	res, err := pairs[string, bool](ctx, l, q, names, groupID)
	if err != nil {
		return nil, LookupError("document filenames", err)
	}
	return res, nil
}

func (l *Lookup) DocumentTypes(
	ctx context.Context,
	groupTypeCode string,
) (map[string]int64, error) {
	q := `SELECT dt.code, dt.id
	        FROM document_types dt
	        JOIN document_type_group_types g ON g.document_type_id = dt.id
	       WHERE g.group_type_code = $1`
	res, err := all[string, int64](ctx, l, q, groupTypeCode)
	if err != nil {
		return nil, LookupError("document types", err)
	}
	return res, nil
}

func (l *Lookup) ExistingRawChems(
	ctx context.Context,
	ids []int64,
) (map[int64]bool, error) {
	q := `SELECT id, true FROM raw_chems WHERE id = ANY($1)`
	res, err := pairs[int64, bool](ctx, l, q, ids)
	if err != nil {
		return nil, LookupError("raw chemicals", err)
	}
	return res, nil
}

func (l *Lookup) ScriptType(
	ctx context.Context,
	id int64,
) (string, bool, error) {
	var res string
	err := l.q.QueryRow(ctx,
		"SELECT script_type FROM scripts WHERE id = $1", id,
	).Scan(&res)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, LookupError("scripts", err)
	}
	return res, true, nil
}

func (l *Lookup) ExistingUnitTypes(
	ctx context.Context,
	ids []int64,
) (map[int64]bool, error) {
	q := `SELECT id, true FROM unit_types WHERE id = ANY($1)`
	res, err := pairs[int64, bool](ctx, l, q, ids)
	if err != nil {
		return nil, LookupError("unit types", err)
	}
	return res, nil
}

func (l *Lookup) HarmonizedMedia(
	ctx context.Context,
	names []string,
) (map[string]int64, error) {
	q := `SELECT name, id FROM harmonized_media WHERE name = ANY($1)`
	res, err := pairs[string, int64](ctx, l, q, names)
	if err != nil {
		return nil, LookupError("harmonized media", err)
	}
	return res, nil
}

func (l *Lookup) ExistingCompositions(
	ctx context.Context,
	groupID int64,
	ids []int64,
) (map[int64]bool, error) {
	q := `SELECT ec.raw_chem_id, true
	        FROM extracted_compositions ec
	        JOIN raw_chems rc ON rc.id = ec.raw_chem_id
	        JOIN data_documents dd ON dd.id = rc.extracted_text_id
	       WHERE ec.raw_chem_id = ANY($1) AND dd.data_group_id = $2`
	res, err := pairs[int64, bool](ctx, l, q, ids, groupID)
	if err != nil {
		return nil, LookupError("compositions", err)
	}
	return res, nil
}

func (l *Lookup) WeightFractionTypeExists(
	ctx context.Context,
	id int64,
) (bool, error) {
	var res bool
	err := l.q.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM weight_fraction_types WHERE id = $1)", id,
	).Scan(&res)
	if err != nil {
		return false, LookupError("weight fraction types", err)
	}
	return res, nil
}

func (l *Lookup) ExistingFunctionalUses(
	ctx context.Context,
	ids []int64,
) (map[int64]bool, error) {
	q := `SELECT id, true FROM functional_uses WHERE id = ANY($1)`
	res, err := pairs[int64, bool](ctx, l, q, ids)
	if err != nil {
		return nil, LookupError("functional uses", err)
	}
	return res, nil
}

func (l *Lookup) FunctionalUseCategories(
	ctx context.Context,
	titles []string,
) (map[string]int64, error) {
	q := `SELECT title, id FROM functional_use_categories WHERE title = ANY($1)`
	res, err := pairs[string, int64](ctx, l, q, titles)
	if err != nil {
		return nil, LookupError("functional use categories", err)
	}
	return res, nil
}

func (l *Lookup) ExistingProducts(
	ctx context.Context,
	ids []int64,
) (map[int64]bool, error) {
	q := `SELECT id, true FROM products WHERE id = ANY($1)`
	res, err := pairs[int64, bool](ctx, l, q, ids)
	if err != nil {
		return nil, LookupError("products", err)
	}
	return res, nil
}

func (l *Lookup) ExistingPUCs(
	ctx context.Context,
	ids []int64,
) (map[int64]bool, error) {
	q := `SELECT id, true FROM pucs WHERE id = ANY($1)`
	res, err := pairs[int64, bool](ctx, l, q, ids)
	if err != nil {
		return nil, LookupError("PUCs", err)
	}
	return res, nil
}

func (l *Lookup) MethodRanks(ctx context.Context) (map[string]int, error) {
	q := `SELECT code, rank FROM classification_methods`
	res, err := all[string, int](ctx, l, q)
	if err != nil {
		return nil, LookupError("classification methods", err)
	}
	return res, nil
}
