package ioclassify

import (
	"context"
	"slices"
	"time"

	"github.com/chemexpo/factodb/pkg/confidence"
	"github.com/chemexpo/factodb/pkg/db"
)

const loadSQL = `SELECT pp.id, pp.product_id, cm.rank, pp.is_uber_puc, pp.created_at
  FROM product_to_pucs pp
  JOIN classification_methods cm ON cm.code = pp.classification_method_code
 WHERE pp.product_id = ANY($1)`

const flagSQL = `UPDATE product_to_pucs
   SET is_uber_puc = (id = ANY($1))
 WHERE product_id = ANY($2)
   AND is_uber_puc IS DISTINCT FROM (id = ANY($1))`

// recompute leaves exactly one canonical assignment for every classified
// product of productIDs. Products without assignments are skipped.
func recompute(ctx context.Context, q db.Querier, productIDs []int64) error {
	products := slices.Clone(productIDs)
	slices.Sort(products)
	products = slices.Compact(products)
	if len(products) == 0 {
		return nil
	}

	rows, err := q.Query(ctx, loadSQL, products)
	if err != nil {
		return ClassifyError("load assignments", err)
	}
	defer rows.Close()

	var as []confidence.Assignment
	for rows.Next() {
		var a confidence.Assignment
		var created time.Time
		err = rows.Scan(&a.ID, &a.SubjectID, &a.Rank, &a.Canonical, &created)
		if err != nil {
			return ClassifyError("load assignments", err)
		}
		a.CreatedAt = created
		as = append(as, a)
	}
	if err = rows.Err(); err != nil {
		return ClassifyError("load assignments", err)
	}
	rows.Close()

	winners := confidence.Winners(as)
	if winners == nil {
		winners = []int64{}
	}
	if _, err = q.Exec(ctx, flagSQL, winners, products); err != nil {
		return ClassifyError("update canonical flags", err)
	}
	return nil
}
