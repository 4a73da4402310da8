// Package ioclassify stores product classifications. Every write path
// runs in one transaction and finishes by recomputing which assignment of
// each touched product is canonical.
package ioclassify

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/db"
	"github.com/chemexpo/factodb/pkg/schema"
	"github.com/jackc/pgx/v5"
)

// Classifier implements lifecycle.Classifier.
type Classifier struct {
	op db.Operator
}

// New creates a Classifier that runs its transactions with op.
func New(op db.Operator) *Classifier {
	return &Classifier{op: op}
}

// Assign adds assignments of productIDs to pucID with method. Products
// that already have this assignment are left as they are. It returns the
// number of new assignments.
func (c *Classifier) Assign(
	ctx context.Context,
	productIDs []int64,
	pucID int64,
	method string,
) (int, error) {
	var res int
	err := c.op.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := checkMethod(ctx, tx, method); err != nil {
			return err
		}
		n, err := insertAssignments(ctx, tx, productIDs,
			repeat(pucID, len(productIDs)), repeat(method, len(productIDs)))
		if err != nil {
			return err
		}
		res = n
		return recompute(ctx, tx, productIDs)
	})
	if err != nil {
		return 0, err
	}
	slog.Info("Products classified",
		"products", len(productIDs), "puc", pucID, "method", method, "new", res)
	return res, nil
}

// Remove deletes assignments by id. It returns the number of deleted
// assignments.
func (c *Classifier) Remove(
	ctx context.Context,
	assignmentIDs []int64,
) (int, error) {
	var res int
	err := c.op.RunInTx(ctx, func(tx pgx.Tx) error {
		products, err := deleteAssignments(ctx, tx, assignmentIDs)
		if err != nil {
			return err
		}
		res = len(products)
		return recompute(ctx, tx, products)
	})
	if err != nil {
		return 0, err
	}
	slog.Info("Classifications removed", "assignments", res)
	return res, nil
}

// AssignByRawCategory classifies every product of documents in a data
// group with the given raw category using the bulk assignment method. An
// existing bulk assignment of such product is moved to pucID. It returns
// the number of classified products.
func (c *Classifier) AssignByRawCategory(
	ctx context.Context,
	groupID int64,
	rawCategory string,
	pucID int64,
) (int, error) {
	var res int
	err := c.op.RunInTx(ctx, func(tx pgx.Tx) error {
		products, err := categoryProducts(ctx, tx, groupID, rawCategory)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}

		method := schema.MethodBulkAssignment
		if err = moveBulk(ctx, tx, pucID, products); err != nil {
			return err
		}
		_, err = insertAssignments(ctx, tx, products,
			repeat(pucID, len(products)), repeat(method, len(products)))
		if err != nil {
			return err
		}
		res = len(products)
		return recompute(ctx, tx, products)
	})
	if err != nil {
		return 0, err
	}
	slog.Info("Raw category classified",
		"group", groupID, "category", rawCategory, "products", res)
	return res, nil
}

// Import stores assignments of a validated classification batch using q,
// the transaction of the batch. It returns the number of new assignments.
func (c *Classifier) Import(
	ctx context.Context,
	q db.Querier,
	rows []batch.PUCRow,
) (int, error) {
	products := make([]int64, len(rows))
	pucs := make([]int64, len(rows))
	methods := make([]string, len(rows))
	for i, r := range rows {
		products[i] = r.ProductID
		pucs[i] = r.PUCID
		methods[i] = r.Method
	}

	n, err := insertAssignments(ctx, q, products, pucs, methods)
	if err != nil {
		return 0, err
	}
	return n, recompute(ctx, q, products)
}

// dropExtraBulkSQL leaves at most one bulk assignment per product,
// preferring the one on the target category.
const dropExtraBulkSQL = `DELETE FROM product_to_pucs pp
 USING (
       SELECT id, row_number() OVER (
              PARTITION BY product_id
              ORDER BY (puc_id = $1) DESC, id) AS n
         FROM product_to_pucs
        WHERE product_id = ANY($2)
          AND classification_method_code = $3
       ) d
 WHERE pp.id = d.id
   AND d.n > 1`

const moveBulkSQL = `UPDATE product_to_pucs
   SET puc_id = $1, updated_at = now()
 WHERE product_id = ANY($2)
   AND classification_method_code = $3
   AND puc_id <> $1`

const insertSQL = `INSERT INTO product_to_pucs
       (product_id, puc_id, classification_method_code, is_uber_puc, created_at)
SELECT p, u, m, false, now()
  FROM unnest($1::bigint[], $2::bigint[], $3::text[]) AS t(p, u, m)
    ON CONFLICT (product_id, puc_id, classification_method_code) DO NOTHING`

// moveBulk moves bulk assignments of products to pucID. Products with
// several bulk assignments keep only one of them.
func moveBulk(
	ctx context.Context,
	q db.Querier,
	pucID int64,
	products []int64,
) error {
	method := schema.MethodBulkAssignment
	_, err := q.Exec(ctx, dropExtraBulkSQL, pucID, products, method)
	if err != nil {
		return ClassifyError("drop extra bulk assignments", err)
	}
	_, err = q.Exec(ctx, moveBulkSQL, pucID, products, method)
	if err != nil {
		return ClassifyError("move bulk assignments", err)
	}
	return nil
}

func insertAssignments(
	ctx context.Context,
	q db.Querier,
	products, pucs []int64,
	methods []string,
) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	tag, err := q.Exec(ctx, insertSQL, products, pucs, methods)
	if err != nil {
		return 0, ClassifyError("insert assignments", err)
	}
	return int(tag.RowsAffected()), nil
}

func deleteAssignments(
	ctx context.Context,
	q db.Querier,
	ids []int64,
) ([]int64, error) {
	rows, err := q.Query(ctx,
		"DELETE FROM product_to_pucs WHERE id = ANY($1) RETURNING product_id", ids)
	if err != nil {
		return nil, ClassifyError("delete assignments", err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, ClassifyError("delete assignments", err)
	}
	return res, nil
}

func categoryProducts(
	ctx context.Context,
	q db.Querier,
	groupID int64,
	rawCategory string,
) ([]int64, error) {
	rows, err := q.Query(ctx, `SELECT DISTINCT pd.product_id
  FROM product_documents pd
  JOIN data_documents dd ON dd.id = pd.document_id
 WHERE dd.data_group_id = $1
   AND dd.raw_category = $2
   AND pd.product_id IS NOT NULL
 ORDER BY pd.product_id`, groupID, rawCategory)
	if err != nil {
		return nil, ClassifyError("find category products", err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, ClassifyError("find category products", err)
	}
	return res, nil
}

func checkMethod(ctx context.Context, q db.Querier, method string) error {
	var rank int
	err := q.QueryRow(ctx,
		"SELECT rank FROM classification_methods WHERE code = $1", method,
	).Scan(&rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return MethodError(method)
	}
	if err != nil {
		return ClassifyError("check method", err)
	}
	return nil
}

func repeat[T any](v T, n int) []T {
	return slices.Repeat([]T{v}, n)
}
