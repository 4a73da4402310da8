package lifecycle

import (
	"context"
)

// Classifier maintains product classifications and keeps exactly one
// canonical classification per classified product.
type Classifier interface {
	// Assign classifies products with one category using a method. An
	// existing assignment with the same method is kept.
	Assign(ctx context.Context, productIDs []int64, pucID int64, method string) (int, error)

	// Remove deletes assignments by their ids.
	Remove(ctx context.Context, assignmentIDs []int64) (int, error)

	// AssignByRawCategory classifies all products of documents in a data
	// group that share a raw category with the bulk assignment method.
	AssignByRawCategory(ctx context.Context, groupID int64, rawCategory string, pucID int64) (int, error)
}
