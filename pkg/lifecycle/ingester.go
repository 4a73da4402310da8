package lifecycle

import (
	"context"

	"github.com/chemexpo/factodb/pkg/batch"
)

// Ingester validates and stores tabular batches.
//
// Every batch is all-or-nothing: it is either rejected with a validation
// report before any write, or written in one transaction. A failure during
// the write rolls back everything the batch did.
type Ingester interface {
	// Ingest processes one batch and returns the summary of committed
	// work. Validation failures are returned as an error wrapping
	// *batch.Report.
	Ingest(ctx context.Context, in batch.Input) (*batch.Summary, error)

	// Stubs creates placeholder products for documents of a data group
	// that have none.
	Stubs(ctx context.Context, groupID int64) (*batch.Summary, error)
}
