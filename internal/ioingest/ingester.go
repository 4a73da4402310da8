// Package ioingest validates tabular batches and stores them in
// PostgreSQL. A batch is rejected with a full validation report before
// anything is written, or written in one transaction.
package ioingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chemexpo/factodb/internal/iochain"
	"github.com/chemexpo/factodb/internal/ioclassify"
	"github.com/chemexpo/factodb/internal/iocsv"
	"github.com/chemexpo/factodb/internal/iodb"
	"github.com/chemexpo/factodb/internal/iolookup"
	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/config"
	"github.com/chemexpo/factodb/pkg/db"
	"github.com/chemexpo/factodb/pkg/lifecycle"
	"github.com/chemexpo/factodb/pkg/validate"
	"github.com/gnames/gnuuid"
	"github.com/jackc/pgx/v5"
)

// Ingester implements lifecycle.Ingester.
type Ingester struct {
	op         db.Operator
	cfg        *config.Config
	writer     *iochain.Writer
	classifier *ioclassify.Classifier
}

var _ lifecycle.Ingester = (*Ingester)(nil)

// New creates an Ingester. The operator must be connected before the
// first batch.
func New(op db.Operator, cfg *config.Config) *Ingester {
	return &Ingester{
		op:         op,
		cfg:        cfg,
		writer:     iochain.NewWriter(cfg.Ingest.IdentityMode),
		classifier: ioclassify.New(op),
	}
}

// Ingest validates and stores one batch.
func (ig *Ingester) Ingest(
	ctx context.Context,
	in batch.Input,
) (*batch.Summary, error) {
	start := time.Now()
	pool := ig.op.Pool()
	if pool == nil {
		return nil, iodb.NotConnectedError()
	}

	sum := &batch.Summary{
		Kind:        in.Kind,
		Fingerprint: gnuuid.New(string(in.Data)).String(),
	}
	slog.Info("Ingesting batch",
		"kind", in.Kind, "source", in.Source, "fingerprint", sum.Fingerprint)

	tbl, err := iocsv.Decode(in.Source, in.Data)
	if err != nil {
		return nil, err
	}
	sum.Rows = tbl.Len()

	bc := batch.Context{
		GroupID:  in.GroupID,
		ScriptID: in.ScriptID,
		WFTypeID: in.WFTypeID,
		Images:   in.Images,
	}
	if needsGroup(in.Kind) {
		if err = loadGroup(ctx, pool, in.Kind, &bc); err != nil {
			return nil, err
		}
	}

	lk := iolookup.New(pool, ig.cfg.Database.BatchSize, ig.cfg.JobsNumber)
	v := validate.New(lk, ig.cfg.Ingest)

	switch in.Kind {
	case batch.KindProducts:
		err = store(ctx, ig, sum,
			func() ([]batch.ProductRow, error) { return v.Products(ctx, tbl, bc) },
			ig.products)
	case batch.KindChemicals:
		err = store(ctx, ig, sum,
			func() ([]batch.ChemicalRow, error) { return v.Chemicals(ctx, tbl) },
			ig.chemicals)
	case batch.KindDocuments:
		err = store(ctx, ig, sum,
			func() ([]batch.DocumentRow, error) { return v.Documents(ctx, tbl, bc) },
			func(ctx context.Context, q db.Querier, rows []batch.DocumentRow, sum *batch.Summary) error {
				return ig.documents(ctx, q, bc, rows, sum)
			})
	case batch.KindExtraction:
		var d batch.Domain
		if d, err = batch.ParseDomain(bc.GroupTypeCode); err != nil {
			return nil, DomainError(bc.GroupTypeCode, err)
		}
		sum.Domain = d
		err = store(ctx, ig, sum,
			func() ([]batch.ExtractionRow, error) { return v.Extraction(ctx, tbl, bc) },
			func(ctx context.Context, q db.Querier, rows []batch.ExtractionRow, sum *batch.Summary) error {
				return ig.extraction(ctx, q, bc, d, rows, sum)
			})
	case batch.KindCleanComp:
		err = store(ctx, ig, sum,
			func() ([]batch.CleanCompRow, error) { return v.CleanComp(ctx, tbl, bc) },
			func(ctx context.Context, q db.Querier, rows []batch.CleanCompRow, sum *batch.Summary) error {
				return cleanComp(ctx, q, bc, rows, sum)
			})
	case batch.KindFuncUses:
		err = store(ctx, ig, sum,
			func() ([]batch.FuncUseRow, error) { return v.FuncUses(ctx, tbl, bc) },
			func(ctx context.Context, q db.Querier, rows []batch.FuncUseRow, sum *batch.Summary) error {
				return funcUses(ctx, q, bc, rows, sum)
			})
	case batch.KindPUCs:
		err = store(ctx, ig, sum,
			func() ([]batch.PUCRow, error) { return v.PUCs(ctx, tbl) },
			ig.pucs)
	default:
		return nil, KindError(in.Kind)
	}
	if err != nil {
		return nil, err
	}

	sum.Duration = time.Since(start).Seconds()
	slog.Info("Batch ingested",
		"kind", sum.Kind,
		"fingerprint", sum.Fingerprint,
		"rows", sum.Rows,
		"committed", sum.Committed,
		"diverted", sum.Diverted,
		"created", sum.Created,
		"updated", sum.Updated,
	)
	return sum, nil
}

type storeFunc[T any] func(
	ctx context.Context,
	q db.Querier,
	rows []T,
	sum *batch.Summary,
) error

// store validates a batch and writes valid rows in one transaction.
func store[T any](
	ctx context.Context,
	ig *Ingester,
	sum *batch.Summary,
	validateRows func() ([]T, error),
	write storeFunc[T],
) error {
	rows, err := validateRows()
	if err != nil {
		var rep *batch.Report
		if errors.As(err, &rep) {
			slog.Info("Batch rejected",
				"kind", sum.Kind, "fingerprint", sum.Fingerprint,
				"errors", len(rep.Errors))
			return ValidationError(rep)
		}
		return err
	}

	return ig.op.RunInTx(ctx, func(tx pgx.Tx) error {
		return wrapStorage(sum.Kind, "write", write(ctx, tx, rows, sum))
	})
}

func needsGroup(k batch.Kind) bool {
	switch k {
	case batch.KindProducts, batch.KindDocuments,
		batch.KindExtraction, batch.KindCleanComp:
		return true
	}
	return false
}

const groupSQL = `SELECT dg.group_type_code, gt.title, dg.multiple_funcuse
  FROM data_groups dg
  JOIN group_types gt ON gt.code = dg.group_type_code
 WHERE dg.id = $1`

// loadGroup fills the group part of the batch context.
func loadGroup(
	ctx context.Context,
	q db.Querier,
	k batch.Kind,
	bc *batch.Context,
) error {
	err := q.QueryRow(ctx, groupSQL, bc.GroupID).
		Scan(&bc.GroupTypeCode, &bc.GroupTypeTitle, &bc.MultipleFuncUse)
	if errors.Is(err, pgx.ErrNoRows) {
		return GroupNotFoundError(bc.GroupID)
	}
	if err != nil {
		return StorageError(k, "load data group", err)
	}
	return nil
}

// lookup creates a Lookup bound to a transaction.
func (ig *Ingester) lookup(q db.Querier) *iolookup.Lookup {
	return iolookup.New(q, ig.cfg.Database.BatchSize, 1)
}

func (ig *Ingester) pucs(
	ctx context.Context,
	q db.Querier,
	rows []batch.PUCRow,
	sum *batch.Summary,
) error {
	n, err := ig.classifier.Import(ctx, q, rows)
	if err != nil {
		return err
	}
	sum.Committed = len(rows)
	sum.Created = n
	sum.Associations = n
	if dup := len(rows) - n; dup > 0 {
		sum.Warnings = append(sum.Warnings,
			fmt.Sprintf("%d classification(s) existed already and were skipped", dup))
	}
	return nil
}
