package ioingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chemexpo/factodb/internal/iodb"
	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/chain"
	"github.com/chemexpo/factodb/pkg/db"
	"github.com/chemexpo/factodb/pkg/schema"
	"github.com/chemexpo/factodb/pkg/shadow"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StubPrefix starts UPCs of products created without a declared UPC.
const StubPrefix = "stub_"

var productDocumentColumns = []string{
	"document_id", "product_id", "duplicate_product_id",
}

// products stores a products batch. Rows whose UPC is stored already, or
// repeats a UPC of an earlier row, become duplicate products.
func (ig *Ingester) products(
	ctx context.Context,
	q db.Querier,
	rows []batch.ProductRow,
	sum *batch.Summary,
) error {
	upcs := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.UPC != "" {
			upcs = append(upcs, r.UPC)
		}
	}
	existing, err := ig.lookup(q).ProductUPCs(ctx, upcs)
	if err != nil {
		return err
	}

	split := shadow.Partition(rows,
		func(r batch.ProductRow) string { return r.UPC }, existing)

	prods := make([]chain.ProductRecord, len(split.Primary))
	for i, r := range split.Primary {
		upc := r.UPC
		if upc == "" {
			upc = StubPrefix + uuid.NewString()
		}
		prods[i] = chain.ProductRecord{
			Product: &schema.Product{UPC: upc, ProductInfo: r.Info},
		}
	}
	dups := make([]chain.DuplicateRecord, len(split.Shadow))
	for i, r := range split.Shadow {
		dups[i] = chain.DuplicateRecord{
			Product: &schema.DuplicateProduct{
				UPC:         uuid.NewString(),
				SourceUPC:   r.UPC,
				ProductInfo: r.Info,
			},
		}
	}

	if err = ig.writer.Write(ctx, q, chain.Records(prods)); err != nil {
		return err
	}
	if err = ig.writer.Write(ctx, q, chain.Records(dups)); err != nil {
		return err
	}

	joins := make([][]any, 0, len(rows))
	for i, r := range split.Primary {
		joins = append(joins, []any{r.DocumentID, prods[i].ID(), nil})
	}
	diverted := make([]int64, len(split.Shadow))
	for i, r := range split.Shadow {
		joins = append(joins, []any{r.DocumentID, nil, dups[i].ID()})
		diverted[i] = r.DocumentID
	}
	n, err := linkProducts(ctx, q, joins)
	if err != nil {
		return err
	}

	sum.Committed = len(split.Primary)
	sum.Created = len(split.Primary)
	sum.Diverted = len(split.Shadow)
	sum.Associations = n
	if len(diverted) > 0 {
		sum.DivertedIDs = diverted
		sum.Warnings = append(sum.Warnings, divertedWarning(diverted))
	}
	return nil
}

func linkProducts(ctx context.Context, q db.Querier, joins [][]any) (int, error) {
	if len(joins) == 0 {
		return 0, nil
	}
	n, err := q.CopyFrom(ctx,
		pgx.Identifier{schema.ProductDocument{}.TableName()},
		productDocumentColumns,
		pgx.CopyFromRows(joins),
	)
	return int(n), err
}

func divertedWarning(ids []int64) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = fmt.Sprint(id)
	}
	return "The following data documents had existing or duplicated UPCs " +
		"and their new products were added as duplicates: " +
		strings.Join(strs, ", ")
}

const stubDocumentsSQL = `SELECT dd.id, coalesce(et.prod_name, ''), dd.title
  FROM data_documents dd
  LEFT JOIN extracted_texts et ON et.id = dd.id
 WHERE dd.data_group_id = $1
   AND NOT EXISTS (
       SELECT 1 FROM product_documents pd WHERE pd.document_id = dd.id)
 ORDER BY dd.id`

const stubUPCSQL = `UPDATE products SET upc = '` + StubPrefix + `' || id
 WHERE id = ANY($1)`

type stubDocument struct {
	id       int64
	prodName string
	title    string
}

// stubTitle picks the title of a stub product.
func stubTitle(d stubDocument) string {
	switch {
	case d.prodName != "":
		return d.prodName
	case d.title != "":
		t := []rune(d.title)
		if len(t) > 250 {
			t = t[:250]
		}
		return string(t) + " stub"
	default:
		return "unknown"
	}
}

// Stubs creates a product for every document of the group that has
// none.
func (ig *Ingester) Stubs(
	ctx context.Context,
	groupID int64,
) (*batch.Summary, error) {
	start := time.Now()
	pool := ig.op.Pool()
	if pool == nil {
		return nil, iodb.NotConnectedError()
	}
	bc := batch.Context{GroupID: groupID}
	if err := loadGroup(ctx, pool, batch.KindProducts, &bc); err != nil {
		return nil, err
	}

	sum := &batch.Summary{Kind: batch.KindProducts}
	err := ig.op.RunInTx(ctx, func(tx pgx.Tx) error {
		return wrapStorage(batch.KindProducts, "stubs",
			ig.stubs(ctx, tx, groupID, sum))
	})
	if err != nil {
		return nil, err
	}
	sum.Duration = time.Since(start).Seconds()
	slog.Info("Stub products created",
		"group", groupID, "products", humanize.Comma(int64(sum.Created)))
	return sum, nil
}

func (ig *Ingester) stubs(
	ctx context.Context,
	q db.Querier,
	groupID int64,
	sum *batch.Summary,
) error {
	rows, err := q.Query(ctx, stubDocumentsSQL, groupID)
	if err != nil {
		return err
	}
	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (stubDocument, error) {
		var d stubDocument
		err := row.Scan(&d.id, &d.prodName, &d.title)
		return d, err
	})
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	prods := make([]chain.ProductRecord, len(docs))
	for i, d := range docs {
		prods[i] = chain.ProductRecord{Product: &schema.Product{
			UPC:         StubPrefix + uuid.NewString(),
			ProductInfo: schema.ProductInfo{Title: stubTitle(d)},
		}}
	}
	recs := chain.Records(prods)
	if err = ig.writer.Write(ctx, q, recs); err != nil {
		return err
	}
	ids := chain.IDs(recs)
	if _, err = q.Exec(ctx, stubUPCSQL, ids); err != nil {
		return err
	}

	joins := make([][]any, len(docs))
	for i, d := range docs {
		joins[i] = []any{d.id, ids[i], nil}
	}
	n, err := linkProducts(ctx, q, joins)
	if err != nil {
		return err
	}

	sum.Rows = len(docs)
	sum.Committed = len(docs)
	sum.Created = len(docs)
	sum.Associations = n
	return nil
}
