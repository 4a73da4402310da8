package ioingest

import (
	"context"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/db"
	"github.com/chemexpo/factodb/pkg/schema"
	"github.com/jackc/pgx/v5"
)

var dataDocumentColumns = []string{
	"data_group_id", "filename", "title", "document_type_id", "url",
	"organization", "subtitle", "epa_reg_number", "pmid",
}

// documents registers new data documents of a group.
func (ig *Ingester) documents(
	ctx context.Context,
	q db.Querier,
	bc batch.Context,
	rows []batch.DocumentRow,
	sum *batch.Summary,
) error {
	vals := make([][]any, len(rows))
	for i, r := range rows {
		vals[i] = []any{
			bc.GroupID, r.Filename, r.Title, r.DocumentTypeID, r.URL,
			r.Organization, r.Subtitle, r.EPARegNumber, r.PMID,
		}
	}
	n, err := q.CopyFrom(ctx,
		pgx.Identifier{schema.DataDocument{}.TableName()},
		dataDocumentColumns,
		pgx.CopyFromRows(vals),
	)
	if err != nil {
		return err
	}
	sum.Committed = len(rows)
	sum.Created = int(n)
	return nil
}
