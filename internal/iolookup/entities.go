package iolookup

import (
	"context"
	"slices"

	"github.com/chemexpo/factodb/pkg/schema"
	"github.com/jackc/pgx/v5"
)

// collect runs query for each chunk of keys sequentially and scans every
// row with scan. Entity loads happen inside the write transaction, so
// chunks are not sent concurrently.
func collect[K any, E any](
	ctx context.Context,
	l *Lookup,
	query string,
	keys []K,
	scan func(pgx.Rows) (E, error),
) ([]E, error) {
	var res []E
	for chunk := range slices.Chunk(keys, l.batchSize) {
		rows, err := l.q.Query(ctx, query, chunk)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			e, err := scan(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			res = append(res, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// DSSToxBySID loads stored chemical identities by their sids.
func (l *Lookup) DSSToxBySID(
	ctx context.Context,
	sids []string,
) ([]*schema.DSSToxLookup, error) {
	q := `SELECT id, sid, true_chemname, true_cas
	        FROM dsstox_lookups WHERE sid = ANY($1)`
	res, err := collect(ctx, l, q, sids,
		func(rows pgx.Rows) (*schema.DSSToxLookup, error) {
			var d schema.DSSToxLookup
			err := rows.Scan(&d.ID, &d.SID, &d.TrueChemName, &d.TrueCAS)
			return &d, err
		})
	if err != nil {
		return nil, LookupError("chemical identities", err)
	}
	return res, nil
}

// FunctionalUsesByName loads stored functional uses by reported use
// strings.
func (l *Lookup) FunctionalUsesByName(
	ctx context.Context,
	names []string,
) ([]*schema.FunctionalUse, error) {
	q := `SELECT id, report_funcuse, category_id
	        FROM functional_uses WHERE report_funcuse = ANY($1)`
	res, err := collect(ctx, l, q, names,
		func(rows pgx.Rows) (*schema.FunctionalUse, error) {
			var f schema.FunctionalUse
			err := rows.Scan(&f.ID, &f.ReportFuncUse, &f.CategoryID)
			return &f, err
		})
	if err != nil {
		return nil, LookupError("functional uses", err)
	}
	return res, nil
}

// ProductUPCs returns UPCs already taken by stored products.
func (l *Lookup) ProductUPCs(
	ctx context.Context,
	upcs []string,
) (map[string]bool, error) {
	q := `SELECT upc FROM products WHERE upc = ANY($1)`
	found, err := collect(ctx, l, q, upcs,
		func(rows pgx.Rows) (string, error) {
			var s string
			err := rows.Scan(&s)
			return s, err
		})
	if err != nil {
		return nil, LookupError("product UPCs", err)
	}
	res := make(map[string]bool, len(found))
	for _, s := range found {
		res[s] = true
	}
	return res, nil
}

// ParentDocument is the stored document-level state of an extraction.
type ParentDocument struct {
	Text        *schema.ExtractedText
	RawCategory string
}

// ParentDocuments loads documents with their extracted texts. Text is nil
// for documents that were never extracted.
func (l *Lookup) ParentDocuments(
	ctx context.Context,
	ids []int64,
) (map[int64]ParentDocument, error) {
	q := `SELECT dd.id, coalesce(dd.raw_category, ''), et.id,
	             et.prod_name, et.doc_date, et.rev_num, et.extraction_script_id
	        FROM data_documents dd
	        LEFT JOIN extracted_texts et ON et.id = dd.id
	       WHERE dd.id = ANY($1)`
	type parent struct {
		id int64
		ParentDocument
	}
	found, err := collect(ctx, l, q, ids,
		func(rows pgx.Rows) (parent, error) {
			var p parent
			var textID, scriptID *int64
			var prodName, docDate, revNum *string
			err := rows.Scan(&p.id, &p.RawCategory, &textID,
				&prodName, &docDate, &revNum, &scriptID)
			if err != nil || textID == nil {
				return p, err
			}
			p.Text = &schema.ExtractedText{
				ID:       *textID,
				ProdName: deref(prodName),
				DocDate:  deref(docDate),
				RevNum:   deref(revNum),
			}
			if scriptID != nil {
				p.Text.ExtractionScriptID = *scriptID
			}
			return p, nil
		})
	if err != nil {
		return nil, LookupError("extracted documents", err)
	}

	res := make(map[int64]ParentDocument, len(found))
	for _, p := range found {
		res[p.id] = p.ParentDocument
	}
	return res, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
