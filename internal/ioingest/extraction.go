package ioingest

import (
	"context"

	"github.com/chemexpo/factodb/internal/iolookup"
	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/chain"
	"github.com/chemexpo/factodb/pkg/db"
	"github.com/chemexpo/factodb/pkg/resolve"
	"github.com/chemexpo/factodb/pkg/schema"
	"github.com/jackc/pgx/v5"
)

// parentPlan lists document-level writes of an extraction batch.
type parentPlan struct {
	// create holds documents extracted for the first time.
	create []chain.Record

	// texts are stored extracted texts with changed fields.
	texts []*schema.ExtractedText

	// subtypes are subtype payloads of stored extracted texts.
	subtypes []subtype

	// categories are id and raw_category pairs of documents whose raw
	// category changed.
	categories [][]any
}

type subtype struct {
	id   int64
	part chain.Part
}

// updated counts stored documents with changed text or category.
func (p parentPlan) updated() int {
	ids := make(map[int64]struct{})
	for _, t := range p.texts {
		ids[t.ID] = struct{}{}
	}
	for _, c := range p.categories {
		ids[c[0].(int64)] = struct{}{}
	}
	return len(ids)
}

// firstRows returns document ids in order of appearance and the first
// row of each document. Document-level fields are one-to-one with the
// document, so the first row speaks for all of them.
func firstRows(rows []batch.ExtractionRow) ([]int64, map[int64]batch.ExtractionRow) {
	var ids []int64
	res := make(map[int64]batch.ExtractionRow)
	for _, r := range rows {
		if _, ok := res[r.DocumentID]; ok {
			continue
		}
		ids = append(ids, r.DocumentID)
		res[r.DocumentID] = r
	}
	return ids, res
}

func textChanged(stored, proposed *schema.ExtractedText) bool {
	return stored.ProdName != proposed.ProdName ||
		stored.DocDate != proposed.DocDate ||
		stored.RevNum != proposed.RevNum ||
		stored.ExtractionScriptID != proposed.ExtractionScriptID
}

// planParents compares document-level data of the batch with stored
// state. Unchanged documents are left alone.
func planParents(
	ids []int64,
	firsts map[int64]batch.ExtractionRow,
	stored map[int64]iolookup.ParentDocument,
	d batch.Domain,
	scriptID int64,
) parentPlan {
	var res parentPlan
	for _, id := range ids {
		r := firsts[id]
		rec := chain.NewDocumentRecord(r, d, scriptID)
		p := stored[id]

		switch {
		case p.Text == nil:
			res.create = append(res.create, rec)
		default:
			if textChanged(p.Text, &rec.Text) {
				res.texts = append(res.texts, &rec.Text)
			}
			if parts := rec.Parts(); len(parts) > 1 {
				res.subtypes = append(res.subtypes, subtype{id: id, part: parts[1]})
			}
		}

		if r.RawCategory != "" && r.RawCategory != p.RawCategory {
			res.categories = append(res.categories, []any{id, r.RawCategory})
		}
	}
	return res
}

const textUpdateSet = `prod_name = v.prod_name,
       doc_date = v.doc_date,
       rev_num = v.rev_num,
       extraction_script_id = v.extraction_script_id,
       updated_at = now()`

const categoryUpdateSet = `raw_category = v.raw_category,
       updated_at = now()`

func (ig *Ingester) storeParents(
	ctx context.Context,
	q db.Querier,
	p parentPlan,
) error {
	if err := ig.writer.Write(ctx, q, p.create); err != nil {
		return err
	}

	if len(p.texts) > 0 {
		vals := make([][]any, len(p.texts))
		for i, t := range p.texts {
			vals[i] = []any{t.ID, t.ProdName, t.DocDate, t.RevNum, t.ExtractionScriptID}
		}
		sql := updateFromSQL("extracted_texts", "id",
			[]string{"id", "prod_name", "doc_date", "rev_num", "extraction_script_id"},
			[]string{"bigint", "text", "text", "text", "bigint"},
			textUpdateSet, len(vals), 0)
		if _, err := q.Exec(ctx, sql, flatten(vals)...); err != nil {
			return err
		}
	}

	if len(p.subtypes) > 0 {
		first := p.subtypes[0].part
		vals := make([][]any, len(p.subtypes))
		for i, st := range p.subtypes {
			vals[i] = append([]any{st.id}, st.part.Values...)
		}
		sql := upsertSQL(first.Table, first.Key, first.Columns, len(vals))
		if _, err := q.Exec(ctx, sql, flatten(vals)...); err != nil {
			return err
		}
	}

	if len(p.categories) > 0 {
		sql := updateFromSQL("data_documents", "id",
			[]string{"id", "raw_category"},
			[]string{"bigint", "text"},
			categoryUpdateSet, len(p.categories), 0)
		if _, err := q.Exec(ctx, sql, flatten(p.categories)...); err != nil {
			return err
		}
	}
	return nil
}

// extraction stores an extraction batch of domain d.
func (ig *Ingester) extraction(
	ctx context.Context,
	q db.Querier,
	bc batch.Context,
	d batch.Domain,
	rows []batch.ExtractionRow,
	sum *batch.Summary,
) error {
	lk := ig.lookup(q)

	ids, firsts := firstRows(rows)
	stored, err := lk.ParentDocuments(ctx, ids)
	if err != nil {
		return err
	}
	parents := planParents(ids, firsts, stored, d, bc.ScriptID)
	if err = ig.storeParents(ctx, q, parents); err != nil {
		return err
	}

	var chemRows []batch.ExtractionRow
	for _, r := range rows {
		if r.HasChem {
			chemRows = append(chemRows, r)
		}
	}
	chems := make([]*chain.ChemicalRecord, len(chemRows))
	for i, r := range chemRows {
		chems[i] = chain.NewChemicalRecord(r, d)
	}
	if err = ig.writer.Write(ctx, q, chain.Records(chems)); err != nil {
		return err
	}

	var created, links int
	if d == batch.DomainLiterature {
		links, err = storeStats(ctx, q, chemRows, chems)
	} else {
		created, links, err = ig.linkFuncUses(ctx, q, lk, bc.ScriptID, chemRows, chems)
	}
	if err != nil {
		return err
	}

	sum.Committed = len(rows)
	sum.Created = created
	sum.ParentsCreated = len(parents.create)
	sum.ParentsUpdated = parents.updated()
	sum.Associations = links
	return nil
}

func newFuncUseResolver(
	stored []*schema.FunctionalUse,
) *resolve.Resolver[string, schema.FunctionalUse] {
	return resolve.New(stored,
		func(e *schema.FunctionalUse) string { return e.ReportFuncUse },
		func(_, _ *schema.FunctionalUse) bool { return true },
		func(_, _ *schema.FunctionalUse) {},
	)
}

// linkFuncUses resolves reported functional uses, creates the missing
// ones and links chemical records to them.
func (ig *Ingester) linkFuncUses(
	ctx context.Context,
	q db.Querier,
	lk *iolookup.Lookup,
	scriptID int64,
	rows []batch.ExtractionRow,
	chems []*chain.ChemicalRecord,
) (int, int, error) {
	var names []string
	seen := make(map[string]bool)
	for _, r := range rows {
		for _, n := range r.FuncUses {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	if len(names) == 0 {
		return 0, 0, nil
	}

	stored, err := lk.FunctionalUsesByName(ctx, names)
	if err != nil {
		return 0, 0, err
	}
	res := newFuncUseResolver(stored)
	refs := make([][]*schema.FunctionalUse, len(rows))
	for i, r := range rows {
		for _, n := range r.FuncUses {
			proposed := &schema.FunctionalUse{
				ReportFuncUse:      n,
				ExtractionScriptID: &scriptID,
			}
			refs[i] = append(refs[i], res.Resolve(proposed, true).Entity)
		}
	}

	plan := res.Plan()
	if len(plan.New) > 0 {
		recs := make([]chain.FunctionalUseRecord, len(plan.New))
		for i, e := range plan.New {
			recs[i] = chain.FunctionalUseRecord{Entity: e}
		}
		if err = ig.writer.Write(ctx, q, chain.Records(recs)); err != nil {
			return 0, 0, err
		}
		found, err := lk.FunctionalUsesByName(ctx, resolve.Keys(res, plan.New))
		if err != nil {
			return 0, 0, err
		}
		err = backfill(plan.New, found, "functional uses",
			func(e *schema.FunctionalUse) string { return e.ReportFuncUse },
			func(e *schema.FunctionalUse) int64 { return e.ID },
			func(e *schema.FunctionalUse, id int64) { e.ID = id },
		)
		if err != nil {
			return 0, 0, err
		}
	}

	links := make([][]any, 0, len(rows))
	for i, fus := range refs {
		linked := make(map[int64]bool, len(fus))
		for _, fu := range fus {
			if linked[fu.ID] {
				continue
			}
			linked[fu.ID] = true
			links = append(links, []any{chems[i].ID(), fu.ID})
		}
	}
	if len(links) == 0 {
		return len(plan.New), 0, nil
	}
	n, err := q.CopyFrom(ctx,
		pgx.Identifier{schema.RawChemFunctionalUse{}.TableName()},
		[]string{"raw_chem_id", "functional_use_id"},
		pgx.CopyFromRows(links),
	)
	if err != nil {
		return 0, 0, err
	}
	return len(plan.New), int(n), nil
}

// storeStats copies statistical values of literature monitoring records.
func storeStats(
	ctx context.Context,
	q db.Querier,
	rows []batch.ExtractionRow,
	chems []*chain.ChemicalRecord,
) (int, error) {
	var vals [][]any
	for i, r := range rows {
		for _, s := range r.Stats {
			vals = append(vals, []any{
				chems[i].ID(), s.Name, s.Value, s.ValueType, s.StatUnit,
			})
		}
	}
	if len(vals) == 0 {
		return 0, nil
	}
	n, err := q.CopyFrom(ctx,
		pgx.Identifier{schema.StatisticalValue{}.TableName()},
		[]string{"raw_chem_id", "name", "value", "value_type", "stat_unit"},
		pgx.CopyFromRows(vals),
	)
	return int(n), err
}
