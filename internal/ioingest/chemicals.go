package ioingest

import (
	"context"
	"slices"

	"github.com/chemexpo/factodb/internal/iolookup"
	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/chain"
	"github.com/chemexpo/factodb/pkg/db"
	"github.com/chemexpo/factodb/pkg/resolve"
	"github.com/chemexpo/factodb/pkg/schema"
)

func newIdentityResolver(
	stored []*schema.DSSToxLookup,
) *resolve.Resolver[string, schema.DSSToxLookup] {
	return resolve.New(stored,
		func(e *schema.DSSToxLookup) string { return e.SID },
		func(s, p *schema.DSSToxLookup) bool {
			return s.TrueChemName == p.TrueChemName && s.TrueCAS == p.TrueCAS
		},
		func(s, p *schema.DSSToxLookup) {
			s.TrueChemName = p.TrueChemName
			s.TrueCAS = p.TrueCAS
		},
	)
}

const identityUpdateSet = `true_chemname = v.true_chemname,
       true_cas = v.true_cas,
       updated_at = now()`

const rawChemUpdateSet = `rid = v.rid,
       dsstox_id = v.dsstox_id,
       provisional = false,
       updated_at = now()`

// chemicals stores a chemical curation batch: it resolves chemical
// identities by sid and links raw chemical records to them. Records
// without a sid lose their link.
func (ig *Ingester) chemicals(
	ctx context.Context,
	q db.Querier,
	rows []batch.ChemicalRow,
	sum *batch.Summary,
) error {
	lk := ig.lookup(q)
	var sids []string
	for _, r := range rows {
		if r.SID != "" && !slices.Contains(sids, r.SID) {
			sids = append(sids, r.SID)
		}
	}
	stored, err := lk.DSSToxBySID(ctx, sids)
	if err != nil {
		return err
	}

	res := newIdentityResolver(stored)
	refs := make([]*schema.DSSToxLookup, len(rows))
	for i, r := range rows {
		proposed := &schema.DSSToxLookup{
			SID:          r.SID,
			TrueChemName: r.TrueChemName,
			TrueCAS:      r.TrueCAS,
		}
		refs[i] = res.Resolve(proposed, r.SID != "").Entity
	}

	plan := res.Plan()
	if err = ig.storeIdentities(ctx, q, lk, res, plan); err != nil {
		return err
	}

	vals := make([][]any, len(rows))
	for i, r := range rows {
		var dsstoxID *int64
		if refs[i] != nil {
			id := refs[i].ID
			dsstoxID = &id
		}
		vals[i] = []any{r.ExternalID, r.RID, dsstoxID}
	}
	sql := updateFromSQL("raw_chems", "id",
		[]string{"id", "rid", "dsstox_id"},
		[]string{"bigint", "text", "bigint"},
		rawChemUpdateSet, len(vals), 0)
	if _, err = q.Exec(ctx, sql, flatten(vals)...); err != nil {
		return err
	}

	sum.Committed = len(rows)
	sum.Created = len(plan.New)
	sum.Updated = len(plan.Update)
	for _, e := range refs {
		if e != nil {
			sum.Associations++
		}
	}
	return nil
}

// storeIdentities writes a resolution plan and back-fills identities of
// new entities from the database.
func (ig *Ingester) storeIdentities(
	ctx context.Context,
	q db.Querier,
	lk *iolookup.Lookup,
	res *resolve.Resolver[string, schema.DSSToxLookup],
	plan resolve.Plan[schema.DSSToxLookup],
) error {
	recs := make([]chain.IdentityRecord, len(plan.New))
	for i, e := range plan.New {
		recs[i] = chain.IdentityRecord{Entity: e}
	}
	if err := ig.writer.Write(ctx, q, chain.Records(recs)); err != nil {
		return err
	}

	if len(plan.Update) > 0 {
		vals := make([][]any, len(plan.Update))
		for i, e := range plan.Update {
			vals[i] = []any{e.ID, e.TrueChemName, e.TrueCAS}
		}
		sql := updateFromSQL("dsstox_lookups", "id",
			[]string{"id", "true_chemname", "true_cas"},
			[]string{"bigint", "text", "text"},
			identityUpdateSet, len(vals), 0)
		if _, err := q.Exec(ctx, sql, flatten(vals)...); err != nil {
			return err
		}
	}

	if len(plan.New) == 0 {
		return nil
	}
	keys := resolve.Keys(res, plan.New)
	found, err := lk.DSSToxBySID(ctx, keys)
	if err != nil {
		return err
	}
	return backfill(plan.New, found, "chemical identities",
		func(e *schema.DSSToxLookup) string { return e.SID },
		func(e *schema.DSSToxLookup) int64 { return e.ID },
		func(e *schema.DSSToxLookup, id int64) { e.ID = id },
	)
}

// backfill copies identities of refetched entities into staged ones.
func backfill[E any](
	staged, found []*E,
	entity string,
	key func(*E) string,
	getID func(*E) int64,
	setID func(*E, int64),
) error {
	ids := make(map[string]int64, len(found))
	for _, e := range found {
		ids[key(e)] = getID(e)
	}
	var missing []string
	for _, e := range staged {
		id, ok := ids[key(e)]
		if !ok {
			missing = append(missing, key(e))
			continue
		}
		setID(e, id)
	}
	if len(missing) > 0 {
		return ResolveError(entity, missing)
	}
	return nil
}
