package ioingest

import (
	"context"
	"fmt"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/db"
)

const cleanCompSet = `lower_wf_analysis = v.lower_wf_analysis,
       central_wf_analysis = v.central_wf_analysis,
       upper_wf_analysis = v.upper_wf_analysis,
       weight_fraction_type_id = $1,
       script_id = $2,
       updated_at = now()`

// cleanComp stores cleaned weight fractions of existing compositions.
func cleanComp(
	ctx context.Context,
	q db.Querier,
	bc batch.Context,
	rows []batch.CleanCompRow,
	sum *batch.Summary,
) error {
	vals := make([][]any, len(rows))
	for i, r := range rows {
		vals[i] = []any{r.ID, r.Lower, r.Central, r.Upper}
	}
	sql := updateFromSQL("extracted_compositions", "raw_chem_id",
		[]string{"id", "lower_wf_analysis", "central_wf_analysis", "upper_wf_analysis"},
		[]string{"bigint", "numeric", "numeric", "numeric"},
		cleanCompSet, len(vals), 2)
	args := append([]any{bc.WFTypeID, bc.ScriptID}, flatten(vals)...)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	sum.Committed = len(rows)
	sum.Updated = int(tag.RowsAffected())
	return nil
}

const funcUseSet = `category_id = v.category_id,
       extraction_script_id = $1,
       updated_at = now()`

// funcUses assigns categories to reported functional uses.
func funcUses(
	ctx context.Context,
	q db.Querier,
	bc batch.Context,
	rows []batch.FuncUseRow,
	sum *batch.Summary,
) error {
	vals := make([][]any, len(rows))
	for i, r := range rows {
		vals[i] = []any{r.ID, r.CategoryID}
	}
	sql := updateFromSQL("functional_uses", "id",
		[]string{"id", "category_id"},
		[]string{"bigint", "bigint"},
		funcUseSet, len(vals), 1)
	args := append([]any{bc.ScriptID}, flatten(vals)...)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	sum.Committed = len(rows)
	sum.Updated = int(tag.RowsAffected())
	if sum.Updated < len(rows) {
		sum.Warnings = append(sum.Warnings, fmt.Sprintf(
			"%d row(s) repeat a functional use of the batch", len(rows)-sum.Updated))
	}
	return nil
}
