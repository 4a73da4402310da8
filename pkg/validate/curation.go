package validate

import (
	"context"
	"slices"

	"github.com/chemexpo/factodb/pkg/batch"
)

// CleanComp validates cleaned weight fraction values for compositions of
// a data group.
func (v *Validator) CleanComp(
	ctx context.Context,
	tbl *batch.Table,
	bc batch.Context,
) ([]batch.CleanCompRow, error) {
	rep := v.prologue(batch.KindCleanComp, tbl, batch.CleanCompHeader)
	if rep.Fatal {
		return nil, rep
	}

	err := v.checkScript(ctx, rep, bc.ScriptID, ScriptDataCleaning,
		"script_id", "Invalid script selection.")
	if err != nil {
		return nil, err
	}
	ok, err := v.lookup.WeightFractionTypeExists(ctx, bc.WFTypeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		rep.AddBatch("weight_fraction_type_id",
			"Invalid weight fraction type selection.")
	}

	res := make([]batch.CleanCompRow, 0, tbl.Len())
	tbl.Each(func(r batch.Row) {
		c := cells{rep: rep, row: r}
		cr := batch.CleanCompRow{
			Row:     r.Num,
			ID:      c.id("id", true),
			Lower:   c.optFraction("lower_wf_analysis"),
			Central: c.optFraction("central_wf_analysis"),
			Upper:   c.optFraction("upper_wf_analysis"),
		}
		lower, central, upper := cr.Lower != nil, cr.Central != nil, cr.Upper != nil
		if !lower && !central && !upper {
			c.add("", "No weight fraction data provided.")
		}
		checkRange(c, lower, central, upper, "weight fraction",
			"lower_wf_analysis", "central_wf_analysis", "upper_wf_analysis")
		res = append(res, cr)
	})

	ids := make([]int64, len(res))
	for i := range res {
		ids[i] = res[i].ID
	}
	if ids = uniq(ids); len(ids) > 0 {
		found, err := v.lookup.ExistingCompositions(ctx, bc.GroupID, ids)
		if err != nil {
			return nil, err
		}
		if bad := missing(ids, found); len(bad) > 0 {
			rep.AddBatch("id",
				"The following IDs do not exist in ExtractedCompositions for "+
					"this data group: %s", joinIDs(bad))
		}
	}

	if err := rep.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// FuncUses validates category assignments of functional uses.
func (v *Validator) FuncUses(
	ctx context.Context,
	tbl *batch.Table,
	bc batch.Context,
) ([]batch.FuncUseRow, error) {
	rep := v.prologue(batch.KindFuncUses, tbl, batch.FuncUsesHeader)
	if rep.Fatal {
		return nil, rep
	}

	err := v.checkScript(ctx, rep, bc.ScriptID, ScriptFunctionalUse,
		"script_id", "Invalid script selection.")
	if err != nil {
		return nil, err
	}

	res := make([]batch.FuncUseRow, 0, tbl.Len())
	titles := make([]string, 0, tbl.Len())
	tbl.Each(func(r batch.Row) {
		c := cells{rep: rep, row: r}
		res = append(res, batch.FuncUseRow{Row: r.Num, ID: c.id("id", true)})
		titles = append(titles, c.str("category_title", 255, true))
	})

	ids := make([]int64, len(res))
	for i := range res {
		ids[i] = res[i].ID
	}
	if ids = uniq(ids); len(ids) > 0 {
		found, err := v.lookup.ExistingFunctionalUses(ctx, ids)
		if err != nil {
			return nil, err
		}
		if bad := missing(ids, found); len(bad) > 0 {
			rep.AddBatch("id",
				`The following functional use "id"s were not found: %s`,
				joinIDs(bad))
		}
	}

	if uniqTitles := uniqStrings(titles); len(uniqTitles) > 0 {
		cats, err := v.lookup.FunctionalUseCategories(ctx, uniqTitles)
		if err != nil {
			return nil, err
		}
		for i, t := range titles {
			if t == "" {
				continue
			}
			if id, ok := cats[t]; ok {
				res[i].CategoryID = id
				continue
			}
			rep.Add(res[i].Row, "category_title",
				"'%s' is not a valid category title", t)
		}
	}

	if err := rep.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// PUCs validates a batch of product classification assignments.
func (v *Validator) PUCs(
	ctx context.Context,
	tbl *batch.Table,
) ([]batch.PUCRow, error) {
	rep := v.prologue(batch.KindPUCs, tbl, batch.PUCsHeader)
	if rep.Fatal {
		return nil, rep
	}

	ranks, err := v.lookup.MethodRanks(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(ranks))
	for k := range ranks {
		codes = append(codes, k)
	}
	slices.Sort(codes)

	res := make([]batch.PUCRow, 0, tbl.Len())
	tbl.Each(func(r batch.Row) {
		c := cells{rep: rep, row: r}
		pr := batch.PUCRow{
			Row:       r.Num,
			ProductID: c.id("product_id", true),
			PUCID:     c.id("puc_id", true),
			Method:    c.str("classification_method", 3, true),
		}
		if pr.Method != "" {
			c.choice("classification_method", codes...)
		}
		res = append(res, pr)
	})

	var prods, pucs []int64
	for _, r := range res {
		prods = append(prods, r.ProductID)
		pucs = append(pucs, r.PUCID)
	}
	if prods = uniq(prods); len(prods) > 0 {
		found, err := v.lookup.ExistingProducts(ctx, prods)
		if err != nil {
			return nil, err
		}
		if bad := missing(prods, found); len(bad) > 0 {
			rep.AddBatch("product_id",
				`The following "product_id"s were not found: %s`, joinIDs(bad))
		}
	}
	if pucs = uniq(pucs); len(pucs) > 0 {
		found, err := v.lookup.ExistingPUCs(ctx, pucs)
		if err != nil {
			return nil, err
		}
		if bad := missing(pucs, found); len(bad) > 0 {
			rep.AddBatch("puc_id",
				`The following "puc_id"s were not found: %s`, joinIDs(bad))
		}
	}

	if err := rep.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
