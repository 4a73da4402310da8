package validate

import (
	"context"
	"slices"
	"strings"

	"github.com/chemexpo/factodb/pkg/batch"
)

// Documents validates a document registration batch for a data group.
func (v *Validator) Documents(
	ctx context.Context,
	tbl *batch.Table,
	bc batch.Context,
) ([]batch.DocumentRow, error) {
	rep := v.prologue(batch.KindDocuments, tbl, batch.DocumentsHeader)
	if rep.Fatal {
		return nil, rep
	}

	types, err := v.lookup.DocumentTypes(ctx, bc.GroupTypeCode)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	res := make([]batch.DocumentRow, 0, tbl.Len())
	tbl.Each(func(r batch.Row) {
		c := cells{rep: rep, row: r}
		dr := batch.DocumentRow{
			Row:          r.Num,
			Filename:     c.str("filename", 255, true),
			Title:        c.str("title", 255, true),
			URL:          c.str("url", 275, false),
			Organization: c.str("organization", 255, false),
			Subtitle:     c.str("subtitle", 250, false),
			EPARegNumber: c.str("epa_reg_number", 25, false),
			PMID:         c.str("pmid", 20, false),
		}
		if code := c.str("document_type", 2, true); code != "" {
			if id, ok := types[code]; ok {
				dr.DocumentTypeID = &id
			} else {
				c.add("document_type",
					"Document Type %s is not compatible with the %s Group Type.",
					code, bc.GroupTypeTitle)
			}
		}
		if dr.Filename != "" {
			if seen[dr.Filename] {
				c.add("filename",
					`Duplicate "filename" values for "%s" are not allowed.`,
					dr.Filename)
			}
			seen[dr.Filename] = true
		}
		res = append(res, dr)
	})

	names := make([]string, len(res))
	for i := range res {
		names[i] = res[i].Filename
	}
	names = uniqStrings(names)
	if len(names) > 0 {
		found, err := v.lookup.ExistingFilenames(ctx, bc.GroupID, names)
		if err != nil {
			return nil, err
		}
		var dups []string
		for _, n := range names {
			if found[n] {
				dups = append(dups, n)
			}
		}
		if len(dups) > 0 {
			slices.Sort(dups)
			rep.AddBatch("filename",
				`The following "filename"s are already registered in this `+
					`data group: %s`, strings.Join(dups, ", "))
		}
	}

	if err := rep.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
