package validate

import (
	"context"
	"strings"
	"unicode"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/schema"
)

// Products validates a product import batch together with its image
// attachments.
func (v *Validator) Products(
	ctx context.Context,
	tbl *batch.Table,
	bc batch.Context,
) ([]batch.ProductRow, error) {
	rep := v.prologue(batch.KindProducts, tbl, batch.ProductsHeader)
	if rep.Fatal {
		return nil, rep
	}
	v.checkImages(rep, bc.Images)

	res := make([]batch.ProductRow, 0, tbl.Len())
	tbl.Each(func(r batch.Row) {
		c := cells{rep: rep, row: r}
		pr := batch.ProductRow{
			Row:        r.Num,
			DocumentID: c.id("data_document_id", true),
			Filename:   c.str("data_document_filename", 255, false),
			UPC:        c.str("upc", 60, false),
			ImageName:  c.str("image_name", 255, false),
		}
		pr.Info = schema.ProductInfo{
			Title:            c.str("title", 255, true),
			URL:              c.str("url", 500, false),
			BrandName:        c.str("brand_name", 200, false),
			Size:             c.str("size", 100, false),
			Color:            c.str("color", 100, false),
			ItemID:           c.str("item_id", 50, false),
			ParentItemID:     c.str("parent_item_id", 50, false),
			ShortDescription: c.str("short_description", 0, false),
			LongDescription:  c.str("long_description", 0, false),
			EPARegNumber:     c.str("epa_reg_number", 25, false),
			ThumbImage:       c.str("thumb_image", 500, false),
			MediumImage:      c.str("medium_image", 500, false),
			LargeImage:       c.str("large_image", 500, false),
			ModelNumber:      c.str("model_number", 200, false),
			Manufacturer:     c.str("manufacturer", 250, false),
			Image:            pr.ImageName,
		}
		res = append(res, pr)
	})

	names := make(map[string]bool, len(bc.Images))
	for _, a := range bc.Images {
		names[a.Name] = true
	}
	var unmatched []int64
	var unmatchedRows []int
	for _, pr := range res {
		if pr.ImageName != "" && !names[pr.ImageName] {
			unmatched = append(unmatched, pr.DocumentID)
			unmatchedRows = append(unmatchedRows, pr.Row)
		}
	}
	if len(unmatched) > 0 {
		rep.AddRows(unmatchedRows, "image_name",
			"The following record images could not be matched.  "+
				"Please correct or remove their image_names and retry "+
				"the upload: %s", joinIDs(unmatched))
	}

	if err := v.checkDocuments(ctx, rep, bc.GroupID, docIDs(res)); err != nil {
		return nil, err
	}
	if err := rep.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func docIDs(rows []batch.ProductRow) []int64 {
	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = rows[i].DocumentID
	}
	return ids
}

// checkDocuments reports document ids that are not part of the group.
func (v *Validator) checkDocuments(
	ctx context.Context,
	rep *batch.Report,
	groupID int64,
	ids []int64,
) error {
	ids = uniq(ids)
	if len(ids) == 0 {
		return nil
	}
	found, err := v.lookup.ExistingDocuments(ctx, groupID, ids)
	if err != nil {
		return err
	}
	if bad := missing(ids, found); len(bad) > 0 {
		rep.AddBatch("data_document_id",
			`The following "data_document_id"s were not found for this `+
				`data group: %s`, joinIDs(bad))
	}
	return nil
}

func (v *Validator) checkImages(rep *batch.Report, images []batch.Attachment) {
	const mb = 1_000_000
	if v.cfg.ImagesMaxCount > 0 && len(images) > v.cfg.ImagesMaxCount {
		rep.AddBatch("images",
			"The image directory has too many files.  Please reduce the "+
				"number of document upload at one time to < %d.",
			v.cfg.ImagesMaxCount)
	}

	var total int64
	var oversize []string
	for _, a := range images {
		total += a.Size
		if v.cfg.ImageMaxBytes > 0 && a.Size > int64(v.cfg.ImageMaxBytes) {
			oversize = append(oversize, a.Name)
		}
	}
	if v.cfg.ImagesMaxTotalBytes > 0 && total > int64(v.cfg.ImagesMaxTotalBytes) {
		rep.AddBatch("images",
			"The image directory is too large.  Please reduce the size of "+
				"the directory to < %d MB", v.cfg.ImagesMaxTotalBytes/mb)
	}
	if len(oversize) > 0 {
		rep.AddBatch("images",
			"The following images are too large.  Please reduce their "+
				"sizes to < %d MB: %s",
			v.cfg.ImageMaxBytes/mb, strings.Join(oversize, ", "))
	}
}

// Chemicals validates a chemical identity correction batch.
func (v *Validator) Chemicals(
	ctx context.Context,
	tbl *batch.Table,
) ([]batch.ChemicalRow, error) {
	rep := v.prologue(batch.KindChemicals, tbl, batch.ChemicalsHeader)
	if rep.Fatal {
		return nil, rep
	}

	res := make([]batch.ChemicalRow, 0, tbl.Len())
	tbl.Each(func(r batch.Row) {
		c := cells{rep: rep, row: r}
		cr := batch.ChemicalRow{
			Row:          r.Num,
			ExternalID:   c.id("external_id", true),
			RID:          c.str("rid", 50, false),
			SID:          c.str("sid", 50, false),
			TrueChemName: c.str("true_chemical_name", 500, false),
			TrueCAS:      c.str("true_cas", 50, false),
		}
		if cr.SID != "" {
			checkSID(c, cr.SID)
			if cr.TrueChemName == "" {
				c.add("true_chemical_name", msgRequired)
			}
			if cr.TrueCAS == "" {
				c.add("true_cas", msgRequired)
			}
		}
		res = append(res, cr)
	})

	ids := make([]int64, len(res))
	for i := range res {
		ids[i] = res[i].ExternalID
	}
	ids = uniq(ids)
	if len(ids) > 0 {
		found, err := v.lookup.ExistingRawChems(ctx, ids)
		if err != nil {
			return nil, err
		}
		if bad := missing(ids, found); len(bad) > 0 {
			rep.AddBatch("external_id",
				`The following "external_id"s were not found: %s`,
				joinIDs(bad))
		}
	}

	if err := rep.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func checkSID(c cells, sid string) {
	if !strings.HasPrefix(sid, "DTXSID") {
		c.add("sid", `%s does not begin with "DTXSID"`, sid)
	}
	if strings.ContainsFunc(sid, unicode.IsSpace) {
		c.add("sid", "%s cannot have a blank character", sid)
	}
}
