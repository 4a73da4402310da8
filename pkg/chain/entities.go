package chain

import (
	"github.com/chemexpo/factodb/pkg/schema"
)

var productInfoColumns = []string{
	"title", "url", "brand_name", "size", "color", "item_id",
	"parent_item_id", "short_description", "long_description",
	"epa_reg_number", "thumb_image", "medium_image", "large_image",
	"model_number", "manufacturer", "image",
}

func productInfoValues(p schema.ProductInfo) []any {
	return []any{
		p.Title, p.URL, p.BrandName, p.Size, p.Color, p.ItemID,
		p.ParentItemID, p.ShortDescription, p.LongDescription,
		p.EPARegNumber, p.ThumbImage, p.MediumImage, p.LargeImage,
		p.ModelNumber, p.Manufacturer, p.Image,
	}
}

// ProductRecord is a canonical product, a chain of one table.
type ProductRecord struct {
	Product *schema.Product
}

func (r ProductRecord) ID() int64 { return r.Product.ID }
func (r ProductRecord) SetID(id int64) { r.Product.ID = id }
func (r ProductRecord) Parts() []Part {
	return []Part{{
		Table:   r.Product.TableName(),
		Key:     "id",
		Columns: append([]string{"upc"}, productInfoColumns...),
		Values: append([]any{r.Product.UPC},
			productInfoValues(r.Product.ProductInfo)...),
	}}
}

// DuplicateRecord is a diverted product.
type DuplicateRecord struct {
	Product *schema.DuplicateProduct
}

func (r DuplicateRecord) ID() int64 { return r.Product.ID }
func (r DuplicateRecord) SetID(id int64) { r.Product.ID = id }
func (r DuplicateRecord) Parts() []Part {
	return []Part{{
		Table:   r.Product.TableName(),
		Key:     "id",
		Columns: append([]string{"upc", "source_upc"}, productInfoColumns...),
		Values: append([]any{r.Product.UPC, r.Product.SourceUPC},
			productInfoValues(r.Product.ProductInfo)...),
	}}
}

// IdentityRecord is a new canonical chemical identity.
type IdentityRecord struct {
	Entity *schema.DSSToxLookup
}

func (r IdentityRecord) ID() int64 { return r.Entity.ID }
func (r IdentityRecord) SetID(id int64) { r.Entity.ID = id }
func (r IdentityRecord) Parts() []Part {
	return []Part{{
		Table:   r.Entity.TableName(),
		Key:     "id",
		Columns: []string{"sid", "true_chemname", "true_cas"},
		Values:  []any{r.Entity.SID, r.Entity.TrueChemName, r.Entity.TrueCAS},
	}}
}

// FunctionalUseRecord is a new reported functional use.
type FunctionalUseRecord struct {
	Entity *schema.FunctionalUse
}

func (r FunctionalUseRecord) ID() int64 { return r.Entity.ID }
func (r FunctionalUseRecord) SetID(id int64) { r.Entity.ID = id }
func (r FunctionalUseRecord) Parts() []Part {
	return []Part{{
		Table:   r.Entity.TableName(),
		Key:     "id",
		Columns: []string{"report_funcuse", "category_id", "extraction_script_id"},
		Values: []any{
			r.Entity.ReportFuncUse, r.Entity.CategoryID,
			r.Entity.ExtractionScriptID,
		},
	}}
}

// Records converts a slice of concrete records to the Record interface.
func Records[T Record](rs []T) []Record {
	res := make([]Record, len(rs))
	for i := range rs {
		res[i] = rs[i]
	}
	return res
}
