package batch

import "slices"

var ProductsHeader = []string{
	"data_document_id", "data_document_filename", "title", "upc", "url",
	"brand_name", "size", "color", "item_id", "parent_item_id",
	"short_description", "long_description", "epa_reg_number",
	"thumb_image", "medium_image", "large_image", "model_number",
	"manufacturer", "image_name",
}

var ChemicalsHeader = []string{
	"external_id", "rid", "sid", "true_chemical_name", "true_cas",
}

var DocumentsHeader = []string{
	"filename", "title", "document_type", "url", "organization", "subtitle",
	"epa_reg_number", "pmid",
}

var CleanCompHeader = []string{
	"id", "lower_wf_analysis", "central_wf_analysis", "upper_wf_analysis",
}

var FuncUsesHeader = []string{"id", "category_title"}

var PUCsHeader = []string{"product_id", "puc_id", "classification_method"}

var functionalUseHeader = []string{
	"data_document_id", "data_document_filename", "prod_name", "doc_date",
	"rev_num", "raw_category", "raw_cas", "raw_chem_name", "report_funcuse",
}

var compositionHeader = slices.Concat(functionalUseHeader, []string{
	"raw_min_comp", "raw_max_comp", "unit_type", "ingredient_rank",
	"raw_central_comp", "component",
})

var presenceHeader = slices.Concat(
	slices.DeleteFunc(slices.Clone(functionalUseHeader), func(s string) bool {
		return s == "prod_name" || s == "rev_num"
	}),
	[]string{
		"cat_code", "description_cpcat", "cpcat_code", "cpcat_sourcetype",
		"component", "chem_detected_flag",
	},
)

var literatureHeader = []string{
	"data_document_id", "data_document_filename", "doc_date", "study_type",
	"media", "qa_flag", "qa_who", "extraction_wa", "raw_chem_name", "raw_cas",
	"chem_detected_flag", "study_location", "sampling_date",
	"population_description", "population_gender", "population_age",
	"population_other", "sampling_method", "analytical_method", "medium",
	"harmonized_medium", "num_measure", "num_nondetect", "detect_freq",
	"detect_freq_type", "LOD", "LOQ", "statistical_values",
}

// Header returns the header contract of a batch kind. Extraction headers
// depend on the domain, other kinds ignore it. Unknown combinations give
// nil.
func Header(k Kind, d Domain) []string {
	switch k {
	case KindProducts:
		return ProductsHeader
	case KindChemicals:
		return ChemicalsHeader
	case KindDocuments:
		return DocumentsHeader
	case KindCleanComp:
		return CleanCompHeader
	case KindFuncUses:
		return FuncUsesHeader
	case KindPUCs:
		return PUCsHeader
	case KindExtraction:
		return d.Spec().Header
	}
	return nil
}
