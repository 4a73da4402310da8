package chain

import (
	"github.com/chemexpo/factodb/pkg/schema"
)

// DocSubtype is the payload of a document subtype table. Implementations
// are CPCatDoc and LMDoc.
type DocSubtype interface {
	docPart(id int64) Part
}

// CPCatDoc extends a document of a chemical presence list.
type CPCatDoc struct {
	schema.ExtractedCPCat
}

func (d *CPCatDoc) docPart(id int64) Part {
	d.ExtractedTextID = id
	return Part{
		Table: d.TableName(),
		Key:   "extracted_text_id",
		Columns: []string{
			"cat_code", "description_cpcat", "cpcat_code", "cpcat_sourcetype",
		},
		Values: []any{
			d.CatCode, d.DescriptionCPCat, d.CPCatCode, d.CPCatSourcetype,
		},
	}
}

// LMDoc extends a literature monitoring document.
type LMDoc struct {
	schema.ExtractedLMDoc
}

func (d *LMDoc) docPart(id int64) Part {
	d.ExtractedTextID = id
	return Part{
		Table: d.TableName(),
		Key:   "extracted_text_id",
		Columns: []string{
			"study_type", "media", "qa_flag", "qa_who", "extraction_wa",
		},
		Values: []any{d.StudyType, d.Media, d.QAFlag, d.QAWho, d.ExtractionWA},
	}
}

// DocumentRecord is an extracted text with an optional subtype. Its
// identity is the id of the data document and is always supplied.
type DocumentRecord struct {
	Text schema.ExtractedText
	Sub  DocSubtype
}

func (r *DocumentRecord) ID() int64 { return r.Text.ID }

func (r *DocumentRecord) SetID(id int64) {
	r.Text.ID = id
	if r.Sub != nil {
		r.Sub.docPart(id)
	}
}

func (r *DocumentRecord) Parts() []Part {
	res := []Part{{
		Table: r.Text.TableName(),
		Key:   "id",
		Columns: []string{
			"prod_name", "doc_date", "rev_num", "extraction_script_id",
		},
		Values: []any{
			r.Text.ProdName, r.Text.DocDate, r.Text.RevNum,
			r.Text.ExtractionScriptID,
		},
	}}
	if r.Sub != nil {
		res = append(res, r.Sub.docPart(r.Text.ID))
	}
	return res
}

// ChemSubtype is the payload of a chemical subtype table. Implementations
// are CompositionChem, FunctionalUseChem, ListPresenceChem and LMRecChem.
type ChemSubtype interface {
	chemPart(id int64) Part
}

// CompositionChem extends a chemical of a composition document.
type CompositionChem struct {
	schema.ExtractedComposition
}

func (c *CompositionChem) chemPart(id int64) Part {
	c.RawChemID = id
	return Part{
		Table: c.TableName(),
		Key:   "raw_chem_id",
		Columns: []string{
			"raw_min_comp", "raw_max_comp", "raw_central_comp", "unit_type_id",
			"ingredient_rank",
		},
		Values: []any{
			c.RawMinComp, c.RawMaxComp, c.RawCentralComp, c.UnitTypeID,
			c.IngredientRank,
		},
	}
}

// FunctionalUseChem extends a chemical of a functional use document.
type FunctionalUseChem struct {
	schema.ExtractedFunctionalUse
}

func (c *FunctionalUseChem) chemPart(id int64) Part {
	c.RawChemID = id
	return Part{Table: c.TableName(), Key: "raw_chem_id"}
}

// ListPresenceChem extends a chemical of a chemical presence list.
type ListPresenceChem struct {
	schema.ExtractedListPresence
}

func (c *ListPresenceChem) chemPart(id int64) Part {
	c.RawChemID = id
	return Part{Table: c.TableName(), Key: "raw_chem_id"}
}

// LMRecChem extends a chemical of a literature monitoring document.
type LMRecChem struct {
	schema.ExtractedLMRec
}

func (c *LMRecChem) chemPart(id int64) Part {
	c.RawChemID = id
	return Part{
		Table: c.TableName(),
		Key:   "raw_chem_id",
		Columns: []string{
			"study_location", "sampling_date", "population_description",
			"population_gender", "population_age", "population_other",
			"sampling_method", "analytical_method", "medium",
			"harmonized_medium_id", "num_measure", "num_nondetect",
			"detect_freq", "detect_freq_type", "lod", "loq",
		},
		Values: []any{
			c.StudyLocation, c.SamplingDate, c.PopulationDescription,
			c.PopulationGender, c.PopulationAge, c.PopulationOther,
			c.SamplingMethod, c.AnalyticalMethod, c.Medium,
			c.HarmonizedMediumID, c.NumMeasure, c.NumNondetect,
			c.DetectFreq, c.DetectFreqType, c.LOD, c.LOQ,
		},
	}
}

// ChemicalRecord is a raw chemical with its subtype. Its identity is
// generated by the database.
type ChemicalRecord struct {
	Chem schema.RawChem
	Sub  ChemSubtype
}

func (r *ChemicalRecord) ID() int64 { return r.Chem.ID }

func (r *ChemicalRecord) SetID(id int64) {
	r.Chem.ID = id
	if r.Sub != nil {
		r.Sub.chemPart(id)
	}
}

func (r *ChemicalRecord) Parts() []Part {
	res := []Part{{
		Table: r.Chem.TableName(),
		Key:   "id",
		Columns: []string{
			"extracted_text_id", "raw_cas", "raw_chem_name", "component",
			"chem_detected_flag", "rid", "dsstox_id", "provisional",
		},
		Values: []any{
			r.Chem.ExtractedTextID, r.Chem.RawCAS, r.Chem.RawChemName,
			r.Chem.Component, r.Chem.ChemDetectedFlag, r.Chem.RID,
			r.Chem.DSSToxID, r.Chem.Provisional,
		},
	}}
	if r.Sub != nil {
		res = append(res, r.Sub.chemPart(r.Chem.ID))
	}
	return res
}
