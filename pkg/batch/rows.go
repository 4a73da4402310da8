package batch

import (
	"time"

	"github.com/chemexpo/factodb/pkg/schema"
)

// ProductRow is a validated row of a products batch.
type ProductRow struct {
	Row        int
	DocumentID int64
	Filename   string

	// UPC is the declared key. Empty keys are replaced by a stub surrogate
	// before storage.
	UPC       string
	ImageName string
	Info      schema.ProductInfo
}

// ChemicalRow is a validated row of a chemical identity correction batch.
type ChemicalRow struct {
	Row          int
	ExternalID   int64
	RID          string
	SID          string
	TrueChemName string
	TrueCAS      string
}

// DocumentRow is a validated row of a document registration batch.
type DocumentRow struct {
	Row            int
	Filename       string
	Title          string
	DocumentTypeID *int64
	URL            string
	Organization   string
	Subtitle       string
	EPARegNumber   string
	PMID           string
}

// ExtractionRow is a validated row of an extraction batch.
type ExtractionRow struct {
	Row        int
	DocumentID int64
	Filename   string

	// document level
	ProdName    string
	DocDate     string
	RevNum      string
	RawCategory string
	CPCat       *CPCatFields
	LMDoc       *LMDocFields

	// HasChem is false for rows that carry only document data.
	HasChem          bool
	RawCAS           string
	RawChemName      string
	Component        string
	ChemDetectedFlag *bool
	FuncUses         []string
	Comp             *CompFields
	LMRec            *LMRecFields
	Stats            []StatValue
}

// OneToOne returns the value of the domain's one-to-one field.
func (r ExtractionRow) OneToOne(field string) string {
	switch field {
	case "prod_name":
		return r.ProdName
	case "cat_code":
		if r.CPCat != nil {
			return r.CPCat.CatCode
		}
	}
	return ""
}

type CPCatFields struct {
	CatCode          string
	DescriptionCPCat string
	CPCatCode        string
	CPCatSourcetype  string
}

type LMDocFields struct {
	StudyType    string
	Media        string
	QAFlag       string
	QAWho        string
	ExtractionWA string
}

type CompFields struct {
	RawMinComp     string
	RawMaxComp     string
	RawCentralComp string
	UnitTypeID     *int64
	IngredientRank *int
}

type LMRecFields struct {
	StudyLocation         string
	SamplingDate          *time.Time
	PopulationDescription string
	PopulationGender      string
	PopulationAge         string
	PopulationOther       string
	SamplingMethod        string
	AnalyticalMethod      string
	Medium                string
	HarmonizedMediumID    *int64
	NumMeasure            *int
	NumNondetect          *int
	DetectFreq            *float64
	DetectFreqType        string
	LOD                   *float64
	LOQ                   *float64
}

// StatValue is one statistic of a literature monitoring record.
type StatValue struct {
	Name      string
	Value     float64
	ValueType string
	StatUnit  string
}

// StatValueTypes lists accepted statistic value types.
var StatValueTypes = map[string]string{
	"M": "mean",
	"X": "maximum",
	"N": "minimum",
	"D": "median",
	"S": "standard deviation",
	"P": "percentile",
}

// CleanCompRow is a validated row of a cleaned composition batch.
type CleanCompRow struct {
	Row     int
	ID      int64
	Lower   *float64
	Central *float64
	Upper   *float64
}

// FuncUseRow is a validated row of a functional use category batch.
type FuncUseRow struct {
	Row        int
	ID         int64
	CategoryID int64
}

// PUCRow is a validated row of a classification import batch.
type PUCRow struct {
	Row       int
	ProductID int64
	PUCID     int64
	Method    string
}
