// Package schema provides database schema models for factodb.
// The models are the single source of the PostgreSQL schema and are
// applied with GORM AutoMigrate.
package schema

import (
	"time"
)

// GroupType is a kind of data group, for example composition or
// functional use. Its code selects the extraction domain of a batch.
type GroupType struct {
	Code  string `gorm:"column:code;primaryKey;size:2"`
	Title string `gorm:"column:title;size:50;not null"`
}

func (GroupType) TableName() string { return "group_types" }

// DocumentType classifies source documents.
type DocumentType struct {
	ID    int64  `gorm:"column:id;primaryKey"`
	Code  string `gorm:"column:code;size:2;uniqueIndex;not null"`
	Title string `gorm:"column:title;size:50;not null"`
}

func (DocumentType) TableName() string { return "document_types" }

// DocumentTypeGroupType marks a document type as compatible with a group
// type.
type DocumentTypeGroupType struct {
	DocumentTypeID int64  `gorm:"column:document_type_id;primaryKey;autoIncrement:false"`
	GroupTypeCode  string `gorm:"column:group_type_code;primaryKey;size:2"`
}

func (DocumentTypeGroupType) TableName() string { return "document_type_group_types" }

// DataGroup is a set of documents from one source processed together.
type DataGroup struct {
	ID            int64  `gorm:"column:id;primaryKey"`
	Name          string `gorm:"column:name;size:50;not null"`
	GroupTypeCode string `gorm:"column:group_type_code;size:2;not null;index"`

	// MultipleFuncUse allows more than one reported functional use per
	// chemical record.
	MultipleFuncUse bool      `gorm:"column:multiple_funcuse;not null;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (DataGroup) TableName() string { return "data_groups" }

// Script is an extraction, cleaning or functional use script.
// ScriptType is 'EX', 'DC' or 'FU'.
type Script struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	Title      string `gorm:"column:title;size:50;not null"`
	ScriptType string `gorm:"column:script_type;size:2;not null;index"`
	QABegun    bool   `gorm:"column:qa_begun;not null;default:false"`
}

func (Script) TableName() string { return "scripts" }

type UnitType struct {
	ID    int64  `gorm:"column:id;primaryKey"`
	Title string `gorm:"column:title;size:50;uniqueIndex;not null"`
}

func (UnitType) TableName() string { return "unit_types" }

type WeightFractionType struct {
	ID    int64  `gorm:"column:id;primaryKey"`
	Title string `gorm:"column:title;size:50;uniqueIndex;not null"`
}

func (WeightFractionType) TableName() string { return "weight_fraction_types" }

type HarmonizedMedium struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name;size:200;uniqueIndex;not null"`
	Description string `gorm:"column:description;type:text"`
}

func (HarmonizedMedium) TableName() string { return "harmonized_media" }

// DataDocument is a registered source document of a data group.
type DataDocument struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	DataGroupID    int64      `gorm:"column:data_group_id;not null;uniqueIndex:idx_data_documents_group_filename"`
	Filename       string     `gorm:"column:filename;size:255;not null;uniqueIndex:idx_data_documents_group_filename"`
	Title          string     `gorm:"column:title;size:255;not null"`
	DocumentTypeID *int64     `gorm:"column:document_type_id"`
	URL            string     `gorm:"column:url;size:275"`
	Organization   string     `gorm:"column:organization;size:255"`
	Subtitle       string     `gorm:"column:subtitle;size:250"`
	EPARegNumber   string     `gorm:"column:epa_reg_number;size:25"`
	PMID           string     `gorm:"column:pmid;size:20"`
	RawCategory    string     `gorm:"column:raw_category;size:1000"`
	CreatedAt      time.Time  `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt      *time.Time `gorm:"column:updated_at"`
}

func (DataDocument) TableName() string { return "data_documents" }

// DSSToxLookup is the canonical chemical identity addressed by its
// DSSTox substance identifier.
type DSSToxLookup struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	SID          string     `gorm:"column:sid;size:50;uniqueIndex;not null"`
	TrueChemName string     `gorm:"column:true_chemname;size:500"`
	TrueCAS      string     `gorm:"column:true_cas;size:50"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt    *time.Time `gorm:"column:updated_at"`
}

func (DSSToxLookup) TableName() string { return "dsstox_lookups" }

type FunctionalUseCategory struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Title       string `gorm:"column:title;size:255;uniqueIndex;not null"`
	Description string `gorm:"column:description;type:text"`
}

func (FunctionalUseCategory) TableName() string { return "functional_use_categories" }

// FunctionalUse is the canonical reported functional use term. Terms are
// stored trimmed and lower-cased.
type FunctionalUse struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	ReportFuncUse      string     `gorm:"column:report_funcuse;size:255;uniqueIndex;not null"`
	CategoryID         *int64     `gorm:"column:category_id;index"`
	ExtractionScriptID *int64     `gorm:"column:extraction_script_id"`
	CreatedAt          time.Time  `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt          *time.Time `gorm:"column:updated_at"`
}

func (FunctionalUse) TableName() string { return "functional_uses" }

// ExtractedText is the root of the document chain. Its identity is the
// identity of the data document.
type ExtractedText struct {
	ID                 int64      `gorm:"column:id;primaryKey;autoIncrement:false"`
	ProdName           string     `gorm:"column:prod_name;size:500"`
	DocDate            string     `gorm:"column:doc_date;size:25"`
	RevNum             string     `gorm:"column:rev_num;size:50"`
	ExtractionScriptID int64      `gorm:"column:extraction_script_id;not null"`
	QAChecked          bool       `gorm:"column:qa_checked;not null;default:false"`
	CreatedAt          time.Time  `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt          *time.Time `gorm:"column:updated_at"`
}

func (ExtractedText) TableName() string { return "extracted_texts" }

// ExtractedCPCat extends ExtractedText for chemical presence lists.
type ExtractedCPCat struct {
	ExtractedTextID  int64  `gorm:"column:extracted_text_id;primaryKey;autoIncrement:false"`
	CatCode          string `gorm:"column:cat_code;size:100"`
	DescriptionCPCat string `gorm:"column:description_cpcat;size:200"`
	CPCatCode        string `gorm:"column:cpcat_code;size:50"`
	CPCatSourcetype  string `gorm:"column:cpcat_sourcetype;size:50"`
}

func (ExtractedCPCat) TableName() string { return "extracted_cpcats" }

// ExtractedLMDoc extends ExtractedText for literature monitoring.
type ExtractedLMDoc struct {
	ExtractedTextID int64  `gorm:"column:extracted_text_id;primaryKey;autoIncrement:false"`
	StudyType       string `gorm:"column:study_type;size:12"`
	Media           string `gorm:"column:media;size:100"`
	QAFlag          string `gorm:"column:qa_flag;size:100"`
	QAWho           string `gorm:"column:qa_who;size:100"`
	ExtractionWA    string `gorm:"column:extraction_wa;size:100"`
}

func (ExtractedLMDoc) TableName() string { return "extracted_lmdocs" }

// RawChem is the root of the chemical chain.
type RawChem struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	ExtractedTextID  int64      `gorm:"column:extracted_text_id;not null;index"`
	RawCAS           string     `gorm:"column:raw_cas;size:100"`
	RawChemName      string     `gorm:"column:raw_chem_name;size:1300"`
	Component        string     `gorm:"column:component;size:200"`
	ChemDetectedFlag *bool      `gorm:"column:chem_detected_flag"`
	RID              string     `gorm:"column:rid;size:50"`
	DSSToxID         *int64     `gorm:"column:dsstox_id;index"`
	Provisional      bool       `gorm:"column:provisional;not null;default:false"`
	CreatedAt        time.Time  `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt        *time.Time `gorm:"column:updated_at"`
}

func (RawChem) TableName() string { return "raw_chems" }

// ExtractedComposition extends RawChem with composition data.
type ExtractedComposition struct {
	RawChemID            int64      `gorm:"column:raw_chem_id;primaryKey;autoIncrement:false"`
	RawMinComp           string     `gorm:"column:raw_min_comp;size:100"`
	RawMaxComp           string     `gorm:"column:raw_max_comp;size:100"`
	RawCentralComp       string     `gorm:"column:raw_central_comp;size:100"`
	UnitTypeID           *int64     `gorm:"column:unit_type_id"`
	IngredientRank       *int       `gorm:"column:ingredient_rank"`
	LowerWFAnalysis      *float64   `gorm:"column:lower_wf_analysis;type:numeric(16,15)"`
	CentralWFAnalysis    *float64   `gorm:"column:central_wf_analysis;type:numeric(16,15)"`
	UpperWFAnalysis      *float64   `gorm:"column:upper_wf_analysis;type:numeric(16,15)"`
	WeightFractionTypeID *int64     `gorm:"column:weight_fraction_type_id"`
	ScriptID             *int64     `gorm:"column:script_id"`
	UpdatedAt            *time.Time `gorm:"column:updated_at"`
}

func (ExtractedComposition) TableName() string { return "extracted_compositions" }

// ExtractedFunctionalUse extends RawChem for functional use documents.
// Reported uses are linked through RawChemFunctionalUse.
type ExtractedFunctionalUse struct {
	RawChemID int64 `gorm:"column:raw_chem_id;primaryKey;autoIncrement:false"`
}

func (ExtractedFunctionalUse) TableName() string { return "extracted_functional_uses" }

// ExtractedListPresence extends RawChem for chemical presence lists.
type ExtractedListPresence struct {
	RawChemID int64 `gorm:"column:raw_chem_id;primaryKey;autoIncrement:false"`
}

func (ExtractedListPresence) TableName() string { return "extracted_list_presences" }

// ExtractedLMRec extends RawChem with literature monitoring data.
type ExtractedLMRec struct {
	RawChemID             int64      `gorm:"column:raw_chem_id;primaryKey;autoIncrement:false"`
	StudyLocation         string     `gorm:"column:study_location;size:200"`
	SamplingDate          *time.Time `gorm:"column:sampling_date;type:date"`
	PopulationDescription string     `gorm:"column:population_description;size:200"`
	PopulationGender      string     `gorm:"column:population_gender;size:30"`
	PopulationAge         string     `gorm:"column:population_age;size:200"`
	PopulationOther       string     `gorm:"column:population_other;size:200"`
	SamplingMethod        string     `gorm:"column:sampling_method;size:200"`
	AnalyticalMethod      string     `gorm:"column:analytical_method;size:200"`
	Medium                string     `gorm:"column:medium;size:200"`
	HarmonizedMediumID    *int64     `gorm:"column:harmonized_medium_id"`
	NumMeasure            *int       `gorm:"column:num_measure"`
	NumNondetect          *int       `gorm:"column:num_nondetect"`
	DetectFreq            *float64   `gorm:"column:detect_freq"`
	DetectFreqType        string     `gorm:"column:detect_freq_type;size:1"`
	LOD                   *float64   `gorm:"column:lod"`
	LOQ                   *float64   `gorm:"column:loq"`
}

func (ExtractedLMRec) TableName() string { return "extracted_lmrecs" }

// StatisticalValue is a reported statistic of a literature monitoring
// record.
type StatisticalValue struct {
	ID        int64   `gorm:"column:id;primaryKey"`
	RawChemID int64   `gorm:"column:raw_chem_id;not null;index"`
	Name      string  `gorm:"column:name;size:30;not null"`
	Value     float64 `gorm:"column:value;not null"`
	ValueType string  `gorm:"column:value_type;size:1;not null"`
	StatUnit  string  `gorm:"column:stat_unit;size:30;not null"`
}

func (StatisticalValue) TableName() string { return "statistical_values" }

// RawChemFunctionalUse links chemical records to reported functional uses.
type RawChemFunctionalUse struct {
	RawChemID       int64 `gorm:"column:raw_chem_id;primaryKey;autoIncrement:false"`
	FunctionalUseID int64 `gorm:"column:functional_use_id;primaryKey;autoIncrement:false"`
}

func (RawChemFunctionalUse) TableName() string { return "raw_chem_functional_uses" }

// ProductInfo holds descriptive product fields shared by canonical and
// duplicate products.
type ProductInfo struct {
	Title            string `gorm:"column:title;size:255;not null"`
	URL              string `gorm:"column:url;size:500"`
	BrandName        string `gorm:"column:brand_name;size:200"`
	Size             string `gorm:"column:size;size:100"`
	Color            string `gorm:"column:color;size:100"`
	ItemID           string `gorm:"column:item_id;size:50"`
	ParentItemID     string `gorm:"column:parent_item_id;size:50"`
	ShortDescription string `gorm:"column:short_description;type:text"`
	LongDescription  string `gorm:"column:long_description;type:text"`
	EPARegNumber     string `gorm:"column:epa_reg_number;size:25"`
	ThumbImage       string `gorm:"column:thumb_image;size:500"`
	MediumImage      string `gorm:"column:medium_image;size:500"`
	LargeImage       string `gorm:"column:large_image;size:500"`
	ModelNumber      string `gorm:"column:model_number;size:200"`
	Manufacturer     string `gorm:"column:manufacturer;size:250"`
	Image            string `gorm:"column:image;size:255"`
}

// Product is the canonical product addressed by its UPC.
type Product struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	UPC         string     `gorm:"column:upc;size:60;uniqueIndex;not null"`
	ProductInfo `gorm:"embedded"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (Product) TableName() string { return "products" }

// DuplicateProduct holds products whose UPC collided with a stored or
// in-batch UPC. SourceUPC keeps the submitted value, UPC is a surrogate.
type DuplicateProduct struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UPC         string    `gorm:"column:upc;size:60;uniqueIndex;not null"`
	SourceUPC   string    `gorm:"column:source_upc;size:60;not null;index"`
	ProductInfo `gorm:"embedded"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (DuplicateProduct) TableName() string { return "duplicate_products" }

// ProductDocument links a document to either a product or a duplicate
// product.
type ProductDocument struct {
	ID                 int64  `gorm:"column:id;primaryKey"`
	DocumentID         int64  `gorm:"column:document_id;not null;index"`
	ProductID          *int64 `gorm:"column:product_id;index;check:chk_product_documents_subject,(product_id IS NULL) <> (duplicate_product_id IS NULL)"`
	DuplicateProductID *int64 `gorm:"column:duplicate_product_id;index"`
}

func (ProductDocument) TableName() string { return "product_documents" }

// PUC is a product use category.
type PUC struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	GenCat   string `gorm:"column:gen_cat;size:50;not null"`
	ProdFam  string `gorm:"column:prod_fam;size:50"`
	ProdType string `gorm:"column:prod_type;size:100"`
}

func (PUC) TableName() string { return "pucs" }

// ClassificationMethod is a way of assigning PUCs to products. Lower Rank
// is more authoritative.
type ClassificationMethod struct {
	Code string `gorm:"column:code;primaryKey;size:3"`
	Name string `gorm:"column:name;size:100;not null"`
	Rank int    `gorm:"column:rank;uniqueIndex;not null"`
}

func (ClassificationMethod) TableName() string { return "classification_methods" }

// ProductToPUC is a classification assignment. Exactly one assignment per
// product carries IsUberPUC.
type ProductToPUC struct {
	ID                       int64      `gorm:"column:id;primaryKey"`
	ProductID                int64      `gorm:"column:product_id;not null;index;uniqueIndex:idx_product_to_pucs_assignment"`
	PUCID                    int64      `gorm:"column:puc_id;not null;uniqueIndex:idx_product_to_pucs_assignment"`
	ClassificationMethodCode string     `gorm:"column:classification_method_code;size:3;not null;uniqueIndex:idx_product_to_pucs_assignment"`
	IsUberPUC                bool       `gorm:"column:is_uber_puc;not null;default:false"`
	CreatedAt                time.Time  `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt                *time.Time `gorm:"column:updated_at"`
}

func (ProductToPUC) TableName() string { return "product_to_pucs" }
