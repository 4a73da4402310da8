package schema

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&GroupType{},
		&DocumentType{},
		&DocumentTypeGroupType{},
		&DataGroup{},
		&Script{},
		&UnitType{},
		&WeightFractionType{},
		&HarmonizedMedium{},
		&DataDocument{},
		&DSSToxLookup{},
		&FunctionalUseCategory{},
		&FunctionalUse{},
		&ExtractedText{},
		&ExtractedCPCat{},
		&ExtractedLMDoc{},
		&RawChem{},
		&ExtractedComposition{},
		&ExtractedFunctionalUse{},
		&ExtractedListPresence{},
		&ExtractedLMRec{},
		&StatisticalValue{},
		&RawChemFunctionalUse{},
		&Product{},
		&DuplicateProduct{},
		&ProductDocument{},
		&PUC{},
		&ClassificationMethod{},
		&ProductToPUC{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// Seed inserts reference rows the engine relies on. Existing rows are left
// untouched, so Seed is safe to run after every migration.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		methods := ClassificationMethods()
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&methods).Error
		if err != nil {
			return err
		}
		types := GroupTypes()
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&types).Error
	})
}
