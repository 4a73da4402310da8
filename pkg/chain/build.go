package chain

import (
	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/schema"
)

// NewDocumentRecord builds the document chain of an extraction row. The
// identity is the id of the data document.
func NewDocumentRecord(
	r batch.ExtractionRow,
	d batch.Domain,
	scriptID int64,
) *DocumentRecord {
	res := &DocumentRecord{
		Text: schema.ExtractedText{
			ID:                 r.DocumentID,
			ProdName:           r.ProdName,
			DocDate:            r.DocDate,
			RevNum:             r.RevNum,
			ExtractionScriptID: scriptID,
		},
	}

	switch d {
	case batch.DomainPresence:
		sub := &CPCatDoc{}
		if r.CPCat != nil {
			sub.CatCode = r.CPCat.CatCode
			sub.DescriptionCPCat = r.CPCat.DescriptionCPCat
			sub.CPCatCode = r.CPCat.CPCatCode
			sub.CPCatSourcetype = r.CPCat.CPCatSourcetype
		}
		res.Sub = sub
	case batch.DomainLiterature:
		sub := &LMDoc{}
		if r.LMDoc != nil {
			sub.StudyType = r.LMDoc.StudyType
			sub.Media = r.LMDoc.Media
			sub.QAFlag = r.LMDoc.QAFlag
			sub.QAWho = r.LMDoc.QAWho
			sub.ExtractionWA = r.LMDoc.ExtractionWA
		}
		res.Sub = sub
	}
	res.SetID(r.DocumentID)
	return res
}

// NewChemicalRecord builds the chemical chain of an extraction row. The
// identity is left for the database to generate.
func NewChemicalRecord(r batch.ExtractionRow, d batch.Domain) *ChemicalRecord {
	res := &ChemicalRecord{
		Chem: schema.RawChem{
			ExtractedTextID: r.DocumentID,
			RawCAS:          r.RawCAS,
			RawChemName:     r.RawChemName,
			Component:       r.Component,
		},
	}
	if d.Spec().DetectedFlag {
		res.Chem.ChemDetectedFlag = r.ChemDetectedFlag
	}

	switch d {
	case batch.DomainComposition, batch.DomainUnidentified:
		sub := &CompositionChem{}
		if r.Comp != nil {
			sub.RawMinComp = r.Comp.RawMinComp
			sub.RawMaxComp = r.Comp.RawMaxComp
			sub.RawCentralComp = r.Comp.RawCentralComp
			sub.UnitTypeID = r.Comp.UnitTypeID
			sub.IngredientRank = r.Comp.IngredientRank
		}
		res.Sub = sub
	case batch.DomainFunctional:
		res.Sub = &FunctionalUseChem{}
	case batch.DomainPresence:
		res.Sub = &ListPresenceChem{}
	case batch.DomainLiterature:
		sub := &LMRecChem{}
		if lm := r.LMRec; lm != nil {
			sub.StudyLocation = lm.StudyLocation
			sub.SamplingDate = lm.SamplingDate
			sub.PopulationDescription = lm.PopulationDescription
			sub.PopulationGender = lm.PopulationGender
			sub.PopulationAge = lm.PopulationAge
			sub.PopulationOther = lm.PopulationOther
			sub.SamplingMethod = lm.SamplingMethod
			sub.AnalyticalMethod = lm.AnalyticalMethod
			sub.Medium = lm.Medium
			sub.HarmonizedMediumID = lm.HarmonizedMediumID
			sub.NumMeasure = lm.NumMeasure
			sub.NumNondetect = lm.NumNondetect
			sub.DetectFreq = lm.DetectFreq
			sub.DetectFreqType = lm.DetectFreqType
			sub.LOD = lm.LOD
			sub.LOQ = lm.LOQ
		}
		res.Sub = sub
	}
	return res
}
