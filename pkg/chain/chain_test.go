package chain_test

import (
	"testing"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/chain"
	"github.com/chemexpo/factodb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records[T chain.Record](rs ...T) []chain.Record {
	return chain.Records(rs)
}

func TestNewLayout(t *testing.T) {
	assert := assert.New(t)

	t.Run("documents", func(t *testing.T) {
		recs := records(
			chain.NewDocumentRecord(batch.ExtractionRow{DocumentID: 5}, batch.DomainPresence, 1),
			chain.NewDocumentRecord(batch.ExtractionRow{DocumentID: 6}, batch.DomainPresence, 1),
		)
		l, err := chain.NewLayout(recs)
		require.NoError(t, err)
		assert.Equal([]string{"extracted_texts", "extracted_cpcats"}, l.Tables)
		assert.Equal([]string{"id", "extracted_text_id"}, l.Keys)
		assert.False(l.Generated)
		assert.Equal("extracted_texts", l.Root())
		assert.Equal([]int64{5, 6}, chain.IDs(recs))
	})

	t.Run("chemicals", func(t *testing.T) {
		recs := records(
			chain.NewChemicalRecord(batch.ExtractionRow{DocumentID: 5}, batch.DomainFunctional),
			chain.NewChemicalRecord(batch.ExtractionRow{DocumentID: 5}, batch.DomainFunctional),
		)
		l, err := chain.NewLayout(recs)
		require.NoError(t, err)
		assert.Equal([]string{"raw_chems", "extracted_functional_uses"}, l.Tables)
		assert.True(l.Generated)
		assert.Empty(l.Columns[1])
	})

	t.Run("empty", func(t *testing.T) {
		l, err := chain.NewLayout(nil)
		require.NoError(t, err)
		assert.Empty(l.Tables)
	})

	t.Run("mismatch", func(t *testing.T) {
		recs := records(
			chain.NewDocumentRecord(batch.ExtractionRow{DocumentID: 5}, batch.DomainPresence, 1),
			chain.NewDocumentRecord(batch.ExtractionRow{DocumentID: 6}, batch.DomainLiterature, 1),
		)
		_, err := chain.NewLayout(recs)
		assert.ErrorIs(err, chain.ErrChainMismatch)

		recs = records(
			chain.NewDocumentRecord(batch.ExtractionRow{DocumentID: 5}, batch.DomainPresence, 1),
			chain.NewDocumentRecord(batch.ExtractionRow{DocumentID: 6}, batch.DomainFunctional, 1),
		)
		_, err = chain.NewLayout(recs)
		assert.ErrorIs(err, chain.ErrChainMismatch)
	})

	t.Run("mixed identity", func(t *testing.T) {
		a := chain.NewChemicalRecord(batch.ExtractionRow{DocumentID: 5}, batch.DomainPresence)
		b := chain.NewChemicalRecord(batch.ExtractionRow{DocumentID: 5}, batch.DomainPresence)
		b.SetID(10)
		_, err := chain.NewLayout(records(a, b))
		assert.ErrorIs(err, chain.ErrMixedIdentity)
	})
}

func TestParams(t *testing.T) {
	assert := assert.New(t)
	recs := records(
		chain.NewChemicalRecord(batch.ExtractionRow{DocumentID: 1}, batch.DomainComposition),
	)
	l, err := chain.NewLayout(recs)
	require.NoError(t, err)
	// raw_chems has 8 columns plus the key, the composition subtype has 5
	// plus its key.
	assert.Equal(9*10, l.Params(10))

	recs = records(
		chain.NewDocumentRecord(batch.ExtractionRow{DocumentID: 1}, batch.DomainLiterature, 1),
	)
	l, err = chain.NewLayout(recs)
	require.NoError(t, err)
	assert.Equal(6*3, l.Params(3))
	assert.Greater(l.Params(20000), chain.MaxParams)
}

func TestSetIDPropagates(t *testing.T) {
	assert := assert.New(t)
	flag := true
	rank := 2
	r := chain.NewChemicalRecord(batch.ExtractionRow{
		DocumentID:       3,
		RawChemName:      "water",
		ChemDetectedFlag: &flag,
		Comp:             &batch.CompFields{RawMinComp: "0.1", IngredientRank: &rank},
	}, batch.DomainComposition)
	assert.Nil(r.Chem.ChemDetectedFlag)

	r.SetID(42)
	parts := r.Parts()
	require.Len(t, parts, 2)
	assert.Equal(int64(42), r.ID())
	sub, ok := r.Sub.(*chain.CompositionChem)
	require.True(t, ok)
	assert.Equal(int64(42), sub.RawChemID)
	assert.Equal("0.1", parts[1].Values[0])
	assert.Equal(int64(3), parts[0].Values[0])
}

func TestDocumentSubtypes(t *testing.T) {
	assert := assert.New(t)
	row := batch.ExtractionRow{
		DocumentID: 9,
		ProdName:   "cleaner",
		LMDoc:      &batch.LMDocFields{StudyType: "Targeted"},
	}
	r := chain.NewDocumentRecord(row, batch.DomainLiterature, 4)
	sub, ok := r.Sub.(*chain.LMDoc)
	require.True(t, ok)
	assert.Equal(int64(9), sub.ExtractedTextID)
	assert.Equal("Targeted", sub.StudyType)
	assert.Equal(int64(4), r.Text.ExtractionScriptID)

	r = chain.NewDocumentRecord(row, batch.DomainComposition, 4)
	assert.Nil(r.Sub)
	assert.Len(r.Parts(), 1)
}

func TestEntityRecords(t *testing.T) {
	assert := assert.New(t)

	p := &schema.Product{UPC: "0001", ProductInfo: schema.ProductInfo{Title: "Soap"}}
	d := &schema.DuplicateProduct{UPC: "x", SourceUPC: "0001"}
	recs := records(chain.ProductRecord{Product: p})
	l, err := chain.NewLayout(recs)
	require.NoError(t, err)
	assert.True(l.Generated)
	assert.Equal([]string{"products"}, l.Tables)
	assert.Equal(18*2, l.Params(2))

	recs[0].SetID(42)
	assert.Equal(int64(42), p.ID)
	parts := recs[0].Parts()
	require.Len(t, parts, 1)
	assert.Equal("upc", parts[0].Columns[0])
	assert.Equal("Soap", parts[0].Values[1])
	assert.Len(parts[0].Values, len(parts[0].Columns))

	dp := chain.DuplicateRecord{Product: d}.Parts()[0]
	assert.Equal("duplicate_products", dp.Table)
	assert.Equal([]any{"x", "0001"}, dp.Values[:2])
	assert.Len(dp.Values, len(dp.Columns))

	e := &schema.DSSToxLookup{SID: "DTXSID1", TrueChemName: "water"}
	ir := chain.IdentityRecord{Entity: e}
	ir.SetID(7)
	assert.Equal(int64(7), e.ID)
	assert.Equal("dsstox_lookups", ir.Parts()[0].Table)

	fu := chain.FunctionalUseRecord{Entity: &schema.FunctionalUse{ReportFuncUse: "solvent"}}
	assert.Equal([]string{"report_funcuse", "category_id", "extraction_script_id"},
		fu.Parts()[0].Columns)
}
