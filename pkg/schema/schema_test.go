package schema_test

import (
	"sync"
	"testing"

	"github.com/chemexpo/factodb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gschema "gorm.io/gorm/schema"
)

func parse(t *testing.T, model any) *gschema.Schema {
	t.Helper()
	s, err := gschema.Parse(model, &sync.Map{}, gschema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

func TestAllModelsParse(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range schema.AllModels() {
		s := parse(t, m)
		assert.False(t, seen[s.Table], "duplicate table %s", s.Table)
		seen[s.Table] = true
	}
	assert.Len(t, seen, 28)
}

func TestChainTablesShareKey(t *testing.T) {
	tests := []struct {
		msg   string
		model any
		table string
		key   string
	}{
		{"cpcat", &schema.ExtractedCPCat{}, "extracted_cpcats", "extracted_text_id"},
		{"lmdoc", &schema.ExtractedLMDoc{}, "extracted_lmdocs", "extracted_text_id"},
		{"composition", &schema.ExtractedComposition{}, "extracted_compositions", "raw_chem_id"},
		{"funcuse", &schema.ExtractedFunctionalUse{}, "extracted_functional_uses", "raw_chem_id"},
		{"presence", &schema.ExtractedListPresence{}, "extracted_list_presences", "raw_chem_id"},
		{"lmrec", &schema.ExtractedLMRec{}, "extracted_lmrecs", "raw_chem_id"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			s := parse(t, tt.model)
			assert.Equal(t, tt.table, s.Table)
			require.Len(t, s.PrimaryFields, 1)
			pk := s.PrimaryFields[0]
			assert.Equal(t, tt.key, pk.DBName)
			assert.False(t, pk.AutoIncrement)
		})
	}
}

func TestProductColumns(t *testing.T) {
	p := parse(t, &schema.Product{})
	d := parse(t, &schema.DuplicateProduct{})

	for _, col := range []string{"upc", "title", "brand_name", "image"} {
		assert.NotNil(t, p.LookUpField(col), col)
		assert.NotNil(t, d.LookUpField(col), col)
	}
	assert.NotNil(t, d.LookUpField("source_upc"))
	assert.Nil(t, p.LookUpField("source_upc"))
}

func TestClassificationMethods(t *testing.T) {
	ms := schema.ClassificationMethods()
	require.Len(t, ms, 5)
	ranks := make(map[int]bool)
	for i, m := range ms {
		assert.Equal(t, i+1, m.Rank)
		ranks[m.Rank] = true
	}
	assert.Len(t, ranks, 5)
	assert.Equal(t, schema.MethodManual, ms[0].Code)
	assert.Equal(t, schema.MethodBulkAssignment, ms[3].Code)
}

func TestGroupTypes(t *testing.T) {
	codes := make(map[string]bool)
	for _, g := range schema.GroupTypes() {
		codes[g.Code] = true
	}
	for _, c := range []string{"CO", "UN", "FU", "CP", "LM"} {
		assert.True(t, codes[c], c)
	}
}
