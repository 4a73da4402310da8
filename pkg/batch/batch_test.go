package batch_test

import (
	"errors"
	"testing"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRow(t *testing.T) {
	tbl := batch.Table{
		Header: []string{"a", "b", "c"},
		Rows: [][]string{
			{" 1 ", "x"},
			{"2", "y", "z"},
		},
	}
	assert.Equal(t, 2, tbl.Len())

	r := tbl.Row(0)
	assert.Equal(t, 1, r.Num)
	assert.Equal(t, "1", r.Get("a"))
	assert.Equal(t, "", r.Get("c"))
	assert.Equal(t, "", r.Get("missing"))

	var nums []int
	var cs []string
	tbl.Each(func(r batch.Row) {
		nums = append(nums, r.Num)
		cs = append(cs, r.Get("c"))
	})
	assert.Equal(t, []int{1, 2}, nums)
	assert.Equal(t, []string{"", "z"}, cs)
}

func TestParseDomain(t *testing.T) {
	tests := []struct {
		msg     string
		code    string
		want    batch.Domain
		wantErr bool
	}{
		{"composition", "CO", batch.DomainComposition, false},
		{"unidentified", "UN", batch.DomainUnidentified, false},
		{"functional use", "FU", batch.DomainFunctional, false},
		{"presence", "CP", batch.DomainPresence, false},
		{"literature", "LM", batch.DomainLiterature, false},
		{"habits", "HP", "", true},
		{"lower case", "co", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			d, err := batch.ParseDomain(tt.code)
			if tt.wantErr {
				assert.True(t, errors.Is(err, batch.ErrUnsupportedDomain))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestDomainSpec(t *testing.T) {
	tests := []struct {
		domain    batch.Domain
		docTable  string
		chemTable string
		oneToOne  string
		funcUses  bool
		detected  bool
	}{
		{batch.DomainComposition, "", "extracted_compositions", "prod_name", true, false},
		{batch.DomainUnidentified, "", "extracted_compositions", "prod_name", true, false},
		{batch.DomainFunctional, "", "extracted_functional_uses", "prod_name", true, false},
		{batch.DomainPresence, "extracted_cpcats", "extracted_list_presences", "cat_code", true, true},
		{batch.DomainLiterature, "extracted_lmdocs", "extracted_lmrecs", "", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.domain), func(t *testing.T) {
			s := tt.domain.Spec()
			assert.Equal(t, tt.domain, s.Domain)
			assert.Equal(t, tt.docTable, s.DocTable)
			assert.Equal(t, tt.chemTable, s.ChemTable)
			assert.Equal(t, tt.oneToOne, s.OneToOne)
			assert.Equal(t, tt.funcUses, s.FuncUses)
			assert.Equal(t, tt.detected, s.DetectedFlag)
			assert.NotEmpty(t, s.Header)
		})
	}
}

func TestHeaders(t *testing.T) {
	fu := batch.Header(batch.KindExtraction, batch.DomainFunctional)
	co := batch.Header(batch.KindExtraction, batch.DomainComposition)
	cp := batch.Header(batch.KindExtraction, batch.DomainPresence)
	lm := batch.Header(batch.KindExtraction, batch.DomainLiterature)

	assert.Len(t, fu, 9)
	assert.Equal(t, fu, co[:9])
	assert.Equal(t, "component", co[len(co)-1])

	assert.NotContains(t, cp, "prod_name")
	assert.NotContains(t, cp, "rev_num")
	assert.Equal(t, []string{
		"data_document_id", "data_document_filename", "doc_date",
		"raw_category", "raw_cas", "raw_chem_name", "report_funcuse",
		"cat_code", "description_cpcat", "cpcat_code", "cpcat_sourcetype",
		"component", "chem_detected_flag",
	}, cp)
	// building the presence header must not modify the shared one
	assert.Contains(t, fu, "prod_name")

	assert.Equal(t, "statistical_values", lm[len(lm)-1])
	assert.Equal(t, batch.ProductsHeader,
		batch.Header(batch.KindProducts, ""))
	assert.Equal(t, "image_name",
		batch.ProductsHeader[len(batch.ProductsHeader)-1])
	assert.Nil(t, batch.Header(batch.KindExtraction, "HP"))
}

func TestReport(t *testing.T) {
	r := batch.NewReport(batch.KindChemicals)
	assert.False(t, r.HasErrors())
	assert.Nil(t, r.Err())

	r.Add(3, "sid", "bad sid %s", "X")
	r.AddRows([]int{1, 4}, "external_id", "missing")
	r.AddBatch("", "whole batch")
	require.True(t, r.HasErrors())

	err := r.Err()
	require.Error(t, err)
	var rep *batch.Report
	require.True(t, errors.As(err, &rep))
	assert.Len(t, rep.Errors, 3)
	assert.Equal(t, "bad sid X", rep.Errors[0].Msg)
	assert.Contains(t, err.Error(), "3 validation errors in chemicals batch")
	assert.Contains(t, err.Error(), "row 3: sid: bad sid X")
	assert.Contains(t, err.Error(), "rows 1, 4: external_id: missing")
}

func TestHeaderError(t *testing.T) {
	r := batch.HeaderError(batch.KindPUCs, batch.PUCsHeader)
	assert.True(t, r.Fatal)
	require.Len(t, r.Errors, 1)
	assert.Equal(t,
		"CSV column titles should be [product_id puc_id classification_method]",
		r.Errors[0].Msg)
	assert.Empty(t, r.Errors[0].Rows)
}

func TestOneToOne(t *testing.T) {
	r := batch.ExtractionRow{
		ProdName: "soap",
		CPCat:    &batch.CPCatFields{CatCode: "C1"},
	}
	assert.Equal(t, "soap", r.OneToOne("prod_name"))
	assert.Equal(t, "C1", r.OneToOne("cat_code"))
	assert.Equal(t, "", r.OneToOne(""))
}
