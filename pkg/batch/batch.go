// Package batch describes tabular batches submitted for ingestion: their
// kinds, header contracts, extraction domains, typed rows and the reports
// returned to the caller.
package batch

import (
	"strings"
)

// Kind is the type of a submitted batch.
type Kind string

const (
	KindProducts   Kind = "products"
	KindChemicals  Kind = "chemicals"
	KindDocuments  Kind = "documents"
	KindExtraction Kind = "extraction"
	KindCleanComp  Kind = "cleancomp"
	KindFuncUses   Kind = "funcuses"
	KindPUCs       Kind = "pucs"
)

// Table is a decoded tabular input. The first line of the source is the
// header, Rows hold data lines only.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Row gives access to the cells of the i-th data row by column title.
// Row numbers are 1-based.
func (t *Table) Row(i int) Row {
	idx := make(map[string]int, len(t.Header))
	for j, h := range t.Header {
		idx[h] = j
	}
	return Row{Num: i + 1, idx: idx, vals: t.Rows[i]}
}

// Each calls fn for every data row in file order.
func (t *Table) Each(fn func(Row)) {
	idx := make(map[string]int, len(t.Header))
	for j, h := range t.Header {
		idx[h] = j
	}
	for i, vals := range t.Rows {
		fn(Row{Num: i + 1, idx: idx, vals: vals})
	}
}

// Row is one data row of a Table.
type Row struct {
	Num  int
	idx  map[string]int
	vals []string
}

// Get returns the trimmed cell value of a column. Missing columns and
// short rows give an empty string.
func (r Row) Get(col string) string {
	j, ok := r.idx[col]
	if !ok || j >= len(r.vals) {
		return ""
	}
	return strings.TrimSpace(r.vals[j])
}

// Attachment is a named binary companion of a products batch.
type Attachment struct {
	Name string
	Size int64
}

// Context holds out-of-band parameters selected by the caller together
// with the data group the batch belongs to.
type Context struct {
	GroupID int64

	// GroupTypeCode and GroupTypeTitle describe the type of the data group.
	GroupTypeCode  string
	GroupTypeTitle string

	// MultipleFuncUse allows several reported functional uses per chemical.
	MultipleFuncUse bool

	// ScriptID is an extraction or data cleaning script.
	ScriptID int64

	// WFTypeID is the weight fraction type of a cleancomp batch.
	WFTypeID int64

	Images []Attachment
}

// Input is a batch submitted for ingestion together with the out-of-band
// selections of the caller.
type Input struct {
	Kind Kind

	// Source names the origin of Data, usually a file path.
	Source string

	// Data holds raw tabular bytes with a header line.
	Data []byte

	GroupID  int64
	ScriptID int64
	WFTypeID int64
	Images   []Attachment
}
