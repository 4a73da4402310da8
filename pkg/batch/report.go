package batch

import (
	"fmt"
	"strings"
)

// FieldError is one validation error. Rows are 1-based data row numbers,
// empty for batch-scope errors. Field is empty for errors that concern the
// whole row or the whole batch.
type FieldError struct {
	Rows  []int  `json:"rows,omitempty"  yaml:"rows,omitempty"`
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	Msg   string `json:"message"         yaml:"message"`
}

func (e FieldError) String() string {
	var sb strings.Builder
	if len(e.Rows) > 0 {
		sb.WriteString("row")
		if len(e.Rows) > 1 {
			sb.WriteString("s")
		}
		for i, r := range e.Rows {
			if i > 0 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, " %d", r)
		}
		sb.WriteString(": ")
	}
	if e.Field != "" {
		sb.WriteString(e.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	return sb.String()
}

// Report collects every validation error of a batch. A Report with errors
// is returned as an error value.
type Report struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Fatal is set when the batch was rejected before row validation, for
	// example on a header mismatch.
	Fatal  bool         `json:"fatal"  yaml:"fatal"`
	Errors []FieldError `json:"errors" yaml:"errors"`
}

// NewReport creates an empty report for a batch kind.
func NewReport(k Kind) *Report {
	return &Report{Kind: k}
}

// Add records a row-scope error.
func (r *Report) Add(row int, field, msg string, args ...any) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	r.Errors = append(r.Errors, FieldError{
		Rows: []int{row}, Field: field, Msg: msg,
	})
}

// AddRows records one error shared by several rows.
func (r *Report) AddRows(rows []int, field, msg string, args ...any) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	r.Errors = append(r.Errors, FieldError{
		Rows: rows, Field: field, Msg: msg,
	})
}

// AddBatch records a batch-scope error.
func (r *Report) AddBatch(field, msg string, args ...any) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	r.Errors = append(r.Errors, FieldError{Field: field, Msg: msg})
}

// HasErrors is true when at least one error was recorded.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err returns the report as an error, or nil when it is empty.
func (r *Report) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return r
}

func (r *Report) Error() string {
	if len(r.Errors) == 0 {
		return fmt.Sprintf("%s batch is valid", r.Kind)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation error", len(r.Errors))
	if len(r.Errors) > 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " in %s batch", r.Kind)
	for _, e := range r.Errors {
		sb.WriteString("\n  ")
		sb.WriteString(e.String())
	}
	return sb.String()
}

// HeaderError returns a fatal report for a header that does not match the
// contract.
func HeaderError(k Kind, want []string) *Report {
	r := NewReport(k)
	r.Fatal = true
	r.AddBatch("", "CSV column titles should be %v", want)
	return r
}
