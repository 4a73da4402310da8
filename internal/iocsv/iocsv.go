// Package iocsv decodes comma separated batches into batch tables.
package iocsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/gnames/gnlib"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Decode reads a header line followed by data rows. Cells are repaired to
// valid UTF-8, rows that consist of empty cells only are dropped. Rows may
// be shorter or longer than the header, the validator reports on them.
func Decode(source string, data []byte) (*batch.Table, error) {
	data = bytes.TrimPrefix(data, bom)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, EmptyError(source)
	}
	if err != nil {
		return nil, ReadError(source, err)
	}

	res := &batch.Table{Header: make([]string, len(header))}
	for i, h := range header {
		res.Header[i] = strings.TrimSpace(gnlib.FixUtf8(h))
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ReadError(source, err)
		}
		if blank(rec) {
			continue
		}
		row := make([]string, len(rec))
		for i, v := range rec {
			row[i] = gnlib.FixUtf8(v)
		}
		res.Rows = append(res.Rows, row)
	}

	return res, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
