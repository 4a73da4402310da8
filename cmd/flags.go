/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/chemexpo/factodb/internal/ioreport"
	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/spf13/cobra"
)

var kinds = []batch.Kind{
	batch.KindProducts,
	batch.KindChemicals,
	batch.KindDocuments,
	batch.KindExtraction,
	batch.KindCleanComp,
	batch.KindFuncUses,
	batch.KindPUCs,
}

// ingestFlags holds out-of-band selections of an ingest run.
type ingestFlags struct {
	groupID      int64
	scriptID     int64
	wfTypeID     int64
	images       string
	report       string
	reportFormat string
}

func (f *ingestFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Int64VarP(&f.groupID, "group", "g", 0, "data group id")
	fs.Int64VarP(&f.scriptID, "script", "s", 0,
		"extraction, cleaning or functional use script id")
	fs.Int64VarP(&f.wfTypeID, "wf-type", "w", 0,
		"weight fraction type id of cleaned compositions")
	fs.StringVarP(&f.images, "images", "i", "",
		"directory with product images")
	fs.StringVarP(&f.report, "report", "r", "",
		"save summary or validation report to a file")
	fs.StringVar(&f.reportFormat, "report-format", "",
		"report format: json or yaml (default by file extension)")
}

// format returns the report format from the flag or the report path.
func (f *ingestFlags) format() (ioreport.Format, error) {
	if f.reportFormat == "" {
		return ioreport.FormatFromPath(f.report), nil
	}
	return ioreport.ParseFormat(f.reportFormat)
}

// reportPath gives the report file of a batch file. With several batch
// files the name of the batch file is added before the extension.
func (f *ingestFlags) reportPath(file string, multi bool) string {
	if f.report == "" || !multi {
		return f.report
	}
	ext := filepath.Ext(f.report)
	stem := strings.TrimSuffix(f.report, ext)
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return stem + "-" + name + ext
}

func parseKind(s string) (batch.Kind, error) {
	k := batch.Kind(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(kinds, k) {
		return "", fmt.Errorf("unknown batch kind %q, use one of %s",
			s, kindNames())
	}
	return k, nil
}

func kindNames() string {
	res := make([]string, len(kinds))
	for i, k := range kinds {
		res[i] = string(k)
	}
	return strings.Join(res, ", ")
}

// parseIDs converts arguments to ids. Arguments may hold several ids
// separated by commas.
func parseIDs(args []string) ([]int64, error) {
	var res []int64
	for _, a := range args {
		for _, s := range strings.Split(a, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil || id < 1 {
				return nil, fmt.Errorf("invalid id %q", s)
			}
			res = append(res, id)
		}
	}
	return res, nil
}
