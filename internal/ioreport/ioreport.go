// Package ioreport saves batch summaries and validation reports.
package ioreport

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chemexpo/factodb/internal/iofs"
	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"gopkg.in/yaml.v3"
)

// Format of a saved report.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat converts a flag value to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", FormatError(s)
}

// FormatFromPath guesses format by file extension, JSON is the default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Encode renders v, a *batch.Summary or *batch.Report.
func Encode(v any, f Format) ([]byte, error) {
	var res []byte
	var err error
	switch f {
	case YAML:
		res, err = yaml.Marshal(v)
	default:
		res, err = gnfmt.GNjson{Pretty: true}.Encode(v)
	}
	if err != nil {
		return nil, EncodeError(f, err)
	}
	return res, nil
}

// Write renders v and saves it to path.
func Write(path string, v any, f Format) error {
	data, err := Encode(v, f)
	if err != nil {
		return err
	}
	return iofs.WriteFile(path, data)
}

// SummaryLines renders a summary for the terminal with gn markup.
func SummaryLines(s *batch.Summary) []string {
	res := []string{
		fmt.Sprintf("Ingested <em>%s</em> batch with %s rows in %s",
			s.Kind, humanize.Comma(int64(s.Rows)), gnfmt.TimeString(s.Duration)),
	}
	if s.Domain != "" {
		res = append(res, fmt.Sprintf("Extraction domain: <em>%s</em>", s.Domain))
	}
	res = append(res, fmt.Sprintf("Committed: %s, diverted: %s",
		humanize.Comma(int64(s.Committed)), humanize.Comma(int64(s.Diverted))))

	if s.Created+s.Updated > 0 {
		res = append(res, fmt.Sprintf("Canonical entities created: %s, updated: %s",
			humanize.Comma(int64(s.Created)), humanize.Comma(int64(s.Updated))))
	}
	if s.ParentsCreated+s.ParentsUpdated > 0 {
		res = append(res, fmt.Sprintf("Documents extracted: %s, updated: %s",
			humanize.Comma(int64(s.ParentsCreated)), humanize.Comma(int64(s.ParentsUpdated))))
	}
	if s.Associations > 0 {
		res = append(res, fmt.Sprintf("Associations: %s",
			humanize.Comma(int64(s.Associations))))
	}
	return res
}
