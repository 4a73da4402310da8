// Package validate checks decoded batches against their header contracts,
// per-row field rules and whole-batch invariants. Every error of a batch is
// collected into a batch.Report. The package performs no writes, stored
// state is consulted only through bulk lookups of the Lookup contract.
package validate

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/config"
)

// Lookup answers bulk existence questions about stored entities. Every
// method is called at most once per batch with the full set of referenced
// keys.
type Lookup interface {
	// ExistingDocuments returns the ids that belong to documents of the group.
	ExistingDocuments(ctx context.Context, groupID int64, ids []int64) (map[int64]bool, error)

	// ExistingFilenames returns filenames already registered in the group.
	ExistingFilenames(ctx context.Context, groupID int64, names []string) (map[string]bool, error)

	// DocumentTypes returns codes and ids of document types compatible
	// with a group type.
	DocumentTypes(ctx context.Context, groupTypeCode string) (map[string]int64, error)

	ExistingRawChems(ctx context.Context, ids []int64) (map[int64]bool, error)

	// ScriptType returns the type of a script and false if it does not
	// exist.
	ScriptType(ctx context.Context, id int64) (string, bool, error)

	ExistingUnitTypes(ctx context.Context, ids []int64) (map[int64]bool, error)

	// HarmonizedMedia returns ids of harmonized media by name.
	HarmonizedMedia(ctx context.Context, names []string) (map[string]int64, error)

	// ExistingCompositions returns ids of compositions from documents of
	// the group.
	ExistingCompositions(ctx context.Context, groupID int64, ids []int64) (map[int64]bool, error)

	WeightFractionTypeExists(ctx context.Context, id int64) (bool, error)

	ExistingFunctionalUses(ctx context.Context, ids []int64) (map[int64]bool, error)

	// FunctionalUseCategories returns ids of categories by title.
	FunctionalUseCategories(ctx context.Context, titles []string) (map[string]int64, error)

	ExistingProducts(ctx context.Context, ids []int64) (map[int64]bool, error)

	ExistingPUCs(ctx context.Context, ids []int64) (map[int64]bool, error)

	// MethodRanks returns ranks of classification methods by code.
	MethodRanks(ctx context.Context) (map[string]int, error)
}

// Script types.
const (
	ScriptExtraction    = "EX"
	ScriptDataCleaning  = "DC"
	ScriptFunctionalUse = "FU"
)

// Validator validates batches of every kind.
type Validator struct {
	lookup Lookup
	cfg    config.IngestConfig
}

// New creates a Validator with ingestion limits from cfg.
func New(l Lookup, cfg config.IngestConfig) *Validator {
	return &Validator{lookup: l, cfg: cfg}
}

// prologue checks the header and the size of a batch. A returned report
// with Fatal set stops validation.
func (v *Validator) prologue(
	k batch.Kind,
	tbl *batch.Table,
	header []string,
) *batch.Report {
	if !slices.Equal(tbl.Header, header) {
		return batch.HeaderError(k, header)
	}
	rep := batch.NewReport(k)
	switch {
	case tbl.Len() == 0:
		rep.Fatal = true
		rep.AddBatch("", "The file has no data rows.")
	case v.cfg.MaxRows > 0 && tbl.Len() > v.cfg.MaxRows:
		rep.Fatal = true
		rep.AddBatch("",
			"The file has %d rows, no more than %d rows are allowed.",
			tbl.Len(), v.cfg.MaxRows)
	}
	return rep
}

// checkScript reports a script that does not exist or has a wrong type.
func (v *Validator) checkScript(
	ctx context.Context,
	rep *batch.Report,
	id int64,
	scriptType, field, msg string,
) error {
	st, ok, err := v.lookup.ScriptType(ctx, id)
	if err != nil {
		return err
	}
	if !ok || st != scriptType {
		rep.AddBatch(field, msg)
	}
	return nil
}

// missing returns sorted ids absent from found.
func missing(ids []int64, found map[int64]bool) []int64 {
	var res []int64
	for _, id := range ids {
		if !found[id] {
			res = append(res, id)
		}
	}
	slices.Sort(res)
	return res
}

// uniq returns distinct positive ids in order of appearance.
func uniq(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	res := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

func uniqStrings(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	res := make([]string, 0, len(ss))
	for _, s := range ss {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	return res
}

func joinIDs(ids []int64) string {
	ss := make([]string, len(ids))
	for i, id := range ids {
		ss[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(ss, ", ")
}
