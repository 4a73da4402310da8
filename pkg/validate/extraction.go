package validate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chemexpo/factodb/pkg/batch"
)

// chemColumns are the columns of chemical-level data. A row where all of
// them are empty carries only document-level data.
var chemColumns = []string{
	"raw_cas", "raw_chem_name", "report_funcuse", "raw_min_comp",
	"raw_max_comp", "unit_type", "ingredient_rank", "raw_central_comp",
	"component", "chem_detected_flag", "study_location", "sampling_date",
	"population_description", "population_gender", "population_age",
	"population_other", "sampling_method", "analytical_method", "medium",
	"harmonized_medium", "num_measure", "num_nondetect", "detect_freq",
	"detect_freq_type", "LOD", "LOQ", "statistical_values",
}

// Extraction validates an extraction batch. The domain is taken from the
// group type of the batch context.
func (v *Validator) Extraction(
	ctx context.Context,
	tbl *batch.Table,
	bc batch.Context,
) ([]batch.ExtractionRow, error) {
	d, err := batch.ParseDomain(bc.GroupTypeCode)
	if err != nil {
		return nil, err
	}
	spec := d.Spec()

	rep := v.prologue(batch.KindExtraction, tbl, spec.Header)
	if rep.Fatal {
		return nil, rep
	}

	err = v.checkScript(ctx, rep, bc.ScriptID, ScriptExtraction,
		"extraction_script", "Invalid extraction script selection.")
	if err != nil {
		return nil, err
	}

	res := make([]batch.ExtractionRow, 0, tbl.Len())
	media := make([]string, 0, tbl.Len())
	tbl.Each(func(r batch.Row) {
		c := cells{rep: rep, row: r}
		res = append(res, extractionRow(c, spec, bc))
		media = append(media, c.str("harmonized_medium", 200, false))
	})

	var unitIDs, docs []int64
	for _, er := range res {
		docs = append(docs, er.DocumentID)
		if er.Comp != nil && er.Comp.UnitTypeID != nil {
			unitIDs = append(unitIDs, *er.Comp.UnitTypeID)
		}
	}
	if unitIDs = uniq(unitIDs); len(unitIDs) > 0 {
		found, err := v.lookup.ExistingUnitTypes(ctx, unitIDs)
		if err != nil {
			return nil, err
		}
		if bad := missing(unitIDs, found); len(bad) > 0 {
			rep.AddBatch("unit_type",
				`The following "unit_type"s were not found: %s`, joinIDs(bad))
		}
	}

	if err = v.checkDocuments(ctx, rep, bc.GroupID, docs); err != nil {
		return nil, err
	}

	if names := uniqStrings(media); len(names) > 0 {
		found, err := v.lookup.HarmonizedMedia(ctx, names)
		if err != nil {
			return nil, err
		}
		for i, name := range media {
			if name == "" || res[i].LMRec == nil {
				continue
			}
			if id, ok := found[name]; ok {
				res[i].LMRec.HarmonizedMediumID = &id
				continue
			}
			rep.Add(res[i].Row, "harmonized_medium", msgChoice, name)
		}
	}

	checkOneToOne(rep, res, spec.OneToOne)

	if err := rep.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func extractionRow(
	c cells,
	spec batch.DomainSpec,
	bc batch.Context,
) batch.ExtractionRow {
	er := batch.ExtractionRow{
		Row:        c.row.Num,
		DocumentID: c.id("data_document_id", true),
		Filename:   c.str("data_document_filename", 255, false),
		DocDate:    c.str("doc_date", 25, false),
	}

	switch spec.Domain {
	case batch.DomainLiterature:
		er.LMDoc = &batch.LMDocFields{
			StudyType:    c.choice("study_type", "Targeted", "Non-Targeted", "Other"),
			Media:        c.str("media", 100, false),
			QAFlag:       c.str("qa_flag", 100, false),
			QAWho:        c.str("qa_who", 100, false),
			ExtractionWA: c.str("extraction_wa", 100, false),
		}
	case batch.DomainPresence:
		er.RawCategory = c.str("raw_category", 1000, false)
		er.CPCat = &batch.CPCatFields{
			CatCode:          c.str("cat_code", 100, false),
			DescriptionCPCat: c.str("description_cpcat", 200, false),
			CPCatCode:        c.str("cpcat_code", 50, false),
			CPCatSourcetype:  c.str("cpcat_sourcetype", 50, false),
		}
	default:
		er.ProdName = c.str("prod_name", 255, false)
		er.RevNum = c.str("rev_num", 50, false)
		er.RawCategory = c.str("raw_category", 1000, false)
	}

	for _, col := range chemColumns {
		if c.row.Get(col) != "" {
			er.HasChem = true
			break
		}
	}
	if !er.HasChem {
		return er
	}

	er.RawCAS = c.str("raw_cas", 50, false)
	er.RawChemName = c.str("raw_chem_name", 255, false)
	if spec.DetectedFlag {
		er.ChemDetectedFlag = c.optBool("chem_detected_flag")
	}
	if spec.FuncUses {
		er.FuncUses = funcUses(c, bc.MultipleFuncUse)
	}

	switch spec.Domain {
	case batch.DomainComposition, batch.DomainUnidentified:
		er.Component = c.str("component", 200, false)
		er.Comp = &batch.CompFields{
			RawMinComp:     c.str("raw_min_comp", 100, false),
			RawMaxComp:     c.str("raw_max_comp", 100, false),
			RawCentralComp: c.str("raw_central_comp", 100, false),
			UnitTypeID:     c.optID("unit_type"),
			IngredientRank: c.optInt("ingredient_rank"),
		}
		checkComp(c, er.Comp)
	case batch.DomainPresence:
		er.Component = c.str("component", 200, false)
	case batch.DomainLiterature:
		er.LMRec = &batch.LMRecFields{
			StudyLocation:         c.str("study_location", 200, false),
			SamplingDate:          c.optDate("sampling_date"),
			PopulationDescription: c.str("population_description", 200, false),
			PopulationGender:      c.choice("population_gender", "M", "F", "A", "O"),
			PopulationAge:         c.str("population_age", 200, false),
			PopulationOther:       c.str("population_other", 200, false),
			SamplingMethod:        c.str("sampling_method", 200, false),
			AnalyticalMethod:      c.str("analytical_method", 200, false),
			Medium:                c.str("medium", 200, false),
			NumMeasure:            c.optInt("num_measure"),
			NumNondetect:          c.optInt("num_nondetect"),
			DetectFreq:            c.optFloat("detect_freq"),
			DetectFreqType:        c.choice("detect_freq_type", "R", "C"),
			LOD:                   c.optFloat("LOD"),
			LOQ:                   c.optFloat("LOQ"),
		}
		er.Stats = stats(c)
	}
	return er
}

// checkComp applies composition rules: a unit type for any raw value,
// central value alone, both bounds together and an ingredient rank
// within 1..999.
func checkComp(c cells, comp *batch.CompFields) {
	minc := comp.RawMinComp != ""
	maxc := comp.RawMaxComp != ""
	cenc := comp.RawCentralComp != ""
	if comp.UnitTypeID == nil && c.row.Get("unit_type") == "" &&
		(minc || maxc || cenc) {
		c.add("unit_type",
			"There must be a unit type if a composition value is provided.")
	}
	checkRange(c, minc, cenc, maxc, "composition",
		"raw_min_comp", "raw_central_comp", "raw_max_comp")
	if r := comp.IngredientRank; r != nil && (*r < 1 || *r > 999) {
		c.add("ingredient_rank", "Quantity %d is not allowed", *r)
	}
}

// checkRange reports a central value combined with bounds and a single
// bound without its pair.
func checkRange(
	c cells,
	lower, central, upper bool,
	what, lowerCol, centralCol, upperCol string,
) {
	if central && (lower || upper) {
		c.add(centralCol,
			"Central %s value cannot be defined with minimum value and "+
				"maximum value.", what)
	}
	if lower != upper {
		col := lowerCol
		if lower {
			col = upperCol
		}
		c.add(col,
			"Both minimum and maximimum %s values must be provided, not "+
				"just one.", what)
	}
}

// funcUses splits reported functional uses on ';', trims and lower-cases
// them and drops empty pieces.
func funcUses(c cells, multiple bool) []string {
	raw := c.row.Get("report_funcuse")
	if raw == "" {
		return nil
	}
	uses := SplitFuncUses(raw)
	var res []string
	for _, u := range uses {
		if utf8.RuneCountInString(u) > 255 {
			c.add("report_funcuse",
				"The reported functional use string is too long")
			continue
		}
		res = append(res, u)
	}
	if !multiple && len(res) > 1 {
		c.add("report_funcuse",
			"No more than one functional use is acceptable. "+
				"Reported uses: %v", res)
	}
	return res
}

// SplitFuncUses normalizes a ';'-separated list of reported functional
// uses. Duplicates are removed, the order of first appearance is kept.
func SplitFuncUses(s string) []string {
	var res []string
	seen := make(map[string]struct{})
	for _, u := range strings.Split(s, ";") {
		u = strings.ToLower(strings.TrimSpace(u))
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		res = append(res, u)
	}
	return res
}

func stats(c cells) []batch.StatValue {
	raw := c.row.Get("statistical_values")
	if raw == "" {
		return nil
	}
	res, errs := ParseStats(raw)
	for _, e := range errs {
		c.add("statistical_values", e)
	}
	return res
}

// ParseStats parses statistical values written as ';'-separated groups of
// ','-separated key=value pairs, for example
// "name=mean,value=1.2,value_type=M,stat_unit=ng/L". Values with errors
// are left out of the result.
func ParseStats(s string) ([]batch.StatValue, []string) {
	var res []batch.StatValue
	var errs []string
	for _, group := range strings.Split(s, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		kv := make(map[string]string)
		for _, pair := range strings.Split(group, ",") {
			k, val, ok := strings.Cut(pair, "=")
			if !ok {
				errs = append(errs, fmt.Sprintf("Cannot parse %q", pair))
				continue
			}
			kv[strings.TrimSpace(k)] = strings.TrimSpace(val)
		}

		var sv batch.StatValue
		var bad bool
		sv.ValueType = kv["value_type"]
		if sv.ValueType == "" {
			errs = append(errs, "value_type field is required")
			bad = true
		} else if _, ok := batch.StatValueTypes[sv.ValueType]; !ok {
			errs = append(errs, fmt.Sprintf(
				"Invalid value_type choice. %s is not one of the available "+
					"choices.", sv.ValueType))
			bad = true
		}
		if sv.Name = kv["name"]; sv.Name == "" {
			errs = append(errs, "name field is required")
			bad = true
		}
		if val := kv["value"]; val == "" {
			errs = append(errs, "value field is required")
			bad = true
		} else if f, err := strconv.ParseFloat(val, 64); err != nil {
			errs = append(errs, fmt.Sprintf("value %q is not a number", val))
			bad = true
		} else {
			sv.Value = f
		}
		if sv.StatUnit = kv["stat_unit"]; sv.StatUnit == "" {
			errs = append(errs, "stat_unit field is required")
			bad = true
		}
		if !bad {
			res = append(res, sv)
		}
	}
	return res, errs
}

// checkOneToOne reports rows that claim a different one-to-one value for
// a document than the first row of that document.
func checkOneToOne(rep *batch.Report, rows []batch.ExtractionRow, field string) {
	if field == "" {
		return
	}
	first := make(map[int64]string)
	var bad []int64
	var badRows []int
	for _, r := range rows {
		val := r.OneToOne(field)
		prev, ok := first[r.DocumentID]
		if !ok {
			first[r.DocumentID] = val
			continue
		}
		if prev != val {
			bad = append(bad, r.DocumentID)
			badRows = append(badRows, r.Row)
		}
	}
	if len(bad) > 0 {
		rep.AddRows(badRows, field,
			`The following "data_document_id"s got unexpected "%s"s `+
				`(must be 1:1): %s`, field, joinIDs(bad))
	}
}
