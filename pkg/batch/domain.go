package batch

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDomain means the group type of a data group has no
// extraction records.
var ErrUnsupportedDomain = errors.New("unsupported extraction domain")

// Domain is the extraction domain of a batch. It selects the document and
// chemical subtype tables.
type Domain string

const (
	DomainComposition  Domain = "CO"
	DomainUnidentified Domain = "UN"
	DomainFunctional   Domain = "FU"
	DomainPresence     Domain = "CP"
	DomainLiterature   Domain = "LM"
)

// DomainSpec is one entry of the dispatch table.
type DomainSpec struct {
	Domain Domain
	Header []string

	// DocTable extends extracted_texts, empty when the domain has no
	// document subtype.
	DocTable string

	// ChemTable extends raw_chems.
	ChemTable string

	// OneToOne is the field each document must map to exactly once, empty
	// when no such restriction exists.
	OneToOne string

	Composition  bool
	FuncUses     bool
	DetectedFlag bool
}

var domains = map[Domain]DomainSpec{
	DomainComposition: {
		Domain:      DomainComposition,
		Header:      compositionHeader,
		ChemTable:   "extracted_compositions",
		OneToOne:    "prod_name",
		Composition: true,
		FuncUses:    true,
	},
	DomainUnidentified: {
		Domain:      DomainUnidentified,
		Header:      compositionHeader,
		ChemTable:   "extracted_compositions",
		OneToOne:    "prod_name",
		Composition: true,
		FuncUses:    true,
	},
	DomainFunctional: {
		Domain:    DomainFunctional,
		Header:    functionalUseHeader,
		ChemTable: "extracted_functional_uses",
		OneToOne:  "prod_name",
		FuncUses:  true,
	},
	DomainPresence: {
		Domain:       DomainPresence,
		Header:       presenceHeader,
		DocTable:     "extracted_cpcats",
		ChemTable:    "extracted_list_presences",
		OneToOne:     "cat_code",
		FuncUses:     true,
		DetectedFlag: true,
	},
	DomainLiterature: {
		Domain:       DomainLiterature,
		Header:       literatureHeader,
		DocTable:     "extracted_lmdocs",
		ChemTable:    "extracted_lmrecs",
		DetectedFlag: true,
	},
}

// ParseDomain resolves the domain from a group type code.
func ParseDomain(groupType string) (Domain, error) {
	d := Domain(groupType)
	if _, ok := domains[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDomain, groupType)
	}
	return d, nil
}

// Spec returns the dispatch entry of the domain. Unknown domains give a
// zero DomainSpec.
func (d Domain) Spec() DomainSpec {
	return domains[d]
}
