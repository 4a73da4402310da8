package schema

// Classification method codes.
const (
	MethodManual         = "MA"
	MethodRuleBased      = "RU"
	MethodManualBatch    = "MB"
	MethodBulkAssignment = "BA"
	MethodAutomatic      = "AU"
)

// ClassificationMethods returns the seeded classification methods ordered
// by rank. Lower rank is more authoritative.
func ClassificationMethods() []ClassificationMethod {
	return []ClassificationMethod{
		{Code: MethodManual, Name: "Manual", Rank: 1},
		{Code: MethodRuleBased, Name: "Rule Based", Rank: 2},
		{Code: MethodManualBatch, Name: "Manual Batch", Rank: 3},
		{Code: MethodBulkAssignment, Name: "Bulk Assignment", Rank: 4},
		{Code: MethodAutomatic, Name: "Automatic", Rank: 5},
	}
}

// GroupTypes returns the seeded group types.
func GroupTypes() []GroupType {
	return []GroupType{
		{Code: "CO", Title: "Composition"},
		{Code: "UN", Title: "Unidentified"},
		{Code: "FU", Title: "Functional use"},
		{Code: "CP", Title: "Chemical presence list"},
		{Code: "LM", Title: "Literature monitoring"},
		{Code: "HP", Title: "Habits and practices"},
		{Code: "HH", Title: "Household survey"},
	}
}
