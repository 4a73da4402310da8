package batch

// Summary is the result of a committed batch.
type Summary struct {
	Kind   Kind   `json:"kind"             yaml:"kind"`
	Domain Domain `json:"domain,omitempty" yaml:"domain,omitempty"`

	// Fingerprint is a UUID v5 of the raw batch bytes.
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`

	Rows int `json:"rows" yaml:"rows"`

	// Committed counts rows stored as primary records.
	Committed int `json:"committed" yaml:"committed"`

	// Diverted counts rows stored as shadow records, DivertedIDs holds
	// their source identifiers.
	Diverted    int     `json:"diverted"               yaml:"diverted"`
	DivertedIDs []int64 `json:"diverted_ids,omitempty" yaml:"diverted_ids,omitempty"`

	// Created and Updated count canonical lookup entities.
	Created int `json:"created" yaml:"created"`
	Updated int `json:"updated" yaml:"updated"`

	ParentsCreated int `json:"parents_created" yaml:"parents_created"`
	ParentsUpdated int `json:"parents_updated" yaml:"parents_updated"`

	Associations int      `json:"associations"       yaml:"associations"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Duration of the ingestion in seconds.
	Duration float64 `json:"duration" yaml:"duration"`
}
