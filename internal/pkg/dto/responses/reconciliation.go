package responses

type Discrepancy struct {
	Field          string `json:"field"`
	BaselineValue  string `json:"baselineValue"`
	SourceValue    string `json:"sourceValue"`
	Severity       string `json:"severity"`
	Recommendation string `json:"recommendation"`
}

type ComparisonResult struct {
	FieldsCompared int            `json:"fieldsCompared"`
	Discrepancies  []Discrepancy  `json:"discrepancies"`
	MatchScore     float64        `json:"matchScore"`
	SeverityCounts map[string]int `json:"severityCounts"`
}

type StalenessVerdict struct {
	LastUpdated    string `json:"lastUpdated,omitempty"`
	AgeDays        int    `json:"ageDays"`
	Stale          bool   `json:"stale"`
	NeedsSync      bool   `json:"needsSync"`
	Recommendation string `json:"recommendation"`
}
