package responses

import "time"

// SourceQueryResult is the per-directory outcome of a federated search.
// Exactly one of Record or Error is populated depending on Status.
type SourceQueryResult struct {
	Source           string                   `json:"source"`
	OrganizationName string                   `json:"organizationName"`
	Endpoint         string                   `json:"endpoint"`
	Status           string                   `json:"status"`
	Record           *CanonicalProviderRecord `json:"record,omitempty"`
	Error            string                   `json:"error,omitempty"`
	ElapsedMs        int64                    `json:"elapsedMs"`
	Comparison       *ComparisonResult        `json:"comparison,omitempty"`
	Staleness        *StalenessVerdict        `json:"staleness,omitempty"`
}

type SearchSummary struct {
	SourcesQueried    int   `json:"sourcesQueried"`
	Found             int   `json:"found"`
	NotFound          int   `json:"notFound"`
	AuthRequired      int   `json:"authRequired"`
	Errors            int   `json:"errors"`
	TotalSearchTimeMs int64 `json:"totalSearchTimeMs"`
	AverageLatencyMs  int64 `json:"averageLatencyMs"`
}

type ProviderSearch struct {
	NPI               string              `json:"npi"`
	SearchedAt        time.Time           `json:"searchedAt"`
	Summary           SearchSummary       `json:"summary"`
	Results           []SourceQueryResult `json:"results"`
	BaselineStaleness *StalenessVerdict   `json:"baselineStaleness,omitempty"`
}
