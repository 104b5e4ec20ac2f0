package constvars

// Source query outcomes. Exactly one of these is set per searched source;
// success is the only status that carries provider data.
const (
	SourceStatusSuccess      = "success"
	SourceStatusNotFound     = "not_found"
	SourceStatusAuthRequired = "auth_required"
	SourceStatusError        = "error"
)

const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Staleness tiers for baseline records, in days.
const (
	StaleAfterDays     = 180
	NeedsSyncAfterDays = 365
)

const (
	SearchUserAgent = "ProviderCard-Search/1.0"
)
