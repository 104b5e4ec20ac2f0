package responses

import "time"

type RegistryEntry struct {
	ID                       string     `json:"id"`
	OrganizationName         string     `json:"organization_name"`
	Endpoint                 string     `json:"endpoint"`
	OrganizationType         string     `json:"organization_type"`
	APIType                  string     `json:"api_type"`
	AuthType                 string     `json:"auth_type"`
	RequiresAuth             bool       `json:"requires_auth"`
	SupportsIdentifierSearch bool       `json:"supports_identifier_search"`
	SupportsNameSearch       bool       `json:"supports_name_search"`
	Status                   string     `json:"status"`
	DiscoveredBy             string     `json:"discovered_by"`
	Notes                    string     `json:"notes,omitempty"`
	LastProbeAt              *time.Time `json:"last_probe_at,omitempty"`
	LastProbeStatusCode      int        `json:"last_probe_status_code,omitempty"`
	LastProbeLatencyMs       int64      `json:"last_probe_latency_ms,omitempty"`
	LastSuccessAt            *time.Time `json:"last_success_at,omitempty"`
	AvgResponseTimeMs        int64      `json:"avg_response_time_ms,omitempty"`
	ConsecutiveFailures      int        `json:"consecutive_failures"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}
