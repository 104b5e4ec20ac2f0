package requests

// UpsertRegistryEntry registers or updates a directory source. Entries are
// keyed by the (organization_name, endpoint) pair, so repeated submissions
// update metadata without resetting probe telemetry.
type UpsertRegistryEntry struct {
	OrganizationName         string `json:"organization_name" validate:"required"`
	Endpoint                 string `json:"endpoint" validate:"required,url"`
	OrganizationType         string `json:"organization_type" validate:"omitempty,oneof=insurance_payer health_system state_board"`
	APIType                  string `json:"api_type" validate:"omitempty,oneof=fhir rest soap web_scrape unknown"`
	AuthType                 string `json:"auth_type" validate:"omitempty,oneof=none oauth api_key"`
	DiscoveredBy             string `json:"discovered_by" validate:"omitempty,oneof=manual discovery_oracle connectivity_probe"`
	RequiresAuth             *bool  `json:"requires_auth"`
	SupportsIdentifierSearch *bool  `json:"supports_identifier_search"`
	SupportsNameSearch       *bool  `json:"supports_name_search"`
	Notes                    string `json:"notes"`
}

type ListRegistryEntries struct {
	Pagination
	Status string `json:"status" validate:"omitempty,oneof=discovered testing tested active verified inactive error"`
}
