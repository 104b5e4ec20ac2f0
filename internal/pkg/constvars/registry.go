package constvars

const (
	OrganizationTypeInsurancePayer = "insurance_payer"
	OrganizationTypeHealthSystem   = "health_system"
	OrganizationTypeStateBoard     = "state_board"
)

const (
	APITypeFHIR      = "fhir"
	APITypeREST      = "rest"
	APITypeSOAP      = "soap"
	APITypeWebScrape = "web_scrape"
	APITypeUnknown   = "unknown"
)

const (
	AuthTypeNone   = "none"
	AuthTypeOAuth  = "oauth"
	AuthTypeAPIKey = "api_key"
)

// Registry entry lifecycle. Entries are never hard-deleted; they move to
// inactive or error instead so the discovery audit trail survives.
const (
	RegistryStatusDiscovered = "discovered"
	RegistryStatusTesting    = "testing"
	RegistryStatusTested     = "tested"
	RegistryStatusActive     = "active"
	RegistryStatusVerified   = "verified"
	RegistryStatusInactive   = "inactive"
	RegistryStatusError      = "error"
)

const (
	DiscoveredByManual = "manual"
	DiscoveredByOracle = "discovery_oracle"
	DiscoveredByProbe  = "connectivity_probe"
)

const (
	MongoCollectionRegistryEntries = "registry_entries"
	MongoCollectionBaselineRecords = "baseline_records"
)

const (
	RedisKeyEligibleEntriesPrefix = "registry:eligible:"
	RedisKeyProbeWorkerLock       = "probe:worker:lock"
)
