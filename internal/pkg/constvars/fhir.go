package constvars

const (
	ResourcePractitioner        = "Practitioner"
	ResourcePractitionerRole    = "PractitionerRole"
	ResourceOrganization        = "Organization"
	ResourceLocation            = "Location"
	ResourceBundle              = "Bundle"
	ResourceCapabilityStatement = "CapabilityStatement"
)

const (
	// FhirSystemNPI is the identifier system for US National Provider Identifiers.
	FhirSystemNPI = "http://hl7.org/fhir/sid/us-npi"
	// FhirSystemNUCCTaxonomy is the specialty taxonomy used by US provider directories.
	FhirSystemNUCCTaxonomy = "http://nucc.org/provider-taxonomy"
)

// DaVinci PDEX Plan Net extension URLs carried by payer PractitionerRole resources.
const (
	FhirExtensionNetworkReference = "http://hl7.org/fhir/us/davinci-pdex-plan-net/StructureDefinition/network-reference"
	FhirExtensionNewPatients      = "http://hl7.org/fhir/us/davinci-pdex-plan-net/StructureDefinition/newpatients"
)

const (
	FhirNewPatientsCodeAccepting    = "newpt"
	FhirNewPatientsCodeExistingOnly = "existptonly"
)

const (
	FhirTelecomSystemPhone = "phone"
	FhirTelecomSystemFax   = "fax"
	FhirTelecomSystemEmail = "email"
)

const (
	// FhirMetadataPath is the conformance endpoint used by connectivity probes.
	FhirMetadataPath = "/metadata"
)
