package fhir

import (
	"strings"

	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/dto/responses"
	"providercard-service/internal/pkg/fhir_dto"
)

// normalizePractitioner maps a FHIR Practitioner into the canonical record.
// Directories fill these resources unevenly, so every field is optional.
func normalizePractitioner(practitioner *fhir_dto.Practitioner, npi string) *responses.CanonicalProviderRecord {
	record := responses.NewCanonicalProviderRecord(npi)

	if name := pickName(practitioner.Name); name != nil {
		record.LastName = name.Family
		if len(name.Given) > 0 {
			record.FirstName = name.Given[0]
		}
		if len(name.Given) > 1 {
			record.MiddleName = strings.Join(name.Given[1:], " ")
		}
		if len(name.Prefix) > 0 {
			record.Prefix = strings.Join(name.Prefix, " ")
		}
		if len(name.Suffix) > 0 {
			record.Suffix = strings.Join(name.Suffix, " ")
		}
	}

	record.Gender = practitioner.Gender

	for _, communication := range practitioner.Communication {
		if language := codeableConceptLabel(&communication); language != "" {
			record.Languages = append(record.Languages, language)
		}
	}

	for _, telecom := range practitioner.Telecom {
		if telecom.System == constvars.FhirTelecomSystemPhone && telecom.Value != "" {
			record.PhoneNumbers = append(record.PhoneNumbers, telecom.Value)
		}
	}

	for _, address := range practitioner.Address {
		record.Addresses = append(record.Addresses, convertAddress(&address))
	}

	for _, identifier := range practitioner.Identifier {
		record.Identifiers = append(record.Identifiers, responses.Identifier{
			System: identifier.System,
			Value:  identifier.Value,
		})
	}

	for _, qualification := range practitioner.Qualification {
		converted := responses.Qualification{Issuer: qualification.Issuer.Display}
		if len(qualification.Code.Coding) > 0 {
			converted.Code = qualification.Code.Coding[0].Code
			converted.Display = qualification.Code.Coding[0].Display
		} else {
			converted.Display = qualification.Code.Text
		}
		record.Qualifications = append(record.Qualifications, converted)
	}

	if practitioner.Meta != nil {
		record.LastUpdated = practitioner.Meta.LastUpdated
	}

	return record
}

// pickName prefers the official name, then usual, then the first present.
func pickName(names []fhir_dto.HumanName) *fhir_dto.HumanName {
	for i := range names {
		if names[i].Use == "official" {
			return &names[i]
		}
	}
	for i := range names {
		if names[i].Use == "usual" {
			return &names[i]
		}
	}
	if len(names) > 0 {
		return &names[0]
	}
	return nil
}

// codeableConceptLabel prefers the first coding display, then the concept
// text, then the raw code.
func codeableConceptLabel(concept *fhir_dto.CodeableConcept) string {
	for _, coding := range concept.Coding {
		if coding.Display != "" {
			return coding.Display
		}
	}
	if concept.Text != "" {
		return concept.Text
	}
	for _, coding := range concept.Coding {
		if coding.Code != "" {
			return coding.Code
		}
	}
	return ""
}

func convertAddress(address *fhir_dto.Address) responses.Address {
	return responses.Address{
		Use:        address.Use,
		Line:       strings.Join(address.Line, " "),
		City:       address.City,
		State:      address.State,
		PostalCode: address.PostalCode,
	}
}

// mergePractitionerRole folds plan-net data from one PractitionerRole into
// the record: specialties, network affiliations, the accepting-new-patients
// extension, and any role-level phone numbers not already present.
func mergePractitionerRole(record *responses.CanonicalProviderRecord, role *fhir_dto.PractitionerRole) {
	for _, specialty := range role.Specialty {
		for _, coding := range specialty.Coding {
			record.Specialties = append(record.Specialties, responses.Specialty{
				Code:    coding.Code,
				Display: coding.Display,
				System:  coding.System,
			})
		}
	}

	if networkExt := role.FindExtension(constvars.FhirExtensionNetworkReference); networkExt != nil && networkExt.ValueReference != nil {
		if !containsNetwork(record.Networks, networkExt.ValueReference.Reference) {
			record.Networks = append(record.Networks, responses.Network{
				Reference: networkExt.ValueReference.Reference,
				Display:   networkExt.ValueReference.Display,
			})
		}
	}

	if newPatientsExt := role.FindExtension(constvars.FhirExtensionNewPatients); newPatientsExt != nil {
		if accepting := extractAcceptingNewPatients(newPatientsExt); accepting != nil {
			record.AcceptingNewPatients = accepting
		}
	}

	for _, telecom := range role.Telecom {
		if telecom.System != constvars.FhirTelecomSystemPhone || telecom.Value == "" {
			continue
		}
		if !containsString(record.PhoneNumbers, telecom.Value) {
			record.PhoneNumbers = append(record.PhoneNumbers, telecom.Value)
		}
	}

	if role.Meta != nil && role.Meta.LastUpdated != "" && record.LastUpdated == "" {
		record.LastUpdated = role.Meta.LastUpdated
	}
}

// extractAcceptingNewPatients reads the nested acceptingPatients code of the
// DaVinci newpatients extension. Unknown codes leave the flag unset.
func extractAcceptingNewPatients(ext *fhir_dto.Extension) *bool {
	for _, nested := range ext.Extension {
		if nested.ValueCodeableConcept == nil {
			continue
		}
		for _, coding := range nested.ValueCodeableConcept.Coding {
			switch coding.Code {
			case constvars.FhirNewPatientsCodeAccepting:
				accepting := true
				return &accepting
			case constvars.FhirNewPatientsCodeExistingOnly:
				accepting := false
				return &accepting
			}
		}
	}
	return nil
}

// dedupeSpecialties keeps the first occurrence of each specialty code and
// discards codings that carry neither a code nor a display.
func dedupeSpecialties(specialties []responses.Specialty) []responses.Specialty {
	seen := make(map[string]bool, len(specialties))
	deduped := specialties[:0]
	for _, specialty := range specialties {
		if specialty.Code == "" && specialty.Display == "" {
			continue
		}
		key := specialty.Code
		if key == "" {
			key = specialty.Display
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, specialty)
	}
	return deduped
}

func containsNetwork(networks []responses.Network, reference string) bool {
	for _, network := range networks {
		if network.Reference == reference {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
