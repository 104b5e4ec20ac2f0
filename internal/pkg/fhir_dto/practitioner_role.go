package fhir_dto

type PractitionerRole struct {
	ResourceType string            `json:"resourceType,omitempty"`
	ID           string            `json:"id,omitempty"`
	Meta         *Meta             `json:"meta,omitempty"`
	Active       bool              `json:"active,omitempty"`
	Practitioner Reference         `json:"practitioner,omitempty"`
	Organization Reference         `json:"organization,omitempty"`
	Code         []CodeableConcept `json:"code,omitempty"`
	Specialty    []CodeableConcept `json:"specialty,omitempty"`
	Location     []Reference       `json:"location,omitempty"`
	Telecom      []ContactPoint    `json:"telecom,omitempty"`
	Extension    []Extension       `json:"extension,omitempty"`
	Period       Period            `json:"period,omitempty"`
}

// FindExtension returns the first top-level extension with the given URL.
func (pr *PractitionerRole) FindExtension(url string) *Extension {
	for i := range pr.Extension {
		if pr.Extension[i].Url == url {
			return &pr.Extension[i]
		}
	}
	return nil
}
