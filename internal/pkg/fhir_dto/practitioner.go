package fhir_dto

type Practitioner struct {
	ResourceType  string            `json:"resourceType"`
	ID            string            `json:"id,omitempty"`
	Meta          *Meta             `json:"meta,omitempty"`
	Active        bool              `json:"active,omitempty"`
	Identifier    []Identifier      `json:"identifier,omitempty"`
	Name          []HumanName       `json:"name,omitempty"`
	Telecom       []ContactPoint    `json:"telecom,omitempty"`
	Gender        string            `json:"gender,omitempty"`
	BirthDate     string            `json:"birthDate,omitempty"`
	Address       []Address         `json:"address,omitempty"`
	Qualification []Qualification   `json:"qualification,omitempty"`
	Communication []CodeableConcept `json:"communication,omitempty"`
	Extension     []Extension       `json:"extension,omitempty"`
}

// IdentifierValue returns the value of the first identifier carrying the
// given system, or an empty string.
func (p *Practitioner) IdentifierValue(system string) string {
	for _, id := range p.Identifier {
		if id.System == system {
			return id.Value
		}
	}
	return ""
}
