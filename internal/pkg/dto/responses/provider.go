package responses

// CanonicalProviderRecord is the source-independent shape every directory
// payload is normalized into. Collection fields are always non-nil so the
// serialized form carries empty arrays rather than nulls.
type CanonicalProviderRecord struct {
	NPI                  string          `json:"npi"`
	FirstName            string          `json:"firstName"`
	MiddleName           string          `json:"middleName"`
	LastName             string          `json:"lastName"`
	Prefix               string          `json:"prefix,omitempty"`
	Suffix               string          `json:"suffix"`
	Gender               string          `json:"gender,omitempty"`
	Languages            []string        `json:"languages"`
	Specialties          []Specialty     `json:"specialties"`
	Addresses            []Address       `json:"addresses"`
	PhoneNumbers         []string        `json:"phoneNumbers"`
	Networks             []Network       `json:"networks"`
	AcceptingNewPatients *bool           `json:"acceptingNewPatients"`
	LastUpdated          string          `json:"lastUpdated,omitempty"`
	Identifiers          []Identifier    `json:"identifiers"`
	Qualifications       []Qualification `json:"qualifications"`
}

type Specialty struct {
	Code    string `json:"code"`
	Display string `json:"display"`
	System  string `json:"system,omitempty"`
}

type Address struct {
	Use        string `json:"use,omitempty"`
	Line       string `json:"line"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

type Network struct {
	Reference string `json:"reference"`
	Display   string `json:"display,omitempty"`
}

type Identifier struct {
	System string `json:"system"`
	Value  string `json:"value"`
}

type Qualification struct {
	Code    string `json:"code"`
	Display string `json:"display,omitempty"`
	Issuer  string `json:"issuer,omitempty"`
}

// NewCanonicalProviderRecord returns a record with every slice initialized.
func NewCanonicalProviderRecord(npi string) *CanonicalProviderRecord {
	return &CanonicalProviderRecord{
		NPI:            npi,
		Languages:      []string{},
		Specialties:    []Specialty{},
		Addresses:      []Address{},
		PhoneNumbers:   []string{},
		Networks:       []Network{},
		Identifiers:    []Identifier{},
		Qualifications: []Qualification{},
	}
}
