package requests

// ProviderSearch is the body of POST /provider-search. NPI must be exactly
// ten digits; validation rejects anything else before any network call.
type ProviderSearch struct {
	NPI             string `json:"npi" validate:"required,npi"`
	IncludeInactive bool   `json:"include_inactive"`
}
