package fhir_dto

import "encoding/json"

type FHIRBundle struct {
	ResourceType string  `json:"resourceType"`
	ID           string  `json:"id,omitempty"`
	Type         string  `json:"type,omitempty"`
	Total        int     `json:"total,omitempty"`
	Entry        []Entry `json:"entry,omitempty"`
}

type Entry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource"`
}

// ResourceEnvelope is decoded first to discover what a directory server
// actually returned before committing to a full resource decode.
type ResourceEnvelope struct {
	ResourceType string `json:"resourceType"`
}
