package responses

import "time"

// ProbeReport is the archived outcome of one availability probe.
type ProbeReport struct {
	EntryID          string    `json:"entry_id"`
	OrganizationName string    `json:"organization_name"`
	Endpoint         string    `json:"endpoint"`
	ProbedAt         time.Time `json:"probed_at"`
	StatusCode       int       `json:"status_code"`
	LatencyMs        int64     `json:"latency_ms"`
	Reachable        bool      `json:"reachable"`
	Error            string    `json:"error,omitempty"`
}
