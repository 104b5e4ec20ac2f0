package models

import (
	"time"

	"providercard-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistryEntry is a directory source known to the engine. The natural key
// is the (OrganizationName, Endpoint) pair; upserts by that pair must not
// reset probe telemetry or lifecycle status.
type RegistryEntry struct {
	ID                       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationName         string             `json:"organization_name" bson:"organization_name"`
	Endpoint                 string             `json:"endpoint" bson:"endpoint"`
	OrganizationType         string             `json:"organization_type" bson:"organization_type"`
	APIType                  string             `json:"api_type" bson:"api_type"`
	AuthType                 string             `json:"auth_type" bson:"auth_type"`
	RequiresAuth             bool               `json:"requires_auth" bson:"requires_auth"`
	SupportsIdentifierSearch bool               `json:"supports_identifier_search" bson:"supports_identifier_search"`
	SupportsNameSearch       bool               `json:"supports_name_search" bson:"supports_name_search"`
	Status                   string             `json:"status" bson:"status"`
	DiscoveredBy             string             `json:"discovered_by" bson:"discovered_by"`
	Notes                    string             `json:"notes,omitempty" bson:"notes,omitempty"`
	LastProbeAt              *time.Time         `json:"last_probe_at,omitempty" bson:"last_probe_at,omitempty"`
	LastProbeStatusCode      int                `json:"last_probe_status_code,omitempty" bson:"last_probe_status_code,omitempty"`
	LastProbeLatencyMs       int64              `json:"last_probe_latency_ms,omitempty" bson:"last_probe_latency_ms,omitempty"`
	LastSuccessAt            *time.Time         `json:"last_success_at,omitempty" bson:"last_success_at,omitempty"`
	AvgResponseTimeMs        int64              `json:"avg_response_time_ms,omitempty" bson:"avg_response_time_ms,omitempty"`
	ConsecutiveFailures      int                `json:"consecutive_failures" bson:"consecutive_failures"`
	CreatedAt                time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt                time.Time          `json:"updated_at" bson:"updated_at"`
}

func (e *RegistryEntry) ConvertIntoResponse() responses.RegistryEntry {
	return responses.RegistryEntry{
		ID:                       e.ID.Hex(),
		OrganizationName:         e.OrganizationName,
		Endpoint:                 e.Endpoint,
		OrganizationType:         e.OrganizationType,
		APIType:                  e.APIType,
		AuthType:                 e.AuthType,
		RequiresAuth:             e.RequiresAuth,
		SupportsIdentifierSearch: e.SupportsIdentifierSearch,
		SupportsNameSearch:       e.SupportsNameSearch,
		Status:                   e.Status,
		DiscoveredBy:             e.DiscoveredBy,
		Notes:                    e.Notes,
		LastProbeAt:              e.LastProbeAt,
		LastProbeStatusCode:      e.LastProbeStatusCode,
		LastProbeLatencyMs:       e.LastProbeLatencyMs,
		LastSuccessAt:            e.LastSuccessAt,
		AvgResponseTimeMs:        e.AvgResponseTimeMs,
		ConsecutiveFailures:      e.ConsecutiveFailures,
		CreatedAt:                e.CreatedAt,
		UpdatedAt:                e.UpdatedAt,
	}
}
