package contracts

import (
	"context"
	"time"

	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/dto/requests"
	"providercard-service/internal/pkg/dto/responses"
)

type RegistryUsecase interface {
	Upsert(ctx context.Context, request *requests.UpsertRegistryEntry) (*responses.RegistryEntry, error)
	FindAll(ctx context.Context, request *requests.ListRegistryEntries) ([]responses.RegistryEntry, int, error)
	FindEligible(ctx context.Context, includeInactive bool) ([]models.RegistryEntry, error)
	Deactivate(ctx context.Context, entryID string) error
}

// EligibilityCriteria narrows which registry entries the fan-out may query.
// Only public endpoints join anonymous searches; credentialed sources stay
// registered but are never fanned out to.
type EligibilityCriteria struct {
	Statuses         []string
	OrganizationType string
	RequiresAuth     bool
}

type RegistryRepository interface {
	FindByID(ctx context.Context, entryID string) (*models.RegistryEntry, error)
	FindByNaturalKey(ctx context.Context, organizationName, endpoint string) (*models.RegistryEntry, error)
	FindAll(ctx context.Context, status string, page, pageSize int) ([]models.RegistryEntry, int, error)
	FindEligible(ctx context.Context, criteria EligibilityCriteria) ([]models.RegistryEntry, error)
	Create(ctx context.Context, entry *models.RegistryEntry) (*models.RegistryEntry, error)
	Update(ctx context.Context, entry *models.RegistryEntry) error
	RecordProbeSuccess(ctx context.Context, entryID string, statusCode int, latencyMs int64, probedAt time.Time) error
	RecordProbeFailure(ctx context.Context, entryID string, statusCode int, probedAt time.Time, failureThreshold int) error
}
