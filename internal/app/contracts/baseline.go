package contracts

import (
	"context"

	"providercard-service/internal/app/models"
)

type BaselineRepository interface {
	FindByNPI(ctx context.Context, npi string) (*models.BaselineRecord, error)
	Upsert(ctx context.Context, record *models.BaselineRecord) error
}
