package contracts

import (
	"context"

	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/dto/requests"
	"providercard-service/internal/pkg/dto/responses"
)

type SearchUsecase interface {
	Search(ctx context.Context, request *requests.ProviderSearch) (*responses.ProviderSearch, error)
}

// DirectorySearchClient queries one directory source for a provider by NPI
// and normalizes whatever comes back. It never returns an error for source
// failures; those are folded into the result status.
type DirectorySearchClient interface {
	SearchByNPI(ctx context.Context, entry *models.RegistryEntry, npi string) *responses.SourceQueryResult
}
