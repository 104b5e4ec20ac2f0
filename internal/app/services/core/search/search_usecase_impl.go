package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"providercard-service/internal/app/contracts"
	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/dto/requests"
	"providercard-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

type searchUsecase struct {
	RegistryUsecase       contracts.RegistryUsecase
	BaselineRepository    contracts.BaselineRepository
	DirectoryClient       contracts.DirectorySearchClient
	ReconciliationService contracts.ReconciliationService
	Log                   *zap.Logger
}

var (
	searchUsecaseInstance contracts.SearchUsecase
	onceSearchUsecase     sync.Once
)

func NewSearchUsecase(
	registryUsecase contracts.RegistryUsecase,
	baselineRepository contracts.BaselineRepository,
	directoryClient contracts.DirectorySearchClient,
	reconciliationService contracts.ReconciliationService,
	logger *zap.Logger,
) contracts.SearchUsecase {
	onceSearchUsecase.Do(func() {
		searchUsecaseInstance = &searchUsecase{
			RegistryUsecase:       registryUsecase,
			BaselineRepository:    baselineRepository,
			DirectoryClient:       directoryClient,
			ReconciliationService: reconciliationService,
			Log:                   logger,
		}
	})
	return searchUsecaseInstance
}

// Search fans the NPI query out to every eligible directory concurrently and
// assembles the per-source results in registry order. One slow or broken
// source degrades only its own slot in the result list.
func (uc *searchUsecase) Search(ctx context.Context, request *requests.ProviderSearch) (*responses.ProviderSearch, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("searchUsecase.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNPIKey, request.NPI),
	)

	entries, err := uc.RegistryUsecase.FindEligible(ctx, request.IncludeInactive)
	if err != nil {
		return nil, err
	}

	// baseline comparison is reserved for authenticated callers; anonymous
	// searches still get the federated results
	callerID, _ := ctx.Value(constvars.CONTEXT_CALLER_ID_KEY).(string)
	var baseline *models.BaselineRecord
	if callerID != "" {
		baseline, err = uc.BaselineRepository.FindByNPI(ctx, request.NPI)
		if err != nil {
			uc.Log.Error("searchUsecase.Search error loading baseline record",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	searchedAt := time.Now().UTC()
	results := make([]responses.SourceQueryResult, len(entries))
	var wg sync.WaitGroup
	for i := range entries {
		wg.Add(1)
		go func(slot int, entry models.RegistryEntry) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					uc.Log.Error("searchUsecase.Search panic while querying source",
						zap.String(constvars.LoggingRequestIDKey, requestID),
						zap.String(constvars.LoggingOrganizationNameKey, entry.OrganizationName),
						zap.Any("panic", r),
					)
					results[slot] = responses.SourceQueryResult{
						Source:           entry.ID.Hex(),
						OrganizationName: entry.OrganizationName,
						Endpoint:         entry.Endpoint,
						Status:           constvars.SourceStatusError,
						Error:            fmt.Sprintf("panic: %v", r),
					}
				}
			}()
			results[slot] = *uc.DirectoryClient.SearchByNPI(ctx, &entry, request.NPI)
		}(i, entries[i])
	}
	wg.Wait()

	summary := responses.SearchSummary{
		SourcesQueried:    len(results),
		TotalSearchTimeMs: time.Since(searchedAt).Milliseconds(),
	}
	var latencySum int64
	for i := range results {
		latencySum += results[i].ElapsedMs
		switch results[i].Status {
		case constvars.SourceStatusSuccess:
			summary.Found++
		case constvars.SourceStatusNotFound:
			summary.NotFound++
		case constvars.SourceStatusAuthRequired:
			summary.AuthRequired++
		default:
			summary.Errors++
		}

		if results[i].Record == nil {
			continue
		}
		results[i].Staleness = uc.ReconciliationService.EvaluateStaleness(results[i].Record)
		if baseline != nil {
			results[i].Comparison = uc.ReconciliationService.Compare(baseline.ConvertIntoCanonical(), results[i].Record)
		}
	}
	if len(results) > 0 {
		summary.AverageLatencyMs = latencySum / int64(len(results))
	}

	var baselineStaleness *responses.StalenessVerdict
	if baseline != nil {
		baselineStaleness = uc.ReconciliationService.EvaluateStaleness(baseline.ConvertIntoCanonical())
	}

	uc.Log.Info("searchUsecase.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNPIKey, request.NPI),
		zap.Int(constvars.LoggingSourceCountKey, summary.SourcesQueried),
		zap.Int("found", summary.Found),
	)

	return &responses.ProviderSearch{
		NPI:               request.NPI,
		SearchedAt:        searchedAt,
		Summary:           summary,
		Results:           results,
		BaselineStaleness: baselineStaleness,
	}, nil
}
