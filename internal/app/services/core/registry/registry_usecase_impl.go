package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"providercard-service/internal/app/config"
	"providercard-service/internal/app/contracts"
	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/dto/requests"
	"providercard-service/internal/pkg/dto/responses"
	"providercard-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type registryUsecase struct {
	RegistryRepository contracts.RegistryRepository
	RedisRepository    contracts.RedisRepository
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	registryUsecaseInstance contracts.RegistryUsecase
	onceRegistryUsecase     sync.Once
)

// eligibleStatuses are the lifecycle states a source must be in before the
// fan-out will query it. Inactive entries join only on explicit request.
var eligibleStatuses = []string{
	constvars.RegistryStatusTested,
	constvars.RegistryStatusActive,
	constvars.RegistryStatusVerified,
}

func NewRegistryUsecase(
	registryRepository contracts.RegistryRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.RegistryUsecase {
	onceRegistryUsecase.Do(func() {
		registryUsecaseInstance = &registryUsecase{
			RegistryRepository: registryRepository,
			RedisRepository:    redisRepository,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
	})
	return registryUsecaseInstance
}

func (uc *registryUsecase) Upsert(ctx context.Context, request *requests.UpsertRegistryEntry) (*responses.RegistryEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("registryUsecase.Upsert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationNameKey, request.OrganizationName),
	)

	existing, err := uc.RegistryRepository.FindByNaturalKey(ctx, request.OrganizationName, request.Endpoint)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// re-registration refreshes metadata but never resets lifecycle
		// status or probe telemetry
		if request.OrganizationType != "" {
			existing.OrganizationType = request.OrganizationType
		}
		if request.APIType != "" {
			existing.APIType = request.APIType
		}
		if request.AuthType != "" {
			existing.AuthType = request.AuthType
		}
		if request.Notes != "" {
			existing.Notes = request.Notes
		}
		if request.RequiresAuth != nil {
			existing.RequiresAuth = *request.RequiresAuth
		}
		if request.SupportsIdentifierSearch != nil {
			existing.SupportsIdentifierSearch = *request.SupportsIdentifierSearch
		}
		if request.SupportsNameSearch != nil {
			existing.SupportsNameSearch = *request.SupportsNameSearch
		}
		if err := uc.RegistryRepository.Update(ctx, existing); err != nil {
			return nil, err
		}
		uc.invalidateEligibleCache(ctx)
		response := existing.ConvertIntoResponse()
		return &response, nil
	}

	entry := &models.RegistryEntry{
		OrganizationName: request.OrganizationName,
		Endpoint:         request.Endpoint,
		OrganizationType: request.OrganizationType,
		APIType:          request.APIType,
		AuthType:         request.AuthType,
		Status:           constvars.RegistryStatusDiscovered,
		DiscoveredBy:     request.DiscoveredBy,
		Notes:            request.Notes,
	}
	if entry.OrganizationType == "" {
		entry.OrganizationType = constvars.OrganizationTypeInsurancePayer
	}
	if entry.APIType == "" {
		entry.APIType = constvars.APITypeFHIR
	}
	if entry.AuthType == "" {
		entry.AuthType = constvars.AuthTypeNone
	}
	if entry.DiscoveredBy == "" {
		entry.DiscoveredBy = constvars.DiscoveredByManual
	}
	// credentialed auth implies the endpoint is not publicly queryable
	entry.RequiresAuth = entry.AuthType != constvars.AuthTypeNone
	if request.RequiresAuth != nil {
		entry.RequiresAuth = *request.RequiresAuth
	}
	entry.SupportsIdentifierSearch = true
	if request.SupportsIdentifierSearch != nil {
		entry.SupportsIdentifierSearch = *request.SupportsIdentifierSearch
	}
	if request.SupportsNameSearch != nil {
		entry.SupportsNameSearch = *request.SupportsNameSearch
	}

	created, err := uc.RegistryRepository.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	uc.invalidateEligibleCache(ctx)

	response := created.ConvertIntoResponse()
	return &response, nil
}

func (uc *registryUsecase) FindAll(ctx context.Context, request *requests.ListRegistryEntries) ([]responses.RegistryEntry, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("registryUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	entries, total, err := uc.RegistryRepository.FindAll(ctx, request.Status, request.Page, request.PageSize)
	if err != nil {
		return nil, 0, err
	}

	response := make([]responses.RegistryEntry, len(entries))
	for i := range entries {
		response[i] = entries[i].ConvertIntoResponse()
	}
	return response, total, nil
}

// FindEligible returns the sources the fan-out should query, cached in redis
// for a short TTL since the registry changes far less often than searches run.
func (uc *registryUsecase) FindEligible(ctx context.Context, includeInactive bool) ([]models.RegistryEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("registryUsecase.FindEligible called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	cacheKey := uc.eligibleCacheKey(includeInactive)
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Error("registryUsecase.FindEligible error retrieving data from Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	var entries []models.RegistryEntry
	if cached != "" {
		if err := json.Unmarshal([]byte(cached), &entries); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return entries, nil
	}

	statuses := eligibleStatuses
	if includeInactive {
		statuses = append(append([]string{}, eligibleStatuses...), constvars.RegistryStatusInactive)
	}
	criteria := contracts.EligibilityCriteria{
		Statuses:         statuses,
		OrganizationType: constvars.OrganizationTypeInsurancePayer,
		RequiresAuth:     false,
	}
	entries, err = uc.RegistryRepository.FindEligible(ctx, criteria)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(uc.InternalConfig.Search.RegistryCacheTTLInSeconds) * time.Second
	if err := uc.RedisRepository.Set(ctx, cacheKey, entries, ttl); err != nil {
		uc.Log.Error("registryUsecase.FindEligible error caching data in Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("registryUsecase.FindEligible succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(entries)),
	)
	return entries, nil
}

func (uc *registryUsecase) Deactivate(ctx context.Context, entryID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("registryUsecase.Deactivate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entryID),
	)

	entry, err := uc.RegistryRepository.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return exceptions.ErrRegistryEntryNotFound(fmt.Errorf("registry entry %s not found", entryID))
	}

	entry.Status = constvars.RegistryStatusInactive
	if err := uc.RegistryRepository.Update(ctx, entry); err != nil {
		return err
	}
	uc.invalidateEligibleCache(ctx)
	return nil
}

func (uc *registryUsecase) eligibleCacheKey(includeInactive bool) string {
	if includeInactive {
		return constvars.RedisKeyEligibleEntriesPrefix + "all"
	}
	return constvars.RedisKeyEligibleEntriesPrefix + "active"
}

func (uc *registryUsecase) invalidateEligibleCache(ctx context.Context) {
	for _, suffix := range []string{"active", "all"} {
		if err := uc.RedisRepository.Delete(ctx, constvars.RedisKeyEligibleEntriesPrefix+suffix); err != nil {
			uc.Log.Error("registryUsecase.invalidateEligibleCache error deleting cache key",
				zap.String(constvars.LoggingRedisKey, constvars.RedisKeyEligibleEntriesPrefix+suffix),
				zap.Error(err),
			)
		}
	}
}
