package search

import (
	"context"
	"errors"
	"testing"

	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/dto/requests"
	"providercard-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubRegistryUsecase struct {
	entries []models.RegistryEntry
	err     error
}

func (s *stubRegistryUsecase) Upsert(ctx context.Context, request *requests.UpsertRegistryEntry) (*responses.RegistryEntry, error) {
	return nil, nil
}

func (s *stubRegistryUsecase) FindAll(ctx context.Context, request *requests.ListRegistryEntries) ([]responses.RegistryEntry, int, error) {
	return nil, 0, nil
}

func (s *stubRegistryUsecase) FindEligible(ctx context.Context, includeInactive bool) ([]models.RegistryEntry, error) {
	return s.entries, s.err
}

func (s *stubRegistryUsecase) Deactivate(ctx context.Context, entryID string) error {
	return nil
}

type stubBaselineRepository struct {
	record *models.BaselineRecord
	err    error

	findCalls int
}

func (s *stubBaselineRepository) FindByNPI(ctx context.Context, npi string) (*models.BaselineRecord, error) {
	s.findCalls++
	return s.record, s.err
}

func (s *stubBaselineRepository) Upsert(ctx context.Context, record *models.BaselineRecord) error {
	return nil
}

type stubDirectoryClient struct {
	resultsByOrg map[string]*responses.SourceQueryResult
	panicOrgs    map[string]bool
}

func (s *stubDirectoryClient) SearchByNPI(ctx context.Context, entry *models.RegistryEntry, npi string) *responses.SourceQueryResult {
	if s.panicOrgs[entry.OrganizationName] {
		panic("boom")
	}
	if result, ok := s.resultsByOrg[entry.OrganizationName]; ok {
		copied := *result
		copied.Source = entry.ID.Hex()
		copied.OrganizationName = entry.OrganizationName
		copied.Endpoint = entry.Endpoint
		return &copied
	}
	return &responses.SourceQueryResult{
		Source:           entry.ID.Hex(),
		OrganizationName: entry.OrganizationName,
		Endpoint:         entry.Endpoint,
		Status:           constvars.SourceStatusNotFound,
	}
}

type stubReconciliationService struct {
	compareCalls   int
	stalenessCalls int
}

func (s *stubReconciliationService) Compare(baseline, source *responses.CanonicalProviderRecord) *responses.ComparisonResult {
	s.compareCalls++
	return &responses.ComparisonResult{MatchScore: 100.0}
}

func (s *stubReconciliationService) EvaluateStaleness(record *responses.CanonicalProviderRecord) *responses.StalenessVerdict {
	s.stalenessCalls++
	return &responses.StalenessVerdict{AgeDays: 1}
}

func makeEntries(names ...string) []models.RegistryEntry {
	entries := make([]models.RegistryEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, models.RegistryEntry{
			ID:               primitive.NewObjectID(),
			OrganizationName: name,
			Endpoint:         "https://fhir.example.com/" + name,
			Status:           constvars.RegistryStatusActive,
		})
	}
	return entries
}

func successResult(npi string) *responses.SourceQueryResult {
	return &responses.SourceQueryResult{
		Status: constvars.SourceStatusSuccess,
		Record: responses.NewCanonicalProviderRecord(npi),
	}
}

func newUsecaseForTest(
	registry *stubRegistryUsecase,
	baseline *stubBaselineRepository,
	client *stubDirectoryClient,
	reconciliation *stubReconciliationService,
) *searchUsecase {
	return &searchUsecase{
		RegistryUsecase:       registry,
		BaselineRepository:    baseline,
		DirectoryClient:       client,
		ReconciliationService: reconciliation,
		Log:                   zap.NewNop(),
	}
}

// authedContext carries a caller identity the way the auth middleware does.
func authedContext() context.Context {
	return context.WithValue(context.Background(), constvars.CONTEXT_CALLER_ID_KEY, "user-1")
}

func TestSearch(t *testing.T) {
	request := &requests.ProviderSearch{NPI: "1234567890"}

	t.Run("results follow registry order", func(t *testing.T) {
		entries := makeEntries("Aetna", "Cigna", "Humana")
		client := &stubDirectoryClient{
			resultsByOrg: map[string]*responses.SourceQueryResult{
				"Aetna":  successResult(request.NPI),
				"Cigna":  {Status: constvars.SourceStatusAuthRequired},
				"Humana": successResult(request.NPI),
			},
		}
		uc := newUsecaseForTest(
			&stubRegistryUsecase{entries: entries},
			&stubBaselineRepository{},
			client,
			&stubReconciliationService{},
		)

		result, err := uc.Search(context.Background(), request)

		assert.NoError(t, err)
		assert.Len(t, result.Results, 3)
		assert.Equal(t, "Aetna", result.Results[0].OrganizationName)
		assert.Equal(t, "Cigna", result.Results[1].OrganizationName)
		assert.Equal(t, "Humana", result.Results[2].OrganizationName)
	})

	t.Run("summary tallies per-source outcomes", func(t *testing.T) {
		entries := makeEntries("A", "B", "C", "D")
		client := &stubDirectoryClient{
			resultsByOrg: map[string]*responses.SourceQueryResult{
				"A": successResult(request.NPI),
				"B": {Status: constvars.SourceStatusNotFound},
				"C": {Status: constvars.SourceStatusAuthRequired},
				"D": {Status: constvars.SourceStatusError, Error: "connection refused"},
			},
		}
		uc := newUsecaseForTest(
			&stubRegistryUsecase{entries: entries},
			&stubBaselineRepository{},
			client,
			&stubReconciliationService{},
		)

		result, err := uc.Search(context.Background(), request)

		assert.NoError(t, err)
		assert.Equal(t, 4, result.Summary.SourcesQueried)
		assert.Equal(t, 1, result.Summary.Found)
		assert.Equal(t, 1, result.Summary.NotFound)
		assert.Equal(t, 1, result.Summary.AuthRequired)
		assert.Equal(t, 1, result.Summary.Errors)
	})

	t.Run("one source panic does not sink the rest", func(t *testing.T) {
		entries := makeEntries("Good", "Broken", "AlsoGood")
		client := &stubDirectoryClient{
			resultsByOrg: map[string]*responses.SourceQueryResult{
				"Good":     successResult(request.NPI),
				"AlsoGood": successResult(request.NPI),
			},
			panicOrgs: map[string]bool{"Broken": true},
		}
		uc := newUsecaseForTest(
			&stubRegistryUsecase{entries: entries},
			&stubBaselineRepository{},
			client,
			&stubReconciliationService{},
		)

		result, err := uc.Search(context.Background(), request)

		assert.NoError(t, err)
		assert.Equal(t, constvars.SourceStatusSuccess, result.Results[0].Status)
		assert.Equal(t, constvars.SourceStatusError, result.Results[1].Status)
		assert.Contains(t, result.Results[1].Error, "panic")
		assert.Equal(t, constvars.SourceStatusSuccess, result.Results[2].Status)
		assert.Equal(t, 2, result.Summary.Found)
		assert.Equal(t, 1, result.Summary.Errors)
	})

	t.Run("comparison only attached when baseline exists", func(t *testing.T) {
		entries := makeEntries("Aetna")
		client := &stubDirectoryClient{
			resultsByOrg: map[string]*responses.SourceQueryResult{
				"Aetna": successResult(request.NPI),
			},
		}
		reconciliation := &stubReconciliationService{}
		uc := newUsecaseForTest(
			&stubRegistryUsecase{entries: entries},
			&stubBaselineRepository{},
			client,
			reconciliation,
		)

		result, err := uc.Search(authedContext(), request)

		assert.NoError(t, err)
		assert.Nil(t, result.Results[0].Comparison)
		assert.NotNil(t, result.Results[0].Staleness)
		assert.Nil(t, result.BaselineStaleness)
		assert.Equal(t, 0, reconciliation.compareCalls)
		assert.Equal(t, 1, reconciliation.stalenessCalls)
	})

	t.Run("comparison attached against stored baseline", func(t *testing.T) {
		entries := makeEntries("Aetna")
		client := &stubDirectoryClient{
			resultsByOrg: map[string]*responses.SourceQueryResult{
				"Aetna": successResult(request.NPI),
			},
		}
		reconciliation := &stubReconciliationService{}
		uc := newUsecaseForTest(
			&stubRegistryUsecase{entries: entries},
			&stubBaselineRepository{record: &models.BaselineRecord{NPI: request.NPI, LastName: "Smith"}},
			client,
			reconciliation,
		)

		result, err := uc.Search(authedContext(), request)

		assert.NoError(t, err)
		assert.NotNil(t, result.Results[0].Comparison)
		assert.Equal(t, 1, reconciliation.compareCalls)
	})

	t.Run("anonymous search skips the baseline entirely", func(t *testing.T) {
		entries := makeEntries("Aetna")
		client := &stubDirectoryClient{
			resultsByOrg: map[string]*responses.SourceQueryResult{
				"Aetna": successResult(request.NPI),
			},
		}
		baseline := &stubBaselineRepository{record: &models.BaselineRecord{NPI: request.NPI, LastName: "Smith"}}
		reconciliation := &stubReconciliationService{}
		uc := newUsecaseForTest(
			&stubRegistryUsecase{entries: entries},
			baseline,
			client,
			reconciliation,
		)

		result, err := uc.Search(context.Background(), request)

		assert.NoError(t, err)
		assert.Equal(t, 0, baseline.findCalls)
		assert.Nil(t, result.Results[0].Comparison)
		assert.Nil(t, result.BaselineStaleness)
		assert.Equal(t, 0, reconciliation.compareCalls)
	})

	t.Run("baseline freshness reported alongside the results", func(t *testing.T) {
		entries := makeEntries("Aetna")
		client := &stubDirectoryClient{
			resultsByOrg: map[string]*responses.SourceQueryResult{
				"Aetna": successResult(request.NPI),
			},
		}
		reconciliation := &stubReconciliationService{}
		uc := newUsecaseForTest(
			&stubRegistryUsecase{entries: entries},
			&stubBaselineRepository{record: &models.BaselineRecord{
				NPI:         request.NPI,
				LastName:    "Smith",
				LastUpdated: "2024-01-15T00:00:00Z",
			}},
			client,
			reconciliation,
		)

		result, err := uc.Search(authedContext(), request)

		assert.NoError(t, err)
		if assert.NotNil(t, result.BaselineStaleness) {
			assert.Equal(t, 1, result.BaselineStaleness.AgeDays)
		}
		// one verdict per found source plus one for the baseline
		assert.Equal(t, 2, reconciliation.stalenessCalls)
	})

	t.Run("no reconciliation for sources without a record", func(t *testing.T) {
		entries := makeEntries("Aetna")
		client := &stubDirectoryClient{
			resultsByOrg: map[string]*responses.SourceQueryResult{
				"Aetna": {Status: constvars.SourceStatusNotFound},
			},
		}
		reconciliation := &stubReconciliationService{}
		uc := newUsecaseForTest(
			&stubRegistryUsecase{entries: entries},
			&stubBaselineRepository{record: &models.BaselineRecord{NPI: request.NPI}},
			client,
			reconciliation,
		)

		result, err := uc.Search(authedContext(), request)

		assert.NoError(t, err)
		assert.Nil(t, result.Results[0].Comparison)
		assert.Nil(t, result.Results[0].Staleness)
		assert.Equal(t, 0, reconciliation.compareCalls)
		// the baseline itself still gets a freshness verdict
		assert.Equal(t, 1, reconciliation.stalenessCalls)
	})

	t.Run("empty registry yields empty results", func(t *testing.T) {
		uc := newUsecaseForTest(
			&stubRegistryUsecase{entries: []models.RegistryEntry{}},
			&stubBaselineRepository{},
			&stubDirectoryClient{},
			&stubReconciliationService{},
		)

		result, err := uc.Search(context.Background(), request)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Summary.SourcesQueried)
		assert.Empty(t, result.Results)
	})

	t.Run("registry error propagates", func(t *testing.T) {
		uc := newUsecaseForTest(
			&stubRegistryUsecase{err: errors.New("mongo down")},
			&stubBaselineRepository{},
			&stubDirectoryClient{},
			&stubReconciliationService{},
		)

		result, err := uc.Search(context.Background(), request)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}
