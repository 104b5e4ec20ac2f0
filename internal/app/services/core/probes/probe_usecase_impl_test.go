package probes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"providercard-service/internal/app/config"
	"providercard-service/internal/app/contracts"
	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubProbeRegistryRepository struct {
	entry *models.RegistryEntry

	successCalls int
	failureCalls int

	lastStatusCode int
	lastThreshold  int
}

func (s *stubProbeRegistryRepository) FindByID(ctx context.Context, entryID string) (*models.RegistryEntry, error) {
	if s.entry != nil && s.entry.ID.Hex() == entryID {
		return s.entry, nil
	}
	return nil, nil
}

func (s *stubProbeRegistryRepository) FindByNaturalKey(ctx context.Context, organizationName, endpoint string) (*models.RegistryEntry, error) {
	return nil, nil
}

func (s *stubProbeRegistryRepository) FindAll(ctx context.Context, status string, page, pageSize int) ([]models.RegistryEntry, int, error) {
	return nil, 0, nil
}

func (s *stubProbeRegistryRepository) FindEligible(ctx context.Context, criteria contracts.EligibilityCriteria) ([]models.RegistryEntry, error) {
	return nil, nil
}

func (s *stubProbeRegistryRepository) Create(ctx context.Context, entry *models.RegistryEntry) (*models.RegistryEntry, error) {
	return entry, nil
}

func (s *stubProbeRegistryRepository) Update(ctx context.Context, entry *models.RegistryEntry) error {
	return nil
}

func (s *stubProbeRegistryRepository) RecordProbeSuccess(ctx context.Context, entryID string, statusCode int, latencyMs int64, probedAt time.Time) error {
	s.successCalls++
	s.lastStatusCode = statusCode
	return nil
}

func (s *stubProbeRegistryRepository) RecordProbeFailure(ctx context.Context, entryID string, statusCode int, probedAt time.Time, failureThreshold int) error {
	s.failureCalls++
	s.lastStatusCode = statusCode
	s.lastThreshold = failureThreshold
	return nil
}

type stubStorage struct {
	uploads []string
	err     error
}

func (s *stubStorage) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	s.uploads = append(s.uploads, bucketName+"/"+objectName)
	if s.err != nil {
		return "", s.err
	}
	return objectName, nil
}

func newProbeUsecaseForTest(repository *stubProbeRegistryRepository, storage *stubStorage) *probeUsecase {
	return &probeUsecase{
		RegistryRepository: repository,
		Storage:            storage,
		InternalConfig: &config.InternalConfig{
			Probe: config.Probe{
				FailureThreshold: 3,
				ReportBucketName: "probe-reports",
			},
		},
		httpClient: &http.Client{Timeout: 2 * time.Second},
		Log:        zap.NewNop(),
	}
}

func newProbeEntry(endpoint string) *models.RegistryEntry {
	return &models.RegistryEntry{
		ID:               primitive.NewObjectID(),
		OrganizationName: "Test Payer",
		Endpoint:         endpoint,
		Status:           constvars.RegistryStatusActive,
	}
}

func TestExecuteProbe(t *testing.T) {
	t.Run("reachable endpoint records success and archives report", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, constvars.FhirMetadataPath, r.URL.Path)
			w.Write([]byte(`{"resourceType": "CapabilityStatement"}`))
		}))
		defer server.Close()

		entry := newProbeEntry(server.URL)
		repository := &stubProbeRegistryRepository{entry: entry}
		storage := &stubStorage{}
		uc := newProbeUsecaseForTest(repository, storage)

		report, err := uc.ExecuteProbe(context.Background(), entry.ID.Hex())

		assert.NoError(t, err)
		assert.True(t, report.Reachable)
		assert.Equal(t, constvars.StatusOK, report.StatusCode)
		assert.Empty(t, report.Error)
		assert.Equal(t, 1, repository.successCalls)
		assert.Equal(t, 0, repository.failureCalls)
		assert.Len(t, storage.uploads, 1)
		assert.Contains(t, storage.uploads[0], "probe-reports/"+entry.ID.Hex())
	})

	t.Run("server error records failure with threshold", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		entry := newProbeEntry(server.URL)
		repository := &stubProbeRegistryRepository{entry: entry}
		uc := newProbeUsecaseForTest(repository, &stubStorage{})

		report, err := uc.ExecuteProbe(context.Background(), entry.ID.Hex())

		assert.NoError(t, err)
		assert.False(t, report.Reachable)
		assert.NotEmpty(t, report.Error)
		assert.Equal(t, 1, repository.failureCalls)
		assert.Equal(t, http.StatusInternalServerError, repository.lastStatusCode)
		assert.Equal(t, 3, repository.lastThreshold)
	})

	t.Run("unreachable endpoint records failure", func(t *testing.T) {
		entry := newProbeEntry("http://127.0.0.1:1")
		repository := &stubProbeRegistryRepository{entry: entry}
		uc := newProbeUsecaseForTest(repository, &stubStorage{})

		report, err := uc.ExecuteProbe(context.Background(), entry.ID.Hex())

		assert.NoError(t, err)
		assert.False(t, report.Reachable)
		assert.Equal(t, 0, report.StatusCode)
		assert.Equal(t, 1, repository.failureCalls)
	})

	t.Run("archive failure does not fail the probe", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		entry := newProbeEntry(server.URL)
		repository := &stubProbeRegistryRepository{entry: entry}
		storage := &stubStorage{err: errors.New("bucket unavailable")}
		uc := newProbeUsecaseForTest(repository, storage)

		report, err := uc.ExecuteProbe(context.Background(), entry.ID.Hex())

		assert.NoError(t, err)
		assert.True(t, report.Reachable)
		assert.Equal(t, 1, repository.successCalls)
	})

	t.Run("unknown entry returns not found", func(t *testing.T) {
		repository := &stubProbeRegistryRepository{}
		uc := newProbeUsecaseForTest(repository, &stubStorage{})

		report, err := uc.ExecuteProbe(context.Background(), primitive.NewObjectID().Hex())

		assert.Error(t, err)
		assert.Nil(t, report)
		assert.Equal(t, 0, repository.successCalls)
		assert.Equal(t, 0, repository.failureCalls)
	})
}
