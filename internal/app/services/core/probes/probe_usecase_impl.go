package probes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"providercard-service/internal/app/config"
	"providercard-service/internal/app/contracts"
	"providercard-service/internal/app/services/shared/probequeue"
	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/dto/responses"
	"providercard-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type probeUsecase struct {
	RegistryRepository contracts.RegistryRepository
	Queue              *probequeue.Service
	Storage            contracts.Storage
	InternalConfig     *config.InternalConfig
	httpClient         *http.Client
	Log                *zap.Logger
}

var (
	probeUsecaseInstance contracts.ProbeUsecase
	onceProbeUsecase     sync.Once
)

func NewProbeUsecase(
	registryRepository contracts.RegistryRepository,
	queue *probequeue.Service,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ProbeUsecase {
	onceProbeUsecase.Do(func() {
		timeout := time.Duration(internalConfig.Probe.HTTPTimeoutInSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		probeUsecaseInstance = &probeUsecase{
			RegistryRepository: registryRepository,
			Queue:              queue,
			Storage:            storage,
			InternalConfig:     internalConfig,
			httpClient:         &http.Client{Timeout: timeout},
			Log:                logger,
		}
	})
	return probeUsecaseInstance
}

func (uc *probeUsecase) EnqueueProbe(ctx context.Context, entryID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("probeUsecase.EnqueueProbe called",
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

	return uc.Queue.Enqueue(ctx, probequeue.ProbeJob{
		ID:      uuid.NewString(),
		EntryID: entryID,
	})
}

// ExecuteProbe hits the source's conformance endpoint, records telemetry on
// the registry entry, and archives the probe report.
func (uc *probeUsecase) ExecuteProbe(ctx context.Context, entryID string) (*responses.ProbeReport, error) {
	entry, err := uc.RegistryRepository.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, exceptions.ErrRegistryEntryNotFound(fmt.Errorf("registry entry %s not found", entryID))
	}

	report := &responses.ProbeReport{
		EntryID:          entryID,
		OrganizationName: entry.OrganizationName,
		Endpoint:         entry.Endpoint,
		ProbedAt:         time.Now().UTC(),
	}

	statusCode, latencyMs, probeErr := uc.probeEndpoint(ctx, entry.Endpoint)
	report.StatusCode = statusCode
	report.LatencyMs = latencyMs
	report.Reachable = probeErr == nil && statusCode == constvars.StatusOK
	if probeErr != nil {
		report.Error = probeErr.Error()
	} else if !report.Reachable {
		report.Error = fmt.Sprintf("unexpected status code %d", statusCode)
	}

	if report.Reachable {
		err = uc.RegistryRepository.RecordProbeSuccess(ctx, entryID, statusCode, latencyMs, report.ProbedAt)
	} else {
		err = uc.RegistryRepository.RecordProbeFailure(ctx, entryID, statusCode, report.ProbedAt, uc.InternalConfig.Probe.FailureThreshold)
	}
	if err != nil {
		return nil, err
	}

	uc.archiveReport(ctx, report)

	uc.Log.Info("probeUsecase.ExecuteProbe completed",
		zap.String(constvars.LoggingEntryIDKey, entryID),
		zap.String(constvars.LoggingOrganizationNameKey, entry.OrganizationName),
		zap.Bool("reachable", report.Reachable),
		zap.Int(constvars.LoggingStatusCodeKey, statusCode),
	)
	return report, nil
}

func (uc *probeUsecase) probeEndpoint(ctx context.Context, endpoint string) (int, int64, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint+constvars.FhirMetadataPath, nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderUserAgent, constvars.SearchUserAgent)

	started := time.Now()
	resp, err := uc.httpClient.Do(req)
	latencyMs := time.Since(started).Milliseconds()
	if err != nil {
		return 0, latencyMs, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, latencyMs, nil
}

// archiveReport uploads the report JSON to the audit bucket. Archive failure
// is logged rather than propagated; telemetry already landed in the registry.
func (uc *probeUsecase) archiveReport(ctx context.Context, report *responses.ProbeReport) {
	body, err := json.Marshal(report)
	if err != nil {
		uc.Log.Error("probeUsecase.archiveReport marshal failed", zap.Error(err))
		return
	}

	objectName := fmt.Sprintf("%s/%s.json", report.EntryID, report.ProbedAt.Format("2006-01-02T15-04-05Z"))
	bucketName := uc.InternalConfig.Probe.ReportBucketName
	if _, err := uc.Storage.UploadObject(ctx, bucketName, objectName, bytes.NewReader(body), int64(len(body)), constvars.MIMEApplicationJSON); err != nil {
		uc.Log.Error("probeUsecase.archiveReport upload failed",
			zap.String(constvars.LoggingBucketNameKey, bucketName),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
	}
}
