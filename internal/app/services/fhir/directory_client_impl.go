package fhir

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"providercard-service/internal/app/config"
	"providercard-service/internal/app/contracts"
	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/dto/responses"
	"providercard-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type directorySearchClient struct {
	httpClient        *http.Client
	sourceTimeout     time.Duration
	roleLookupTimeout time.Duration
	Log               *zap.Logger
}

func NewDirectorySearchClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.DirectorySearchClient {
	sourceTimeout := time.Duration(internalConfig.Search.SourceTimeoutInSeconds) * time.Second
	return &directorySearchClient{
		httpClient: &http.Client{
			Timeout: sourceTimeout,
		},
		sourceTimeout:     sourceTimeout,
		roleLookupTimeout: time.Duration(internalConfig.Search.RoleLookupTimeoutInSeconds) * time.Second,
		Log:               logger,
	}
}

// SearchByNPI queries one directory for a Practitioner by NPI and folds any
// failure into the result status instead of returning an error. A directory
// that is down must never sink the rest of the fan-out.
func (c *directorySearchClient) SearchByNPI(ctx context.Context, entry *models.RegistryEntry, npi string) *responses.SourceQueryResult {
	result := &responses.SourceQueryResult{
		Source:           entry.ID.Hex(),
		OrganizationName: entry.OrganizationName,
		Endpoint:         entry.Endpoint,
	}

	started := time.Now()
	defer func() {
		result.ElapsedMs = time.Since(started).Milliseconds()
	}()

	searchURL := fmt.Sprintf(
		"%s/%s?identifier=%s",
		entry.Endpoint,
		constvars.ResourcePractitioner,
		url.QueryEscape(constvars.FhirSystemNPI+"|"+npi),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, searchURL, nil)
	if err != nil {
		result.Status = constvars.SourceStatusError
		result.Error = err.Error()
		return result
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderUserAgent, constvars.SearchUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.Log.Warn("directorySearchClient.SearchByNPI request failed",
			zap.String(constvars.LoggingOrganizationNameKey, entry.OrganizationName),
			zap.Error(err),
		)
		result.Status = constvars.SourceStatusError
		result.Error = c.describeTransportError(err)
		return result
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == constvars.StatusUnauthorized || resp.StatusCode == constvars.StatusForbidden:
		result.Status = constvars.SourceStatusAuthRequired
		return result
	case resp.StatusCode == constvars.StatusNotFound:
		result.Status = constvars.SourceStatusNotFound
		return result
	case resp.StatusCode/100 != 2:
		result.Status = constvars.SourceStatusError
		result.Error = fmt.Sprintf("unexpected status code %d", resp.StatusCode)
		return result
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Status = constvars.SourceStatusError
		result.Error = err.Error()
		return result
	}

	practitioner, err := decodePractitioner(body, npi)
	if err != nil {
		result.Status = constvars.SourceStatusError
		result.Error = fmt.Sprintf("failed to decode response: %v", err)
		return result
	}
	if practitioner == nil {
		result.Status = constvars.SourceStatusNotFound
		return result
	}

	record := normalizePractitioner(practitioner, npi)

	// best-effort secondary lookup; a role fetch failure still leaves a
	// usable demographic record
	if roles := c.fetchPractitionerRoles(ctx, entry, practitioner.ID); len(roles) > 0 {
		for i := range roles {
			mergePractitionerRole(record, &roles[i])
		}
	}
	record.Specialties = dedupeSpecialties(record.Specialties)

	result.Status = constvars.SourceStatusSuccess
	result.Record = record
	return result
}

// describeTransportError turns a timeout into a stable, operator-friendly
// message; other transport failures keep the underlying error text.
func (c *directorySearchClient) describeTransportError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Sprintf("timeout (%ds)", int(c.sourceTimeout/time.Second))
	}
	return err.Error()
}

func (c *directorySearchClient) fetchPractitionerRoles(ctx context.Context, entry *models.RegistryEntry, practitionerID string) []fhir_dto.PractitionerRole {
	if practitionerID == "" {
		return nil
	}

	roleCtx, cancel := context.WithTimeout(ctx, c.roleLookupTimeout)
	defer cancel()

	roleURL := fmt.Sprintf(
		"%s/%s?practitioner=%s",
		entry.Endpoint,
		constvars.ResourcePractitionerRole,
		url.QueryEscape(practitionerID),
	)

	req, err := http.NewRequestWithContext(roleCtx, constvars.MethodGet, roleURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderUserAgent, constvars.SearchUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.Log.Debug("directorySearchClient.fetchPractitionerRoles request failed",
			zap.String(constvars.LoggingOrganizationNameKey, entry.OrganizationName),
			zap.Error(err),
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil
	}

	var bundle fhir_dto.FHIRBundle
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return nil
	}

	roles := make([]fhir_dto.PractitionerRole, 0, len(bundle.Entry))
	for _, bundleEntry := range bundle.Entry {
		var envelope fhir_dto.ResourceEnvelope
		if err := json.Unmarshal(bundleEntry.Resource, &envelope); err != nil {
			continue
		}
		if envelope.ResourceType != constvars.ResourcePractitionerRole {
			continue
		}
		var role fhir_dto.PractitionerRole
		if err := json.Unmarshal(bundleEntry.Resource, &role); err != nil {
			continue
		}
		roles = append(roles, role)
	}
	return roles
}

// decodePractitioner accepts either a searchset Bundle or a bare Practitioner
// resource; some directories return the latter for single-match searches.
func decodePractitioner(body []byte, npi string) (*fhir_dto.Practitioner, error) {
	var envelope fhir_dto.ResourceEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	if envelope.ResourceType == constvars.ResourcePractitioner {
		var practitioner fhir_dto.Practitioner
		if err := json.Unmarshal(body, &practitioner); err != nil {
			return nil, err
		}
		return &practitioner, nil
	}

	var bundle fhir_dto.FHIRBundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		return nil, err
	}
	return pickPractitioner(&bundle, npi), nil
}

// pickPractitioner scans bundle entries for the first Practitioner whose NPI
// identifier matches. Servers that ignore the identifier search parameter can
// return unrelated resources, so the match is re-verified client side.
func pickPractitioner(bundle *fhir_dto.FHIRBundle, npi string) *fhir_dto.Practitioner {
	var fallback *fhir_dto.Practitioner
	for _, entry := range bundle.Entry {
		var envelope fhir_dto.ResourceEnvelope
		if err := json.Unmarshal(entry.Resource, &envelope); err != nil {
			continue
		}
		if envelope.ResourceType != constvars.ResourcePractitioner {
			continue
		}
		var practitioner fhir_dto.Practitioner
		if err := json.Unmarshal(entry.Resource, &practitioner); err != nil {
			continue
		}
		if practitioner.IdentifierValue(constvars.FhirSystemNPI) == npi {
			return &practitioner
		}
		if fallback == nil {
			fallback = &practitioner
		}
	}
	return fallback
}
