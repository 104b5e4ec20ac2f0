package reconciliation

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"providercard-service/internal/app/contracts"
	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/dto/responses"
	"providercard-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// fieldPolicy describes one reconciled field: how to read it from a record,
// how to normalize it before comparing, how bad a mismatch is, and what the
// roster operator should do about one.
type fieldPolicy struct {
	Name           string
	Severity       string
	Recommendation string
	Extract        func(record *responses.CanonicalProviderRecord) string
	Normalize      func(value string) string
}

func normalizeCaseFold(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// fieldPolicies is the comparison table. A field only participates when both
// baseline and source carry a value for it; severity ranks how urgent the
// mismatch is for roster correction.
var fieldPolicies = []fieldPolicy{
	{
		Name:           "lastName",
		Severity:       constvars.SeverityHigh,
		Recommendation: "Update the baseline to match the official record",
		Extract: func(record *responses.CanonicalProviderRecord) string {
			return record.LastName
		},
		Normalize: normalizeCaseFold,
	},
	{
		Name:           "firstName",
		Severity:       constvars.SeverityMedium,
		Recommendation: "Consider updating to match the official name format",
		Extract: func(record *responses.CanonicalProviderRecord) string {
			return strings.TrimSpace(record.FirstName + " " + record.MiddleName)
		},
		Normalize: normalizeCaseFold,
	},
	{
		Name:           "address",
		Severity:       constvars.SeverityMedium,
		Recommendation: "Verify which address is current",
		Extract: func(record *responses.CanonicalProviderRecord) string {
			if len(record.Addresses) == 0 {
				return ""
			}
			return record.Addresses[0].Line
		},
		Normalize: normalizeCaseFold,
	},
	{
		Name:           "city",
		Severity:       constvars.SeverityHigh,
		Recommendation: "Update the baseline to match the official record",
		Extract: func(record *responses.CanonicalProviderRecord) string {
			if len(record.Addresses) == 0 {
				return ""
			}
			return record.Addresses[0].City
		},
		Normalize: normalizeCaseFold,
	},
	{
		Name:           "phone",
		Severity:       constvars.SeverityLow,
		Recommendation: "The directory may have more recent contact info",
		Extract: func(record *responses.CanonicalProviderRecord) string {
			if len(record.PhoneNumbers) == 0 {
				return ""
			}
			return record.PhoneNumbers[0]
		},
		Normalize: utils.NormalizePhoneDigits,
	},
	{
		Name:           "specialty",
		Severity:       constvars.SeverityHigh,
		Recommendation: "Verify current specialty certification",
		Extract: func(record *responses.CanonicalProviderRecord) string {
			return joinSpecialtyCodes(record.Specialties)
		},
		Normalize: normalizeCaseFold,
	},
}

// joinSpecialtyCodes renders the specialty set as a sorted code list so the
// comparison ignores ordering differences between directories.
func joinSpecialtyCodes(specialties []responses.Specialty) string {
	if len(specialties) == 0 {
		return ""
	}
	codes := make([]string, 0, len(specialties))
	for _, specialty := range specialties {
		if specialty.Code != "" {
			codes = append(codes, specialty.Code)
		}
	}
	sort.Strings(codes)
	return strings.Join(codes, ",")
}

type reconciliationService struct {
	Log *zap.Logger
}

var (
	reconciliationServiceInstance contracts.ReconciliationService
	onceReconciliationService     sync.Once
)

func NewReconciliationService(logger *zap.Logger) contracts.ReconciliationService {
	onceReconciliationService.Do(func() {
		reconciliationServiceInstance = &reconciliationService{Log: logger}
	})
	return reconciliationServiceInstance
}

// Compare walks the policy table and reports every field where the source
// disagrees with the baseline. Fields missing on either side are skipped
// rather than counted as discrepancies.
func (s *reconciliationService) Compare(baseline, source *responses.CanonicalProviderRecord) *responses.ComparisonResult {
	result := &responses.ComparisonResult{
		Discrepancies:  []responses.Discrepancy{},
		SeverityCounts: map[string]int{},
	}

	for _, policy := range fieldPolicies {
		baselineValue := policy.Extract(baseline)
		sourceValue := policy.Extract(source)
		if baselineValue == "" || sourceValue == "" {
			continue
		}

		result.FieldsCompared++
		if policy.Normalize(baselineValue) == policy.Normalize(sourceValue) {
			continue
		}

		result.Discrepancies = append(result.Discrepancies, responses.Discrepancy{
			Field:          policy.Name,
			BaselineValue:  baselineValue,
			SourceValue:    sourceValue,
			Severity:       policy.Severity,
			Recommendation: policy.Recommendation,
		})
		result.SeverityCounts[policy.Severity]++
	}

	result.MatchScore = matchScore(result.FieldsCompared, len(result.Discrepancies))
	return result
}

// matchScore is the share of compared fields that agreed, as a percentage
// rounded to one decimal. Nothing comparable counts as a full match.
func matchScore(compared, discrepancies int) float64 {
	if compared == 0 {
		return 100.0
	}
	score := float64(compared-discrepancies) / float64(compared) * 100
	return math.Round(score*10) / 10
}

const (
	stalenessRecommendationUnknown   = "Unable to determine the last update date. Verify the record manually."
	stalenessRecommendationNeedsSync = "Record is over 1 year old. Immediate sync recommended to ensure accuracy."
	stalenessRecommendationStale     = "Record is over 6 months old. Consider syncing to keep information current."
	stalenessRecommendationFresh     = "Record is up to date. No action needed."
)

// EvaluateStaleness grades the record's lastUpdated timestamp. A record with
// no timestamp at all is treated as the worst case.
func (s *reconciliationService) EvaluateStaleness(record *responses.CanonicalProviderRecord) *responses.StalenessVerdict {
	verdict := &responses.StalenessVerdict{LastUpdated: record.LastUpdated}

	if record.LastUpdated == "" {
		verdict.AgeDays = -1
		verdict.Stale = true
		verdict.NeedsSync = true
		verdict.Recommendation = stalenessRecommendationUnknown
		return verdict
	}

	lastUpdated, err := parseFHIRInstant(record.LastUpdated)
	if err != nil {
		s.Log.Warn("reconciliationService.EvaluateStaleness unparseable lastUpdated",
			zap.String("last_updated", record.LastUpdated),
			zap.Error(err),
		)
		verdict.AgeDays = -1
		verdict.Stale = true
		verdict.NeedsSync = true
		verdict.Recommendation = stalenessRecommendationUnknown
		return verdict
	}

	ageDays := int(time.Since(lastUpdated).Hours() / 24)
	verdict.AgeDays = ageDays
	verdict.Stale = ageDays > constvars.StaleAfterDays
	verdict.NeedsSync = ageDays > constvars.NeedsSyncAfterDays

	// single recommendation ranked by the most severe tier
	switch {
	case verdict.NeedsSync:
		verdict.Recommendation = stalenessRecommendationNeedsSync
	case verdict.Stale:
		verdict.Recommendation = stalenessRecommendationStale
	default:
		verdict.Recommendation = stalenessRecommendationFresh
	}
	return verdict
}

// parseFHIRInstant accepts the timestamp shapes directory servers actually
// emit, with and without fractional seconds or an explicit zone.
func parseFHIRInstant(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
