package contracts

import (
	"providercard-service/internal/pkg/dto/responses"
)

type ReconciliationService interface {
	Compare(baseline, source *responses.CanonicalProviderRecord) *responses.ComparisonResult
	EvaluateStaleness(record *responses.CanonicalProviderRecord) *responses.StalenessVerdict
}
