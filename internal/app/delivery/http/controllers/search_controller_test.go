package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/dto/requests"
	"providercard-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubSearchUsecase struct {
	t       *testing.T
	called  bool
	result  *responses.ProviderSearch
	err     error
	mustNot bool
}

func (s *stubSearchUsecase) Search(ctx context.Context, request *requests.ProviderSearch) (*responses.ProviderSearch, error) {
	s.called = true
	if s.mustNot {
		s.t.Fatal("search usecase must not be invoked for an invalid request")
	}
	return s.result, s.err
}

func newSearchRequest(body string) *http.Request {
	req := httptest.NewRequest("POST", "/api/v1/provider-search", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), constvars.CONTEXT_REQUEST_ID_KEY, "test-request-id")
	return req.WithContext(ctx)
}

func TestSearchController_Search(t *testing.T) {
	t.Run("valid request returns 200 with payload", func(t *testing.T) {
		usecase := &stubSearchUsecase{
			t: t,
			result: &responses.ProviderSearch{
				NPI:     "1234567890",
				Summary: responses.SearchSummary{SourcesQueried: 1, Found: 1},
				Results: []responses.SourceQueryResult{{Status: constvars.SourceStatusSuccess}},
			},
		}
		controller := &SearchController{Log: zap.NewNop(), SearchUsecase: usecase}

		rr := httptest.NewRecorder()
		controller.Search(rr, newSearchRequest(`{"npi": "1234567890"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, usecase.called)
		assert.Contains(t, rr.Body.String(), `"1234567890"`)
	})

	t.Run("malformed NPI is rejected before any source is queried", func(t *testing.T) {
		usecase := &stubSearchUsecase{t: t, mustNot: true}
		controller := &SearchController{Log: zap.NewNop(), SearchUsecase: usecase}

		for _, npi := range []string{"12345", "123456789X", "12345678901", ""} {
			rr := httptest.NewRecorder()
			controller.Search(rr, newSearchRequest(`{"npi": "`+npi+`"}`))

			assert.Equal(t, http.StatusBadRequest, rr.Code, "npi %q should be rejected", npi)
		}
		assert.False(t, usecase.called)
	})

	t.Run("unparseable body returns 400", func(t *testing.T) {
		usecase := &stubSearchUsecase{t: t, mustNot: true}
		controller := &SearchController{Log: zap.NewNop(), SearchUsecase: usecase}

		rr := httptest.NewRecorder()
		controller.Search(rr, newSearchRequest(`{"npi": `))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, usecase.called)
	})

	t.Run("missing request id returns 500", func(t *testing.T) {
		usecase := &stubSearchUsecase{t: t, mustNot: true}
		controller := &SearchController{Log: zap.NewNop(), SearchUsecase: usecase}

		req := httptest.NewRequest("POST", "/api/v1/provider-search", strings.NewReader(`{"npi": "1234567890"}`))
		rr := httptest.NewRecorder()
		controller.Search(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.False(t, usecase.called)
	})
}
