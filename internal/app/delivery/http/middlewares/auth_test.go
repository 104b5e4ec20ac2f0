package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"providercard-service/internal/app/config"
	"providercard-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestMiddlewares(apiKey string) *Middlewares {
	return &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			App: config.App{
				SuperadminAPIKey: apiKey,
			},
		},
	}
}

func TestAPIKeyAuth(t *testing.T) {
	testAPIKey := "test-superadmin-api-key-12345"
	middlewares := newTestMiddlewares(testAPIKey)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/registry", nil)
		req.Header.Set(constvars.HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String(), "should return success message")
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/registry", nil)

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for missing API key")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/registry", nil)
		req.Header.Set(constvars.HeaderAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for invalid API key")
	})

	t.Run("Case Sensitivity", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/registry", nil)
		req.Header.Set(constvars.HeaderAPIKey, "TEST-SUPERADMIN-API-KEY-12345")

		rr := httptest.NewRecorder()
		handler := middlewares.APIKeyAuth(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for case-mismatched API key")
	})
}

func TestCallerIdentity(t *testing.T) {
	middlewares := &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: "test-jwt-secret"},
		},
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("No Authorization Header - Anonymous Pass", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/provider-search", nil)

		rr := httptest.NewRecorder()
		handler := middlewares.CallerIdentity(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should pass through without a token")
	})

	t.Run("Garbage Token - Rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/provider-search", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")

		rr := httptest.NewRecorder()
		handler := middlewares.CallerIdentity(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for a malformed token")
	})
}
