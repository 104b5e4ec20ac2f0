package middlewares

import (
	"context"
	"net/http"
	"strings"

	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/exceptions"
	"providercard-service/internal/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// CallerIdentity decodes an optional bearer token into a caller id on the
// context. Requests without a token stay anonymous; a present-but-invalid
// token is rejected so callers notice broken credentials.
func (m *Middlewares) CallerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(m.InternalConfig.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		callerID, _ := claims["sub"].(string)
		ctx := context.WithValue(r.Context(), constvars.CONTEXT_CALLER_ID_KEY, callerID)

		m.Log.Debug("caller identity resolved",
			zap.String("caller_id", callerID),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// APIKeyAuth guards the registry administration endpoints.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)

		if apiKey == "" || apiKey != m.InternalConfig.App.SuperadminAPIKey {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyInvalid(nil))
			return
		}

		m.Log.Info("API Key authentication successful",
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)
		next.ServeHTTP(w, r)
	})
}
