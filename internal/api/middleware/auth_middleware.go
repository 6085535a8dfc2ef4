package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kharidoapp/checkout-engine/internal/errors"
	"github.com/kharidoapp/checkout-engine/internal/identity"
	"github.com/kharidoapp/checkout-engine/internal/utils/response"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

type AuthMiddleware struct {
	verifier *identity.Verifier
	state    *identity.State
}

func NewAuthMiddleware(verifier *identity.Verifier, state *identity.State) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, state: state}
}

// Authenticate resolves the bearer token into the request principal and
// updates the process-wide identity cell, the engine's stand-in for the
// identity provider's auth-change stream.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		// Get token from Authorization header
		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format", slog.String("header", authHeader))
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		claims, err := m.verifier.Verify(tokenParts[1])
		if err != nil {
			logger.Warn("Token verification failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
			logger.Warn("Expired token", slog.String("userId", claims.UserID.String()))
			response.Error(w, errors.UnauthorizedError("Token expired"))
			return
		}

		principal := claims.Principal()
		m.state.Set(&principal)

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(slog.String("userId", claims.UserID.String()))
		ctx = context.WithValue(ctx, loggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
