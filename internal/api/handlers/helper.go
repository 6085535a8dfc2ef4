package handlers

import (
	"net/http"

	"github.com/kharidoapp/checkout-engine/internal/api/middleware"
	"github.com/kharidoapp/checkout-engine/internal/errors"
	"github.com/kharidoapp/checkout-engine/internal/flow"
	"github.com/kharidoapp/checkout-engine/internal/models"
	"github.com/kharidoapp/checkout-engine/internal/utils/response"
)

func principalFrom(r *http.Request) *models.Principal {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
	if !ok {
		return nil
	}

	principal := claims.Principal()

	return &principal
}

// requirePrincipal runs the sign-in guard for a flow. A blocked guard is
// reported as an unauthorized response carrying the redirect reason, never
// as a panic or a buried navigation side effect.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {

	principal := principalFrom(r)

	if guard := flow.RequireAuth(principal); !guard.Proceed() {
		response.Error(w, errors.UnauthorizedError("Authentication required").WithDetail(string(guard.Redirect)))
		return models.Principal{}, false
	}

	return *principal, true
}
