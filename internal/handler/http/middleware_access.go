package http

import (
	"net/http"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
	"github.com/MKhiriev/go-shop-guard/models"
)

// requireCapability returns a middleware that enforces the deny-by-default
// access policy for a single capability.
//
// It reads the verified user ID and role placed in the context by
// [Handler.sessionGuard] and asks [service.AccessPolicy.Authorize] whether
// the role holds the capability. A refusal has already been written to the
// audit log by the policy; the middleware only translates it to HTTP 403.
//
// The middleware must always run after sessionGuard: a request without the
// identity context values is rejected with 401 rather than consulted
// against the policy.
func (h *Handler) requireCapability(capability models.Capability) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)
			ctx := r.Context()

			userID, okUser := utils.GetUserIDFromContext(ctx)
			role, okRole := utils.GetRoleFromContext(ctx)
			if !okUser || !okRole {
				log.Error().Str("capability", string(capability)).Msg("capability check reached without session guard")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			if err := h.services.AccessPolicy.Authorize(ctx, userID, role, capability, clientAddress(r)); err != nil {
				status := statusFromError(err)
				log.Err(err).Str("capability", string(capability)).Msg("capability denied")
				http.Error(w, http.StatusText(status), status)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
