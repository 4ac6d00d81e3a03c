package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-shop-guard/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/login/mfa", h.loginMFA)
	})

	// routes behind the session guard
	router.Group(func(r chi.Router) {
		r.Use(h.sessionGuard)

		r.Post("/api/user/logout", h.logout)

		r.With(h.requireCapability(models.CapabilityProfileRead)).Get("/api/user/profile", h.getProfile)
		r.With(h.requireCapability(models.CapabilityProfileWrite)).Put("/api/user/profile", h.updateProfile)
		r.With(h.requireCapability(models.CapabilityProfileWrite)).Post("/api/user/password", h.changePassword)

		r.With(h.requireCapability(models.CapabilityProfileWrite)).Post("/api/user/mfa/setup", h.mfaSetup)
		r.With(h.requireCapability(models.CapabilityProfileWrite)).Post("/api/user/mfa/enable", h.mfaEnable)
		r.With(h.requireCapability(models.CapabilityProfileWrite)).Post("/api/user/mfa/disable", h.mfaDisable)

		r.With(h.requireCapability(models.CapabilityOrdersCreate)).Post("/api/orders", h.createOrder)
		r.With(h.requireCapability(models.CapabilityOrdersRead)).Get("/api/orders/{orderID}", h.getOrder)

		// administrative surface
		r.Route("/api/admin", func(admin chi.Router) {
			admin.Use(h.requireCapability(models.CapabilityAdminDashboard))
			admin.With(h.requireCapability(models.CapabilityAuditRead)).Get("/audit", h.listAudit)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
