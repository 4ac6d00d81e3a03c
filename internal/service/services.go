package service

import (
	"github.com/MKhiriev/go-shop-guard/internal/config"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
)

// Services aggregates every service behind a single value that is passed to
// the transport layer.
type Services struct {
	AuthService    AuthService
	SessionGuard   SessionGuard
	MFAService     MFAService
	AccessPolicy   AccessPolicy
	AuditService   AuditService
	ProfileService ProfileService
	OrderService   OrderService
}

// NewServices wires all services to the given storages and configuration.
func NewServices(db *store.DB, storages store.Storages, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	uuidGenerator := utils.NewUUIDGenerator()

	auditService := NewAuditService(db, storages.AuditRepository, log)
	accessPolicy := NewAccessPolicy(auditService, log)
	mfaService := NewMFAService(db, storages.UserRepository, storages.SessionRepository, storages.AuditRepository, cfg.App.TokenIssuer, cfg.Security.MFASkew, log)

	return &Services{
		AuthService:    NewAuthService(db, storages.UserRepository, storages.SessionRepository, storages.AuditRepository, mfaService, uuidGenerator, cfg.App, log),
		SessionGuard:   NewSessionGuard(storages.SessionRepository, storages.UserRepository, cfg.App, cfg.Security, log),
		MFAService:     mfaService,
		AccessPolicy:   accessPolicy,
		AuditService:   auditService,
		ProfileService: NewProfileService(db, storages.UserRepository, storages.AuditRepository, log),
		OrderService:   NewOrderService(db, storages.OrderRepository, storages.AuditRepository, auditService, uuidGenerator, log),
	}
}
