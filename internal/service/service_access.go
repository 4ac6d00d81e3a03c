package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/models"
)

// capabilityTable is the static role -> capability grant table. Anything not
// present here is denied; there is no wildcard and no inheritance.
var capabilityTable = map[models.Role]map[models.Capability]struct{}{
	models.RoleCustomer: {
		models.CapabilityProfileRead:  {},
		models.CapabilityProfileWrite: {},
		models.CapabilityOrdersCreate: {},
		models.CapabilityOrdersRead:   {},
	},
	models.RoleAdmin: {
		models.CapabilityProfileRead:    {},
		models.CapabilityProfileWrite:   {},
		models.CapabilityOrdersCreate:   {},
		models.CapabilityOrdersRead:     {},
		models.CapabilityAuditRead:      {},
		models.CapabilityAdminDashboard: {},
	},
}

// accessPolicy is the concrete implementation of AccessPolicy.
//
// The grant table is compiled in: changing who may do what is a code change,
// reviewed like one. Denials are recorded before the rejection leaves the
// service, so a missing audit row can never accompany a served denial.
type accessPolicy struct {
	audit  AuditService
	logger *logger.Logger
}

// NewAccessPolicy constructs the deny-by-default policy check writing
// denials through the given audit service.
func NewAccessPolicy(audit AuditService, logger *logger.Logger) AccessPolicy {
	return &accessPolicy{
		audit:  audit,
		logger: logger,
	}
}

// Allowed reports whether the role holds the capability. Unknown roles and
// unknown capabilities are both denied.
func (p *accessPolicy) Allowed(role models.Role, capability models.Capability) bool {
	grants, ok := capabilityTable[role]
	if !ok {
		return false
	}
	_, ok = grants[capability]
	return ok
}

// Authorize enforces the capability check for an actor. On denial it records
// exactly one ACCESS-DENIED audit entry naming the capability, then returns
// [ErrPermissionDenied]. A failure to record the denial is returned instead
// of the denial itself so the caller still rejects the request.
func (p *accessPolicy) Authorize(ctx context.Context, actorID int64, role models.Role, capability models.Capability, address string) error {
	if p.Allowed(role, capability) {
		return nil
	}

	log := logger.FromContext(ctx)
	log.Warn().
		Int64("actorID", actorID).
		Str("role", string(role)).
		Str("capability", string(capability)).
		Msg("capability denied")

	detail := fmt.Sprintf(`{"role":%q}`, role)
	if err := p.audit.RecordDenied(ctx, &actorID, "capability", string(capability), address, &detail); err != nil {
		return fmt.Errorf("recording access denial: %w", err)
	}

	return ErrPermissionDenied
}
