package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/models"
)

// auditService is the concrete implementation of AuditService.
//
// Business services append their CREATE/UPDATE/DELETE entries through the
// repository inside their own transactions; this service covers the two
// remaining surfaces: denial records, which have no surrounding transaction,
// and the filtered admin read.
type auditService struct {
	db              store.Database
	auditRepository store.AuditRepository
	logger          *logger.Logger
}

// NewAuditService constructs an AuditService over the given repository.
func NewAuditService(db store.Database, audit store.AuditRepository, logger *logger.Logger) AuditService {
	return &auditService{
		db:              db,
		auditRepository: audit,
		logger:          logger,
	}
}

// RecordDenied appends a single ACCESS-DENIED entry. The actor may be nil
// for denials that happen before authentication resolves an identity.
func (s *auditService) RecordDenied(ctx context.Context, actorID *int64, resourceType, resourceID, address string, detail *string) error {
	entry := models.AuditEntry{
		ActorID:      actorID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       models.AuditActionAccessDenied,
		Detail:       detail,
		Address:      address,
		Timestamp:    time.Now(),
	}

	if _, err := s.auditRepository.Append(ctx, s.db, entry); err != nil {
		return fmt.Errorf("appending denial entry: %w", err)
	}

	return nil
}

// List reads audit entries matching the filter, newest first. Authorization
// is the caller's concern; the admin handler guards this behind the
// audit:read capability.
func (s *auditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := s.auditRepository.List(ctx, filter)
	if err != nil {
		log.Err(err).Msg("audit list failed")
		return nil, fmt.Errorf("audit list failed: %w", err)
	}

	return entries, nil
}
