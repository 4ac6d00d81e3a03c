package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/models"
)

func TestRecordDenied_AppendsAccessDeniedEntry(t *testing.T) {
	var appended models.AuditEntry
	repo := &mockAuditRepository{
		appendFn: func(_ context.Context, _ store.Querier, entry models.AuditEntry) (models.AuditEntry, error) {
			appended = entry
			return entry, nil
		},
	}
	svc := NewAuditService(&mockDatabase{}, repo, logger.Nop())

	actorID := int64(7)
	err := svc.RecordDenied(context.Background(), &actorID, "capability", "admin-dashboard", "203.0.113.5", nil)

	require.NoError(t, err)
	assert.Equal(t, models.AuditActionAccessDenied, appended.Action)
	assert.Equal(t, "admin-dashboard", appended.ResourceID)
	assert.WithinDuration(t, time.Now(), appended.Timestamp, time.Minute)
}

func TestRecordDenied_NilActor(t *testing.T) {
	var appended models.AuditEntry
	repo := &mockAuditRepository{
		appendFn: func(_ context.Context, _ store.Querier, entry models.AuditEntry) (models.AuditEntry, error) {
			appended = entry
			return entry, nil
		},
	}
	svc := NewAuditService(&mockDatabase{}, repo, logger.Nop())

	err := svc.RecordDenied(context.Background(), nil, "capability", "audit:read", "198.51.100.9", nil)

	require.NoError(t, err)
	assert.Nil(t, appended.ActorID)
}

func TestList_PassesFilterThrough(t *testing.T) {
	var gotFilter models.AuditFilter
	repo := &mockAuditRepository{
		listFn: func(_ context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
			gotFilter = filter
			return []models.AuditEntry{{ID: 1}}, nil
		},
	}
	svc := NewAuditService(&mockDatabase{}, repo, logger.Nop())

	actorID := int64(7)
	entries, err := svc.List(context.Background(), models.AuditFilter{ActorID: &actorID, ResourceType: "orders"})

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "orders", gotFilter.ResourceType)
	require.NotNil(t, gotFilter.ActorID)
	assert.Equal(t, int64(7), *gotFilter.ActorID)
}
