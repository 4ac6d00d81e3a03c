package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/models"
)

// ─────────────────────────────────────────────
// Mock: store.Database
// ─────────────────────────────────────────────

// mockDatabase runs transaction functions inline, passing itself as the
// Querier. Repository mocks never touch the Querier they receive.
type mockDatabase struct {
	txFn func(ctx context.Context, fn func(q store.Querier) error) error
}

func (m *mockDatabase) WithinTransaction(ctx context.Context, fn func(q store.Querier) error) error {
	if m.txFn != nil {
		return m.txFn(ctx, fn)
	}
	return fn(m)
}

func (m *mockDatabase) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (m *mockDatabase) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (m *mockDatabase) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn         func(ctx context.Context, q store.Querier, user models.User) (models.User, error)
	findByEmailFn    func(ctx context.Context, email string) (models.User, error)
	getByIDFn        func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn  func(ctx context.Context, q store.Querier, user models.User) (models.User, error)
	setMFAFn         func(ctx context.Context, q store.Querier, userID int64, enabled bool, secret *string) error
	updatePasswordFn func(ctx context.Context, q store.Querier, userID int64, passwordHash string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, q store.Querier, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, q, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, q store.Querier, user models.User) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, q, user)
	}
	return user, nil
}

func (m *mockUserRepository) SetMFA(ctx context.Context, q store.Querier, userID int64, enabled bool, secret *string) error {
	if m.setMFAFn != nil {
		return m.setMFAFn(ctx, q, userID, enabled, secret)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, q store.Querier, userID int64, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, q, userID, passwordHash)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.SessionRepository
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	createFn            func(ctx context.Context, session models.Session) (models.Session, error)
	getFn               func(ctx context.Context, sessionID string) (models.Session, error)
	touchFn             func(ctx context.Context, sessionID string, lastSeen time.Time) error
	invalidateFn        func(ctx context.Context, sessionID string) (bool, error)
	invalidateForUserFn func(ctx context.Context, userID int64) (int64, error)
	invalidateOthersFn  func(ctx context.Context, userID int64, keepSessionID string) (int64, error)
	deleteStaleFn       func(ctx context.Context, idleBefore, createdBefore time.Time) (int64, error)
}

func (m *mockSessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	session.Valid = true
	return session, nil
}

func (m *mockSessionRepository) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	if m.getFn != nil {
		return m.getFn(ctx, sessionID)
	}
	return models.Session{}, store.ErrSessionNotFound
}

func (m *mockSessionRepository) Touch(ctx context.Context, sessionID string, lastSeen time.Time) error {
	if m.touchFn != nil {
		return m.touchFn(ctx, sessionID, lastSeen)
	}
	return nil
}

func (m *mockSessionRepository) Invalidate(ctx context.Context, sessionID string) (bool, error) {
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx, sessionID)
	}
	return true, nil
}

func (m *mockSessionRepository) InvalidateAllForUser(ctx context.Context, userID int64) (int64, error) {
	if m.invalidateForUserFn != nil {
		return m.invalidateForUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) InvalidateOthersForUser(ctx context.Context, userID int64, keepSessionID string) (int64, error) {
	if m.invalidateOthersFn != nil {
		return m.invalidateOthersFn(ctx, userID, keepSessionID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteStale(ctx context.Context, idleBefore, createdBefore time.Time) (int64, error) {
	if m.deleteStaleFn != nil {
		return m.deleteStaleFn(ctx, idleBefore, createdBefore)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.OrderRepository
// ─────────────────────────────────────────────

type mockOrderRepository struct {
	createFn  func(ctx context.Context, q store.Querier, order models.Order) (models.Order, error)
	getByIDFn func(ctx context.Context, orderID int64) (models.Order, error)
}

func (m *mockOrderRepository) CreateOrder(ctx context.Context, q store.Querier, order models.Order) (models.Order, error) {
	if m.createFn != nil {
		return m.createFn(ctx, q, order)
	}
	return order, nil
}

func (m *mockOrderRepository) GetOrderByID(ctx context.Context, orderID int64) (models.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, orderID)
	}
	return models.Order{}, store.ErrOrderNotFound
}

// ─────────────────────────────────────────────
// Mock: store.AuditRepository
// ─────────────────────────────────────────────

type mockAuditRepository struct {
	appendFn func(ctx context.Context, q store.Querier, entry models.AuditEntry) (models.AuditEntry, error)
	listFn   func(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
}

func (m *mockAuditRepository) Append(ctx context.Context, q store.Querier, entry models.AuditEntry) (models.AuditEntry, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, q, entry)
	}
	entry.ID = 1
	return entry, nil
}

func (m *mockAuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: AuditService
// ─────────────────────────────────────────────

type mockAuditService struct {
	recordDeniedFn func(ctx context.Context, actorID *int64, resourceType, resourceID, address string, detail *string) error
	listFn         func(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
}

func (m *mockAuditService) RecordDenied(ctx context.Context, actorID *int64, resourceType, resourceID, address string, detail *string) error {
	if m.recordDeniedFn != nil {
		return m.recordDeniedFn(ctx, actorID, resourceType, resourceID, address, detail)
	}
	return nil
}

func (m *mockAuditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}
