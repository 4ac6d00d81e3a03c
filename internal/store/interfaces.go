package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shop-guard/models"
)

// UserRepository persists user accounts. Phone, address and MFA secret are
// sealed by the repository before they reach the database and opened again on
// read; the rest of the application only ever sees plaintext values.
type UserRepository interface {
	CreateUser(ctx context.Context, q Querier, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, q Querier, user models.User) (models.User, error)
	SetMFA(ctx context.Context, q Querier, userID int64, enabled bool, secret *string) error
	UpdatePassword(ctx context.Context, q Querier, userID int64, passwordHash string) error
}

// SessionRepository persists server-side session records. A session row is
// the single source of truth for identity on authenticated requests.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	GetSession(ctx context.Context, sessionID string) (models.Session, error)
	Touch(ctx context.Context, sessionID string, lastSeen time.Time) error
	// Invalidate flips a session from valid to invalid. The returned flag is
	// true only for the call that actually performed the flip; concurrent or
	// repeated calls observe false.
	Invalidate(ctx context.Context, sessionID string) (bool, error)
	InvalidateAllForUser(ctx context.Context, userID int64) (int64, error)
	// InvalidateOthersForUser invalidates every valid session of the user
	// except the one identified by keepSessionID.
	InvalidateOthersForUser(ctx context.Context, userID int64, keepSessionID string) (int64, error)
	DeleteStale(ctx context.Context, idleBefore, createdBefore time.Time) (int64, error)
}

// OrderRepository persists orders together with their embedded payment
// instrument. Shipping address and all payment fields are sealed before
// insert and opened on read.
type OrderRepository interface {
	CreateOrder(ctx context.Context, q Querier, order models.Order) (models.Order, error)
	GetOrderByID(ctx context.Context, orderID int64) (models.Order, error)
}

// AuditRepository appends entries to the append-only audit log and reads them
// back with optional filtering. There are no update or delete operations.
type AuditRepository interface {
	Append(ctx context.Context, q Querier, entry models.AuditEntry) (models.AuditEntry, error)
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
}

// Storages aggregates all repositories behind a single value that is passed
// to the service layer.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
	OrderRepository   OrderRepository
	AuditRepository   AuditRepository
}
