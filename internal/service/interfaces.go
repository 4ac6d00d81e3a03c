package service

import (
	"context"

	"github.com/MKhiriev/go-shop-guard/models"
)

// AuthService handles account registration and the login flow that ends in a
// minted session. Sessions are bound to the originating address at mint time.
type AuthService interface {
	Register(ctx context.Context, user models.User, password, address string) (models.User, error)
	Login(ctx context.Context, email, password, address string) (models.User, models.Token, error)
	LoginMFA(ctx context.Context, email, password, code, address string) (models.User, models.Token, error)
	Logout(ctx context.Context, sessionID string) error
	// ChangePassword rotates the account password after verifying the
	// current one. Every session of the user except sessionID is
	// invalidated afterwards.
	ChangePassword(ctx context.Context, userID int64, sessionID, oldPassword, newPassword, address string) error
}

// SessionGuard authenticates a request: it resolves the presented token to a
// server-side session record, enforces expiry and origin binding, and returns
// the session together with its user. Identity and role always come from the
// returned records, never from the token.
type SessionGuard interface {
	Authenticate(ctx context.Context, tokenString, originAddress string) (models.Session, models.User, error)
}

// MFAService manages the TOTP second factor: secret provisioning, enable
// confirmation, disable, and code verification during login.
type MFAService interface {
	Setup(ctx context.Context, userID int64) (secret, provisioningURL string, err error)
	Enable(ctx context.Context, userID int64, code, address string) error
	Disable(ctx context.Context, userID int64, address string) error
	Verify(secret, code string) bool
}

// AccessPolicy is the deny-by-default capability check. Authorize returns nil
// when the role holds the capability; otherwise it records exactly one
// ACCESS-DENIED audit entry and returns [ErrPermissionDenied].
type AccessPolicy interface {
	Authorize(ctx context.Context, actorID int64, role models.Role, capability models.Capability, address string) error
	Allowed(role models.Role, capability models.Capability) bool
}

// AuditService records and reads the append-only audit log.
type AuditService interface {
	RecordDenied(ctx context.Context, actorID *int64, resourceType, resourceID, address string, detail *string) error
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
}

// ProfileService reads and updates the protected profile attributes.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User, address string) (models.User, error)
}

// OrderService creates orders carrying a payment instrument and reads them
// back for their owner.
type OrderService interface {
	CreateOrder(ctx context.Context, order models.Order, address string) (models.Order, error)
	GetOrder(ctx context.Context, orderID, actorID int64, role models.Role, address string) (models.Order, error)
}
