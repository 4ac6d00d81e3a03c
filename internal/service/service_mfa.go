package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/models"
)

// totpPeriod is the TOTP time-step in seconds. Fixed by the provisioning URI
// we hand to authenticator apps.
const totpPeriod = 30

// mfaService is the concrete implementation of MFAService.
//
// Secrets are generated server-side, stored sealed by the user repository and
// never leave the service after setup. Code verification tolerates the
// configured number of adjacent time-steps of clock drift; a malformed code
// is just a failed verification, not an error.
type mfaService struct {
	db store.Database

	userRepository    store.UserRepository
	sessionRepository store.SessionRepository
	auditRepository   store.AuditRepository

	// issuer names this service inside authenticator apps.
	issuer string

	// skew is the number of adjacent TOTP steps accepted in either
	// direction.
	skew uint

	logger *logger.Logger
}

// NewMFAService constructs an MFAService with the given drift tolerance.
func NewMFAService(db store.Database, users store.UserRepository, sessions store.SessionRepository, audit store.AuditRepository, issuer string, skew uint, logger *logger.Logger) MFAService {
	return &mfaService{
		db:                db,
		userRepository:    users,
		sessionRepository: sessions,
		auditRepository:   audit,
		issuer:            issuer,
		skew:              skew,
		logger:            logger,
	}
}

// Setup generates a fresh TOTP secret for the user and stores it in the
// pending (disabled) state. The secret and the otpauth:// provisioning URL
// are returned once so the user can register an authenticator; MFA stays off
// until a valid code confirms possession via [MFAService.Enable].
//
// Returns ErrInvalidDataProvided when MFA is already enabled on the account.
func (m *mfaService) Setup(ctx context.Context, userID int64) (string, string, error) {
	log := logger.FromContext(ctx)

	user, err := m.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("user lookup failed: %w", err)
	}
	if user.MFAEnabled {
		return "", "", ErrInvalidDataProvided
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      m.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return "", "", fmt.Errorf("generating totp secret: %w", err)
	}

	secret := key.Secret()
	if err := m.userRepository.SetMFA(ctx, m.db, userID, false, &secret); err != nil {
		return "", "", fmt.Errorf("storing pending mfa secret: %w", err)
	}

	log.Info().Int64("userID", userID).Msg("mfa secret provisioned, awaiting confirmation")
	return secret, key.URL(), nil
}

// Enable confirms possession of the pending secret and turns MFA on. The
// state change and its UPDATE audit entry are written in one transaction.
//
// Returns:
//   - ErrMFANotConfigured when no pending secret exists.
//   - ErrAuthentication when the code does not verify.
func (m *mfaService) Enable(ctx context.Context, userID int64, code, address string) error {
	log := logger.FromContext(ctx)

	user, err := m.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}
	if user.MFASecret == nil {
		return ErrMFANotConfigured
	}
	if user.MFAEnabled {
		return ErrInvalidDataProvided
	}

	if !m.Verify(*user.MFASecret, code) {
		log.Warn().Int64("userID", userID).Msg("mfa enable confirmation code rejected")
		return ErrAuthentication
	}

	err = m.db.WithinTransaction(ctx, func(q store.Querier) error {
		if txErr := m.userRepository.SetMFA(ctx, q, userID, true, user.MFASecret); txErr != nil {
			return txErr
		}
		return m.appendMFAAudit(ctx, q, userID, address, true)
	})
	if err != nil {
		return fmt.Errorf("enabling mfa failed: %w", err)
	}

	return nil
}

// Disable turns MFA off and clears the stored secret, writing the UPDATE
// audit entry in the same transaction. Every session of the user is then
// invalidated so the weaker authentication state starts from a fresh login.
func (m *mfaService) Disable(ctx context.Context, userID int64, address string) error {
	log := logger.FromContext(ctx)

	user, err := m.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}
	if !user.MFAEnabled && user.MFASecret == nil {
		return ErrMFANotConfigured
	}

	err = m.db.WithinTransaction(ctx, func(q store.Querier) error {
		if txErr := m.userRepository.SetMFA(ctx, q, userID, false, nil); txErr != nil {
			return txErr
		}
		return m.appendMFAAudit(ctx, q, userID, address, false)
	})
	if err != nil {
		return fmt.Errorf("disabling mfa failed: %w", err)
	}

	invalidated, err := m.sessionRepository.InvalidateAllForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("invalidating sessions after mfa disable: %w", err)
	}
	log.Info().Int64("userID", userID).Int64("sessions", invalidated).Msg("mfa disabled, sessions invalidated")

	return nil
}

// Verify checks a TOTP code against the secret. A malformed or empty code is
// a negative result, never an error.
func (m *mfaService) Verify(secret, code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}

	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      m.skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		m.logger.Warn().Err(err).Msg("totp validation rejected input")
		return false
	}

	return ok
}

func (m *mfaService) appendMFAAudit(ctx context.Context, q store.Querier, userID int64, address string, enabled bool) error {
	detail, err := json.Marshal(map[string]any{"mfa_enabled": enabled})
	if err != nil {
		return err
	}

	entry := models.AuditEntry{
		ActorID:      &userID,
		ResourceType: models.User{}.TableName(),
		ResourceID:   fmt.Sprintf("%d", userID),
		Action:       models.AuditActionUpdate,
		Detail:       strPointer(string(detail)),
		Address:      address,
		Timestamp:    time.Now(),
	}
	_, err = m.auditRepository.Append(ctx, q, entry)
	return err
}
