package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-shop-guard/internal/config"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
	"github.com/MKhiriev/go-shop-guard/internal/validators"
	"github.com/MKhiriev/go-shop-guard/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and session minting.
// Passwords are stored as bcrypt hashes; credential failures of any kind are
// reported to callers as the single [ErrAuthentication] sentinel so that
// responses do not reveal which check failed.
type authService struct {
	db store.Database

	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionRepository persists the server-side session records minted on
	// successful login.
	sessionRepository store.SessionRepository

	// auditRepository records the CREATE entry for new accounts inside the
	// registration transaction.
	auditRepository store.AuditRepository

	// mfa verifies TOTP codes during the login elevation step.
	mfa MFAService

	// uuidGenerator produces session identifiers.
	uuidGenerator *utils.UUIDGenerator

	// validator checks registration input before it reaches storage.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(db store.Database, users store.UserRepository, sessions store.SessionRepository, audit store.AuditRepository, mfa MFAService, uuidGenerator *utils.UUIDGenerator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		db:                db,
		userRepository:    users,
		sessionRepository: sessions,
		auditRepository:   audit,
		mfa:               mfa,
		uuidGenerator:     uuidGenerator,
		validator:         validators.NewEntityValidator(),
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		logger:            logger,
	}
}

// Register creates a new customer account.
//
// The password is hashed with bcrypt before it reaches storage; the user row
// and its CREATE audit entry are written in one transaction, so a failed
// audit append aborts the registration.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if email, username or password is empty.
//   - A wrapped storage error if persistence fails (e.g. email already
//     taken — see store.ErrEmailAlreadyExists).
func (a *authService) Register(ctx context.Context, user models.User, password, address string) (models.User, error) {
	log := logger.FromContext(ctx)

	if password == "" {
		log.Error().Str("email", user.Email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	if err := a.validator.Validate(ctx, user, validators.FieldEmail, validators.FieldUsername, validators.FieldRole); err != nil {
		log.Error().Err(err).Msg("invalid registration data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Active = true

	var registered models.User
	err = a.db.WithinTransaction(ctx, func(q store.Querier) error {
		var txErr error
		registered, txErr = a.userRepository.CreateUser(ctx, q, user)
		if txErr != nil {
			return txErr
		}

		detail, txErr := json.Marshal(map[string]any{"username": registered.Username})
		if txErr != nil {
			return txErr
		}
		entry := models.AuditEntry{
			ActorID:      &registered.UserID,
			ResourceType: registered.TableName(),
			ResourceID:   fmt.Sprintf("%d", registered.UserID),
			Action:       models.AuditActionCreate,
			Detail:       strPointer(string(detail)),
			Address:      address,
			Timestamp:    time.Now(),
		}
		_, txErr = a.auditRepository.Append(ctx, q, entry)
		return txErr
	})
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registered, nil
}

// Login authenticates with email and password and mints a session bound to
// the originating address.
//
// Returns:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrAuthentication on unknown email, inactive account or wrong password.
//   - ErrMFARequired when the account has MFA enabled; the caller must
//     complete the elevation step via [AuthService.LoginMFA].
func (a *authService) Login(ctx context.Context, email, password, address string) (models.User, models.Token, error) {
	user, err := a.verifyPassword(ctx, email, password)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	if user.MFAEnabled {
		return models.User{}, models.Token{}, ErrMFARequired
	}

	token, err := a.mintSession(ctx, user, address)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// LoginMFA completes the MFA elevation step: it re-verifies the password,
// checks the TOTP code against the stored secret and mints a session.
//
// A wrong or malformed code yields [ErrAuthentication], the same sentinel as
// a wrong password.
func (a *authService) LoginMFA(ctx context.Context, email, password, code, address string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := a.verifyPassword(ctx, email, password)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	if !user.MFAEnabled || user.MFASecret == nil {
		return models.User{}, models.Token{}, ErrMFANotConfigured
	}

	if !a.mfa.Verify(*user.MFASecret, code) {
		log.Warn().Int64("userID", user.UserID).Msg("mfa code rejected during login")
		return models.User{}, models.Token{}, ErrAuthentication
	}

	token, err := a.mintSession(ctx, user, address)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// Logout invalidates the session. Logging out an already-terminal session is
// not an error.
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidDataProvided
	}

	_, err := a.sessionRepository.Invalidate(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("session invalidation failed: %w", err)
	}

	return nil
}

// ChangePassword rotates the account password. The current password must
// verify first; a wrong one yields [ErrAuthentication], the same sentinel as
// a failed login.
//
// The new hash and its UPDATE audit entry are written in one transaction.
// Afterwards every session of the user except the one performing the change
// is invalidated, so logins made under the old password cannot outlive it.
func (a *authService) ChangePassword(ctx context.Context, userID int64, sessionID, oldPassword, newPassword, address string) error {
	log := logger.FromContext(ctx)

	if oldPassword == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		log.Warn().Int64("userID", userID).Msg("wrong current password on password change")
		return ErrAuthentication
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	err = a.db.WithinTransaction(ctx, func(q store.Querier) error {
		if txErr := a.userRepository.UpdatePassword(ctx, q, userID, string(hash)); txErr != nil {
			return txErr
		}

		detail, txErr := json.Marshal(map[string]any{"changed": []string{"password_hash"}})
		if txErr != nil {
			return txErr
		}
		entry := models.AuditEntry{
			ActorID:      &userID,
			ResourceType: user.TableName(),
			ResourceID:   fmt.Sprintf("%d", userID),
			Action:       models.AuditActionUpdate,
			Detail:       strPointer(string(detail)),
			Address:      address,
			Timestamp:    time.Now(),
		}
		_, txErr = a.auditRepository.Append(ctx, q, entry)
		return txErr
	})
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("password change ended with error")
		return fmt.Errorf("password change ended with error: %w", err)
	}

	invalidated, err := a.sessionRepository.InvalidateOthersForUser(ctx, userID, sessionID)
	if err != nil {
		return fmt.Errorf("invalidating sessions after password change: %w", err)
	}
	log.Info().Int64("userID", userID).Int64("sessions", invalidated).Msg("password changed, other sessions invalidated")

	return nil
}

// verifyPassword looks up the account and compares the bcrypt hash. Every
// failure mode collapses into ErrAuthentication.
func (a *authService) verifyPassword(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Warn().Str("email", email).Msg("login attempt for unknown email")
		return models.User{}, ErrAuthentication
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.Active {
		log.Warn().Int64("userID", user.UserID).Msg("login attempt for inactive account")
		return models.User{}, ErrAuthentication
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Int64("userID", user.UserID).Msg("wrong password")
		return models.User{}, ErrAuthentication
	}

	return user, nil
}

// mintSession creates a session row bound to the originating address and
// signs a token pointing at it.
func (a *authService) mintSession(ctx context.Context, user models.User, address string) (models.Token, error) {
	now := time.Now()
	session := models.Session{
		SessionID:    a.uuidGenerator.Generate(),
		UserID:       user.UserID,
		BoundAddress: address,
		CreatedAt:    now,
		LastSeen:     now,
	}

	created, err := a.sessionRepository.CreateSession(ctx, session)
	if err != nil {
		return models.Token{}, fmt.Errorf("session creation failed: %w", err)
	}

	token, err := utils.GenerateSessionToken(a.tokenIssuer, created.SessionID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func strPointer(s string) *string { return &s }
