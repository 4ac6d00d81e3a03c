package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request payload fails basic
	// validation before any storage or crypto work happens.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAuthentication covers every credential failure the caller is allowed
	// to learn about: unknown email, wrong password, bad MFA code, malformed
	// or unknown session token. The cause is logged, never returned.
	ErrAuthentication = errors.New("authentication failed")

	// ErrMFARequired is returned by password login when the account has MFA
	// enabled; the caller must complete the TOTP elevation step.
	ErrMFARequired = errors.New("mfa verification required")

	// ErrMFANotConfigured is returned when an MFA operation targets an
	// account that has no pending or enabled MFA secret.
	ErrMFANotConfigured = errors.New("mfa is not configured")

	// ErrSessionExpired is returned when a presented session has passed its
	// idle or absolute lifetime. The session is terminal at that point.
	ErrSessionExpired = errors.New("session is expired")

	// ErrSessionInvalidated is returned when a presented session has been
	// invalidated, including the invalidation performed on origin mismatch.
	ErrSessionInvalidated = errors.New("session is invalidated")

	// ErrPermissionDenied is returned when the access policy denies an
	// action. Exactly one ACCESS-DENIED audit entry is recorded before this
	// error reaches the caller.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTokenCreationFailed is returned when signing a session token fails.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
