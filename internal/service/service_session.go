package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop-guard/internal/config"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
	"github.com/MKhiriev/go-shop-guard/models"
)

// sessionGuard is the concrete implementation of SessionGuard.
//
// The token only points at a server-side session row; everything that matters
// (identity, role, bound address, validity) is read from that row on every
// request. A session leaves the active state exactly once and never returns:
// expiry and origin mismatch both invalidate through the repository's
// compare-and-set update.
type sessionGuard struct {
	sessionRepository store.SessionRepository
	userRepository    store.UserRepository

	tokenSignKey string
	tokenIssuer  string

	// idleTimeout expires a session after this much inactivity.
	idleTimeout time.Duration

	// lifetime expires a session this long after creation, regardless of
	// activity.
	lifetime time.Duration

	logger *logger.Logger
}

// NewSessionGuard constructs a SessionGuard enforcing the configured idle and
// absolute session lifetimes.
func NewSessionGuard(sessions store.SessionRepository, users store.UserRepository, app config.App, security config.Security, logger *logger.Logger) SessionGuard {
	return &sessionGuard{
		sessionRepository: sessions,
		userRepository:    users,
		tokenSignKey:      app.TokenSignKey,
		tokenIssuer:       app.TokenIssuer,
		idleTimeout:       security.SessionIdleTimeout,
		lifetime:          security.SessionLifetime,
		logger:            logger,
	}
}

// Authenticate resolves the presented token to its session record and runs
// the full guard sequence: token signature and issuer, session existence and
// validity, idle and absolute expiry, origin binding. A surviving session has
// its last-seen time advanced before the user record is returned.
//
// Returns:
//   - ErrAuthentication for a bad token, unknown or already-invalid session,
//     or an inactive account.
//   - ErrSessionExpired when an expiry window has passed; the session is
//     invalidated first.
//   - ErrSessionInvalidated when the request origin differs from the bound
//     address; the session is invalidated before rejection, so the stolen
//     token is dead for the original holder too.
func (g *sessionGuard) Authenticate(ctx context.Context, tokenString, originAddress string) (models.Session, models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseSessionToken(tokenString, g.tokenSignKey, g.tokenIssuer)
	if err != nil {
		log.Warn().Err(err).Msg("session token rejected")
		return models.Session{}, models.User{}, ErrAuthentication
	}

	session, err := g.sessionRepository.GetSession(ctx, token.SessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		log.Warn().Str("sessionID", token.SessionID).Msg("token points at unknown session")
		return models.Session{}, models.User{}, ErrAuthentication
	}
	if err != nil {
		return models.Session{}, models.User{}, fmt.Errorf("session lookup failed: %w", err)
	}

	if !session.Valid {
		return models.Session{}, models.User{}, ErrSessionInvalidated
	}

	now := time.Now()
	if g.expired(session, now) {
		if _, err := g.sessionRepository.Invalidate(ctx, session.SessionID); err != nil {
			return models.Session{}, models.User{}, fmt.Errorf("expiring session failed: %w", err)
		}
		return models.Session{}, models.User{}, ErrSessionExpired
	}

	if session.BoundAddress != originAddress {
		flipped, err := g.sessionRepository.Invalidate(ctx, session.SessionID)
		if err != nil {
			return models.Session{}, models.User{}, fmt.Errorf("invalidating session failed: %w", err)
		}
		log.Warn().
			Str("sessionID", session.SessionID).
			Str("boundAddress", session.BoundAddress).
			Str("originAddress", originAddress).
			Bool("flipped", flipped).
			Msg("request origin differs from session binding")
		return models.Session{}, models.User{}, ErrSessionInvalidated
	}

	if err := g.sessionRepository.Touch(ctx, session.SessionID, now); err != nil {
		return models.Session{}, models.User{}, fmt.Errorf("touching session failed: %w", err)
	}
	session.LastSeen = now

	user, err := g.userRepository.GetUserByID(ctx, session.UserID)
	if err != nil {
		return models.Session{}, models.User{}, fmt.Errorf("session user lookup failed: %w", err)
	}
	if !user.Active {
		return models.Session{}, models.User{}, ErrAuthentication
	}

	return session, user, nil
}

func (g *sessionGuard) expired(session models.Session, now time.Time) bool {
	if g.idleTimeout > 0 && now.Sub(session.LastSeen) > g.idleTimeout {
		return true
	}
	if g.lifetime > 0 && now.Sub(session.CreatedAt) > g.lifetime {
		return true
	}
	return false
}
