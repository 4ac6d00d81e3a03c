package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/models"
)

// sessionRepository is the SQL-backed implementation of [SessionRepository].
//
// Session rows carry no protected plaintext, so no field codec is involved;
// what matters here is the compare-and-set invalidation that guarantees a
// session flips from valid to invalid exactly once even under concurrent
// requests.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session row marked valid.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createSession,
		session.SessionID, session.UserID, session.BoundAddress, session.CreatedAt, session.LastSeen)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: executing insert")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	session.Valid = true
	return session, nil
}

// GetSession retrieves a session row by its identifier. Returns
// [ErrSessionNotFound] when no row matches.
func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	err := r.db.QueryRowContext(ctx, getSession, sessionID).Scan(
		&session.SessionID, &session.UserID, &session.BoundAddress,
		&session.CreatedAt, &session.LastSeen, &session.Valid)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.GetSession").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// Touch records request activity on a still-valid session. Touching an
// invalid or missing session is not an error; the guard has already decided
// what to do with it.
func (r *sessionRepository) Touch(ctx context.Context, sessionID string, lastSeen time.Time) error {
	_, err := r.db.ExecContext(ctx, touchSession, lastSeen, sessionID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// Invalidate flips a session from valid to invalid with a compare-and-set
// update. The returned flag is true only when this call performed the flip;
// a session that is already invalid or missing yields false with no error.
func (r *sessionRepository) Invalidate(ctx context.Context, sessionID string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, invalidateSession, sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.Invalidate").Msg("error: executing update")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

// InvalidateAllForUser invalidates every valid session belonging to the user
// and reports how many were flipped. Used when MFA state changes so stale
// sessions cannot outlive a security-relevant account update.
func (r *sessionRepository) InvalidateAllForUser(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, invalidateUserSessions, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// InvalidateOthersForUser invalidates every valid session of the user except
// the one identified by keepSessionID. Used on password change so the
// session that performed the change survives while every other login is
// forced to re-authenticate.
func (r *sessionRepository) InvalidateOthersForUser(ctx context.Context, userID int64, keepSessionID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, invalidateOtherUserSessions, userID, keepSessionID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// DeleteStale removes rows that can never become active again: invalidated
// sessions and sessions past their idle or absolute lifetime. Run
// periodically by the sweeper worker.
func (r *sessionRepository) DeleteStale(ctx context.Context, idleBefore, createdBefore time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, deleteStaleSessions, idleBefore, createdBefore)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}
