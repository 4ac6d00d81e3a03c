package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shop-guard/internal/config"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/store"
)

// SessionSweeper periodically prunes session rows that can never become
// active again: invalidated sessions and sessions past their idle or
// absolute lifetime. Expiry is enforced on every guarded request; the
// sweeper only keeps the table from growing without bound.
type SessionSweeper struct {
	sessions store.SessionRepository

	interval    time.Duration
	idleTimeout time.Duration
	lifetime    time.Duration

	logger *logger.Logger
	stop   chan struct{}
}

func NewSessionSweeper(sessions store.SessionRepository, workersCfg config.Workers, securityCfg config.Security, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions:    sessions,
		interval:    workersCfg.SessionSweepInterval,
		idleTimeout: securityCfg.SessionIdleTimeout,
		lifetime:    securityCfg.SessionLifetime,
		logger:      logger,
		stop:        make(chan struct{}),
	}
}

// Run starts the sweep loop in a background goroutine. A zero interval
// disables the sweeper entirely.
func (s *SessionSweeper) Run() {
	if s.interval == 0 {
		s.logger.Info().Msg("session sweeper disabled")
		return
	}

	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")
	go s.loop()
}

// Stop terminates the sweep loop. Safe to call only once.
func (s *SessionSweeper) Stop() {
	close(s.stop)
}

func (s *SessionSweeper) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// A zero timeout means "never expires"; the zero cutoff matches no row,
	// so only invalidated sessions are pruned then.
	now := time.Now().UTC()
	var idleBefore, createdBefore time.Time
	if s.idleTimeout > 0 {
		idleBefore = now.Add(-s.idleTimeout)
	}
	if s.lifetime > 0 {
		createdBefore = now.Add(-s.lifetime)
	}

	deleted, err := s.sessions.DeleteStale(ctx, idleBefore, createdBefore)
	if err != nil {
		s.logger.Error().Err(err).Msg("session sweep failed")
		return
	}

	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("stale sessions pruned")
	}
}
