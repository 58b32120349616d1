package worker

import (
	"context"
	"time"

	"github.com/brainspark/brainspark-backend/internal/service"
	"github.com/rs/zerolog"
)

// SessionReaper periodically drops quiz sessions that have seen no
// activity for longer than the configured idle TTL.
type SessionReaper struct {
	sessionService *service.SessionService
	maxIdle        time.Duration
	interval       time.Duration
	log            zerolog.Logger
}

// NewSessionReaper creates a new SessionReaper.
func NewSessionReaper(sessionService *service.SessionService, maxIdle time.Duration, log zerolog.Logger) *SessionReaper {
	return &SessionReaper{
		sessionService: sessionService,
		maxIdle:        maxIdle,
		interval:       time.Minute,
		log:            log.With().Str("component", "session_reaper").Logger(),
	}
}

// Start begins the reaping loop. Call in a goroutine.
func (w *SessionReaper) Start(ctx context.Context) {
	w.log.Info().Dur("max_idle", w.maxIdle).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			if reaped := w.sessionService.ReapIdle(w.maxIdle); reaped > 0 {
				w.log.Info().Int("reaped", reaped).Msg("Idle sessions dropped")
			}
		}
	}
}
