package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/perfdash/internal/model"
)

// RosterRefresher refetches the roster and rewrites its cache entry.
type RosterRefresher interface {
	Refresh(ctx context.Context) ([]model.Student, error)
}

// RosterRefreshWorker keeps the cached roster warm so dashboard requests
// rarely pay for an upstream round trip.
type RosterRefreshWorker struct {
	roster   RosterRefresher
	interval time.Duration
	log      zerolog.Logger
}

func NewRosterRefreshWorker(roster RosterRefresher, interval time.Duration, log zerolog.Logger) *RosterRefreshWorker {
	return &RosterRefreshWorker{
		roster:   roster,
		interval: interval,
		log:      log.With().Str("component", "roster_refresh_worker").Logger(),
	}
}

// Start blocks until ctx is cancelled, refreshing the roster every interval.
func (w *RosterRefreshWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.log.Info().Msg("RosterRefreshWorker disabled")
		return
	}

	w.log.Info().Dur("interval", w.interval).Msg("RosterRefreshWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("RosterRefreshWorker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RosterRefreshWorker) refresh(ctx context.Context) {
	students, err := w.roster.Refresh(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Warn().Err(err).Msg("Roster refresh failed")
		}
		return
	}
	w.log.Debug().Int("students", len(students)).Msg("Roster refreshed")
}
