package events

import (
	"context"
	"time"

	"rently/pkg/logger"
)

// StatusRefresher periodically rederives event lifecycle statuses so
// events move through upcoming, active and completed without manual
// intervention.
type StatusRefresher struct {
	service  Service
	interval time.Duration
	done     chan struct{}
	log      *logger.Logger
}

func NewStatusRefresher(service Service, interval time.Duration) *StatusRefresher {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &StatusRefresher{
		service:  service,
		interval: interval,
		done:     make(chan struct{}),
		log:      logger.GetDefault(),
	}
}

// Start launches the refresh loop. The first pass runs immediately so
// a restarted server converges without waiting a full interval.
func (sr *StatusRefresher) Start(ctx context.Context) {
	go sr.run(ctx)
	sr.log.Info("event status refresher started", "interval", sr.interval.String())
}

func (sr *StatusRefresher) Stop() {
	close(sr.done)
	sr.log.Info("event status refresher stopped")
}

func (sr *StatusRefresher) run(ctx context.Context) {
	ticker := time.NewTicker(sr.interval)
	defer ticker.Stop()

	sr.refresh(ctx)

	for {
		select {
		case <-ticker.C:
			sr.refresh(ctx)
		case <-sr.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (sr *StatusRefresher) refresh(ctx context.Context) {
	updated, err := sr.service.RefreshStatuses(ctx)
	if err != nil {
		sr.log.Error("event status refresh failed", "error", err)
		return
	}
	if updated > 0 {
		sr.log.Info("event statuses refreshed", "updated", updated)
	}
}
