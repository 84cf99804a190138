package analytics

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically removes view dedup rows that have aged out of the
// window. It is a low-priority background job, independent of request
// handling.
type Sweeper struct {
	service  Service
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a sweeper. interval <= 0 selects hourly sweeps.
func NewSweeper(service Service, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on a ticker until ctx is cancelled. Errors are logged and the
// loop continues; a failed sweep only delays cleanup.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept, err := s.service.SweepExpired(ctx)
			if err != nil {
				s.logger.Error("view dedup sweep failed", "error", err)
				continue
			}
			if swept > 0 {
				s.logger.Info("view dedup state swept", "rows", swept)
			}
		}
	}
}
