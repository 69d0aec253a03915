// Package schedule runs the unattended daily sync from Go. The club used
// to rely on a platform cron for this; driving it from the API process
// keeps the deployment to one long-running service.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/tuscricket/clubstats/internal/ingest"
)

// Config controls the daily sync schedule.
type Config struct {
	Enabled bool
	HourUTC int // hour of day, 0-23
}

// Start blocks until ctx is cancelled, firing one full-scrape sync per day
// at the configured UTC hour. The scheduled run carries no token and no
// payload, so it never trips the authorization gate. Intended to be called
// with `go`.
func Start(ctx context.Context, orch *ingest.Orchestrator, cfg Config, logger *slog.Logger) {
	if !cfg.Enabled {
		logger.Info("Scheduled sync disabled")
		return
	}
	logger.Info("Scheduled sync started", "hour_utc", cfg.HourUTC)

	for {
		wait := untilNextRun(time.Now().UTC(), cfg.HourUTC)
		timer := time.NewTimer(wait)

		select {
		case <-timer.C:
			result := orch.Run(ctx, ingest.Request{})
			if result.Err != nil {
				logger.Error("Scheduled sync failed", "error", result.Err)
			} else {
				logger.Info("Scheduled sync complete", "summary", result.Summary())
			}
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Scheduled sync stopped")
			return
		}
	}
}

// untilNextRun computes the wait until the next occurrence of hourUTC,
// always in the future so a run never double-fires.
func untilNextRun(now time.Time, hourUTC int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
