// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3. Jobs are managed through JobManager, which
// starts and stops them together with the application.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CartPurgeJob periodically removes deactivated carts older than the
// configured retention. Carts are deactivated at checkout, not deleted, so
// the order flow stays fast; this job does the actual cleanup off the
// request path.
type CartPurgeJob struct {
	handler   commands.PurgeCartsCommandHandler
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewCartPurgeJob creates a job purging carts older than retention.
func NewCartPurgeJob(handler commands.PurgeCartsCommandHandler, retention time.Duration,
	logger *slog.Logger) *CartPurgeJob {
	return &CartPurgeJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "cart_purge_job"),
	}
}

// Start schedules the purge to run hourly.
func (j *CartPurgeJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		cmd, err := commands.NewPurgeCartsCommand(j.retention)
		if err != nil {
			j.logger.ErrorContext(ctx, "Cart purge job misconfigured", "error", err)
			return
		}

		removed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Cart purge job failed", "error", err)
			return
		}

		if removed > 0 {
			j.logger.InfoContext(ctx, "Purged deactivated carts", "removed", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cart purge job started (running hourly)",
		"retention", j.retention)
	return nil
}

// Stop stops the cart purge job.
func (j *CartPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cart purge job stopped")
}
