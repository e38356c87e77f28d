// Package jobs runs the application's scheduled background work on cron
// timers.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"fleetops/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ScheduledDispatchJob sweeps for orders whose scheduled dispatch time has
// arrived and pushes them through the dispatch gate. Runs once a minute;
// scheduling is minute-grained.
type ScheduledDispatchJob struct {
	handler commands.DispatchDueOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewScheduledDispatchJob creates the dispatch sweep job.
func NewScheduledDispatchJob(handler commands.DispatchDueOrdersCommandHandler, logger *slog.Logger) *ScheduledDispatchJob {
	return &ScheduledDispatchJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "scheduled_dispatch_job"),
	}
}

// Start begins the sweep on a one-minute schedule.
func (j *ScheduledDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewDispatchDueOrdersCommand(time.Now().UTC())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Dispatch sweep command invalid", "error", cmdErr)
			return
		}

		dispatched, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Dispatch sweep failed", "error", handleErr)
			return
		}
		if dispatched > 0 {
			j.logger.InfoContext(ctx, "Dispatched scheduled orders", "count", dispatched)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Scheduled dispatch job started (running every minute)")
	return nil
}

// Stop stops the sweep.
func (j *ScheduledDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Scheduled dispatch job stopped")
}
