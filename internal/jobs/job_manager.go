package jobs

import (
	"fmt"
	"log/slog"

	"fleetops/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	scheduledDispatchJob *ScheduledDispatchJob
}

// NewJobManager creates a job manager wired to the given command handlers.
func NewJobManager(
	dispatchDueOrdersHandler commands.DispatchDueOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		scheduledDispatchJob: NewScheduledDispatchJob(dispatchDueOrdersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.scheduledDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start scheduled dispatch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.scheduledDispatchJob.Stop()
}
