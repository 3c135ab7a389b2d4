package jobs

import (
	"fmt"
	"log/slog"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob         *OutboxRelayJob
	consolidationResumeJob *ConsolidationResumeJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.EventPublisher,
	completeHandler commands.CompleteConsolidationCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob:         NewOutboxRelayJob(uowFactory, publisher, logger),
		consolidationResumeJob: NewConsolidationResumeJob(uowFactory, completeHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.consolidationResumeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start consolidation resume job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
	jm.consolidationResumeJob.Stop()
}
