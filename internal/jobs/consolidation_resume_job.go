package jobs

import (
	"context"
	"log/slog"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ConsolidationResumeJob finishes consolidation batches whose member
// updates were interrupted. Runs every ten seconds, finds batches with
// pending members and drains them through the completion handler. Batches
// mid-flight in a live request are re-driven harmlessly: member completion
// is idempotent per member.
type ConsolidationResumeJob struct {
	uowFactory ports.UnitOfWorkFactory
	handler    commands.CompleteConsolidationCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewConsolidationResumeJob creates a job that resumes interrupted batches.
func NewConsolidationResumeJob(
	uowFactory ports.UnitOfWorkFactory,
	handler commands.CompleteConsolidationCommandHandler,
	logger *slog.Logger,
) *ConsolidationResumeJob {
	return &ConsolidationResumeJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "consolidation_resume_job"),
	}
}

// Start begins the resume job to run every ten seconds.
func (j *ConsolidationResumeJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		if err := j.resume(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Consolidation resume tick failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Consolidation resume job started (running every ten seconds)")
	return nil
}

// Stop stops the resume job.
func (j *ConsolidationResumeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Consolidation resume job stopped")
}

// resume drains every batch that still has pending members.
func (j *ConsolidationResumeJob) resume(ctx context.Context) error {
	repo := j.uowFactory.Create().ConsolidationRepository()

	batches, err := repo.GetAllWithPendingMembers(ctx)
	if err != nil {
		return err
	}

	for _, batch := range batches {
		cmd, err := commands.NewCompleteConsolidationCommand(batch.ID())
		if err != nil {
			return err
		}

		if _, err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Batch resume failed",
				"consolidationId", batch.ConsolidationID().String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Interrupted batch resumed",
			"consolidationId", batch.ConsolidationID().String())
	}

	return nil
}
