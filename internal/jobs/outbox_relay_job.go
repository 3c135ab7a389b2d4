package jobs

import (
	"context"
	"log/slog"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// relayBatchSize bounds how many envelopes one relay tick pushes to the bus.
const relayBatchSize = 64

// OutboxRelayJob drains unpublished outbox envelopes to the event bus.
// Runs every second so committed events reach consumers with sub-second lag.
// Publication is at least once: a crash between publish and the published
// mark re-sends the envelope, and consumers deduplicate through the inbox.
type OutboxRelayJob struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.EventPublisher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOutboxRelayJob creates a job that relays outbox envelopes to the bus.
func NewOutboxRelayJob(
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.relay(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay tick failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// relay publishes one batch of unpublished envelopes in insertion order.
// The first publish failure stops the batch so ordering holds across ticks.
func (j *OutboxRelayJob) relay(ctx context.Context) error {
	outbox := j.uowFactory.Create().OutboxRepository()

	envelopes, err := outbox.GetUnpublished(ctx, relayBatchSize)
	if err != nil {
		return err
	}

	for _, envelope := range envelopes {
		if err := j.publisher.Publish(ctx, envelope); err != nil {
			return errs.NewUpstreamUnavailableError("event bus", err)
		}
		if err := outbox.MarkPublished(ctx, envelope.EventID); err != nil {
			return err
		}
	}

	return nil
}
