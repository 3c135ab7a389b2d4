package ports

import (
	"context"

	"parcelhub/internal/core/events"
)

// OutboxRepository stores event envelopes in the same transaction as the
// aggregate change that produced them. A relay job later drains unpublished
// rows to the event bus, which is what makes publication survive crashes
// between commit and publish.
type OutboxRepository interface {
	// Add stores an envelope for later publication.
	Add(ctx context.Context, envelope events.Envelope) error

	// GetUnpublished retrieves up to limit unpublished envelopes in
	// insertion order.
	GetUnpublished(ctx context.Context, limit int) ([]events.Envelope, error)

	// MarkPublished records that the envelope reached the bus.
	MarkPublished(ctx context.Context, eventID string) error
}

// EventPublisher pushes envelopes onto the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, envelope events.Envelope) error
}
