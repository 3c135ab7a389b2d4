// Package redisbus moves event envelopes over Redis Streams. Each topic is
// one stream; consumers read through consumer groups, which gives every
// group its own at-least-once cursor over the stream.
package redisbus

import (
	"context"
	"time"

	"parcelhub/internal/core/events"

	"github.com/redis/go-redis/v9"
)

// Stream field names of a published envelope.
const (
	fieldEventID    = "eventId"
	fieldKey        = "key"
	fieldOccurredAt = "occurredAt"
	fieldPayload    = "payload"
)

// Publisher pushes envelopes onto the Redis stream named after their topic.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a publisher on the given Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish appends the envelope to its topic's stream.
func (p *Publisher) Publish(ctx context.Context, envelope events.Envelope) error {
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: envelope.Topic,
		Values: envelopeValues(envelope),
	}).Err()
}

func envelopeValues(envelope events.Envelope) map[string]interface{} {
	return map[string]interface{}{
		fieldEventID:    envelope.EventID,
		fieldKey:        envelope.Key,
		fieldOccurredAt: envelope.OccurredAt.Format(time.RFC3339Nano),
		fieldPayload:    string(envelope.Payload),
	}
}
