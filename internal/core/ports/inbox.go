package ports

import (
	"context"
)

// InboxRepository records events a consumer group has already applied, so
// redelivered events become no-ops. The key is the event's idempotency key
// (the aggregate identifier it concerns), scoped per consumer group.
type InboxRepository interface {
	// MarkProcessed records the key as applied for the group. Returns
	// true when the key was new, false when it was already recorded.
	// The write participates in the surrounding transaction, so the
	// idempotency mark commits atomically with the consumer's effect.
	MarkProcessed(ctx context.Context, consumerGroup, key string) (bool, error)
}
