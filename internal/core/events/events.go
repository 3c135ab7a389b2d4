package events

import (
	"encoding/json"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
)

// Topic names of the event streams the module publishes and consumes.
const (
	TopicParcelCreated              = "parcel.created"
	TopicParcelStatusUpdated        = "parcel.status.updated"
	TopicParcelConsolidated         = "parcel.consolidated"
	TopicConsolidationStatusChanged = "consolidation.status.changed"
	TopicWarehouseCapacityChanged   = "warehouse.capacity.changed"
	TopicWarehouseStatusChanged     = "warehouse.status.changed"
)

// Envelope is the wire frame around every published event. Key carries the
// partitioning and idempotency key of the event (the aggregate identifier),
// and Payload holds the topic-specific body.
type Envelope struct {
	EventID    string          `json:"eventId"`
	Topic      string          `json:"topic"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload for publication. The payload must be
// JSON-marshalable.
func NewEnvelope(topic, key string, occurredAt time.Time, payload any) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:    kernel.NewUUID().String(),
		Topic:      topic,
		Key:        key,
		OccurredAt: occurredAt,
		Payload:    body,
	}, nil
}
