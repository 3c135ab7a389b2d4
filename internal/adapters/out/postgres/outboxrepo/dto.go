// Package outboxrepo persists event envelopes alongside the aggregate
// changes that produced them, and serves the relay job that drains them to
// the event bus.
package outboxrepo

import (
	"encoding/json"
	"time"

	"parcelhub/internal/core/events"

	"github.com/google/uuid"
)

// OutboxDTO represents one stored event envelope awaiting publication.
type OutboxDTO struct {
	EventID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic      string    `gorm:"type:varchar(64);index"`
	Key        string    `gorm:"type:varchar(64)"`
	OccurredAt time.Time
	Payload    string `gorm:"type:jsonb"`
	Published  bool   `gorm:"index"`
	CreatedAt  time.Time
}

// TableName specifies the database table name for outbox entries.
func (OutboxDTO) TableName() string {
	return "outbox_events"
}

// fromEnvelope converts a wire envelope to its database representation.
func fromEnvelope(envelope events.Envelope) (OutboxDTO, error) {
	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		return OutboxDTO{}, err
	}

	return OutboxDTO{
		EventID:    eventID,
		Topic:      envelope.Topic,
		Key:        envelope.Key,
		OccurredAt: envelope.OccurredAt,
		Payload:    string(envelope.Payload),
	}, nil
}

// toEnvelope converts a database DTO back to a wire envelope.
func toEnvelope(dto OutboxDTO) events.Envelope {
	return events.Envelope{
		EventID:    dto.EventID.String(),
		Topic:      dto.Topic,
		Key:        dto.Key,
		OccurredAt: dto.OccurredAt,
		Payload:    json.RawMessage(dto.Payload),
	}
}
