package outboxrepo

import (
	"context"

	"parcelhub/internal/core/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores an envelope for later publication.
func (r *GormOutboxRepository) Add(ctx context.Context, envelope events.Envelope) error {
	dto, err := fromEnvelope(envelope)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished retrieves up to limit unpublished envelopes in insertion
// order.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]events.Envelope, error) {
	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Where("published = ?", false).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	envelopes := make([]events.Envelope, 0, len(dtos))
	for _, dto := range dtos {
		envelopes = append(envelopes, toEnvelope(dto))
	}

	return envelopes, nil
}

// MarkPublished records that the envelope reached the bus.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, eventID string) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("event_id = ?", id).
		Update("published", true).Error
}
