// Package inboxrepo records events each consumer group has already applied,
// turning redeliveries into no-ops. The mark commits in the same
// transaction as the consumer's effect.
package inboxrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProcessedEventDTO represents one applied event key per consumer group.
type ProcessedEventDTO struct {
	ConsumerGroup string `gorm:"type:varchar(64);primaryKey"`
	EventKey      string `gorm:"type:varchar(128);primaryKey"`
	ProcessedAt   time.Time
}

// TableName specifies the database table name for inbox entries.
func (ProcessedEventDTO) TableName() string {
	return "processed_events"
}

// GormInboxRepository implements InboxRepository using GORM.
type GormInboxRepository struct {
	db *gorm.DB
}

// NewGormInboxRepository creates a new GORM inbox repository.
func NewGormInboxRepository(db *gorm.DB) *GormInboxRepository {
	return &GormInboxRepository{db: db}
}

// MarkProcessed records the key as applied for the group. Returns false
// when the key was already recorded, which tells the consumer to skip its
// effect. The insert uses ON CONFLICT DO NOTHING so a duplicate does not
// abort the surrounding transaction.
func (r *GormInboxRepository) MarkProcessed(ctx context.Context, consumerGroup, key string) (bool, error) {
	dto := ProcessedEventDTO{
		ConsumerGroup: consumerGroup,
		EventKey:      key,
		ProcessedAt:   time.Now().UTC(),
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
