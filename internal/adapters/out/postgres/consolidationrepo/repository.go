package consolidationrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConsolidationRepository implements ConsolidationRepository using GORM.
type GormConsolidationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConsolidationRepository creates a new GORM consolidation repository.
func NewGormConsolidationRepository(db *gorm.DB, tracker aggregateTracker) *GormConsolidationRepository {
	return &GormConsolidationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new batch with its member rows. A duplicate external
// consolidation id surfaces as an ObjectInConflictError, which backs the
// re-entrant creation contract.
func (r *GormConsolidationRepository) Add(ctx context.Context, aggregate *consolidation.Consolidation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectInConflictErrorWithCause(
				"consolidationId", aggregate.ConsolidationID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing batch. The parent row is versioned; member rows
// are upserted so pending flags flip in place.
func (r *GormConsolidationRepository) Update(ctx context.Context, aggregate *consolidation.Consolidation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	next := dto
	next.Version = dto.Version + 1

	result := r.db.WithContext(ctx).
		Model(&ConsolidationDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Select("*").
		Omit("id", "created_at", "Members").
		Updates(&next)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsStaleError("consolidation", aggregate.ID().String(), dto.Version)
	}

	if len(dto.Members) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "consolidation_id"}, {Name: "parcel_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"pending"}),
			}).
			Create(&dto.Members).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a batch by its internal identifier.
func (r *GormConsolidationRepository) Get(ctx context.Context, id kernel.UUID) (*consolidation.Consolidation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "id = ?", id.Bytes(), id.String())
}

// GetByConsolidationID retrieves a batch by its external identifier.
func (r *GormConsolidationRepository) GetByConsolidationID(ctx context.Context, consolidationID kernel.UUID) (*consolidation.Consolidation, error) {
	if err := consolidationID.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "consolidation_id = ?", consolidationID.Bytes(), consolidationID.String())
}

// GetAllWithPendingMembers retrieves batches whose two-phase creation has
// not finished, oldest first so the resume sweep drains in order.
func (r *GormConsolidationRepository) GetAllWithPendingMembers(ctx context.Context) ([]*consolidation.Consolidation, error) {
	var dtos []ConsolidationDTO
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("pending_count > 0").
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	batches := make([]*consolidation.Consolidation, 0, len(dtos))
	for _, dto := range dtos {
		batch, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		batches = append(batches, batch)
	}

	return batches, nil
}

func (r *GormConsolidationRepository) getOne(ctx context.Context, where string, arg any, label string) (*consolidation.Consolidation, error) {
	var dto ConsolidationDTO
	err := r.db.WithContext(ctx).
		Preload("Members").
		First(&dto, where, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("consolidation", label)
		}
		return nil, err
	}

	return toDomain(dto)
}
