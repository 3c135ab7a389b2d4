package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/kernel"
)

// ConsolidationRepository defines the persistence contract for consolidation
// batch aggregates.
type ConsolidationRepository interface {
	// Add persists a new consolidation batch to storage.
	// Fails with a conflict error when the external consolidation id is
	// already taken.
	Add(ctx context.Context, aggregate *consolidation.Consolidation) error

	// Update persists changes to an existing batch, including its
	// pending-member bookkeeping. The write is versioned.
	Update(ctx context.Context, aggregate *consolidation.Consolidation) error

	// Get retrieves a batch by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*consolidation.Consolidation, error)

	// GetByConsolidationID retrieves a batch by its external identifier.
	GetByConsolidationID(ctx context.Context, consolidationID kernel.UUID) (*consolidation.Consolidation, error)

	// GetAllWithPendingMembers retrieves batches whose member parcels have
	// not all been updated yet. Used by the resume sweep.
	GetAllWithPendingMembers(ctx context.Context) ([]*consolidation.Consolidation, error)
}
