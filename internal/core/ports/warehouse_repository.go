package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/warehouse"
)

// WarehouseRepository defines the persistence contract for warehouse
// aggregates.
type WarehouseRepository interface {
	// Add persists a new warehouse to storage.
	// Fails with a conflict error when the warehouse code is already taken.
	Add(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Update persists changes to an existing warehouse. The write is
	// versioned: concurrent capacity updates on the same warehouse lose
	// with a stale-version error and must be retried on fresh state.
	Update(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Get retrieves a warehouse by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error)

	// GetByCode retrieves a warehouse by its business code.
	GetByCode(ctx context.Context, code warehouse.Code) (*warehouse.Warehouse, error)

	// GetAllActive retrieves every warehouse in ACTIVE status.
	GetAllActive(ctx context.Context) ([]*warehouse.Warehouse, error)
}
