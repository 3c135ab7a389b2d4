package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrGetWarehouseQueryIsNotConstructed = errors.New(
	"GetWarehouseQuery must be created via NewGetWarehouseQuery constructor",
)

// GetWarehouseQuery retrieves a single warehouse by internal identifier.
type GetWarehouseQuery struct {
	warehouseID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWarehouseQuery creates a query for the warehouse with the given
// identifier.
func NewGetWarehouseQuery(warehouseID kernel.UUID) (GetWarehouseQuery, error) {
	if err := warehouseID.Validate(); err != nil {
		return GetWarehouseQuery{}, err
	}

	return GetWarehouseQuery{
		warehouseID: warehouseID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWarehouseQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehouseQueryIsNotConstructed)
}

// WarehouseID returns the identifier of the warehouse to fetch.
func (q GetWarehouseQuery) WarehouseID() kernel.UUID {
	return q.warehouseID
}
