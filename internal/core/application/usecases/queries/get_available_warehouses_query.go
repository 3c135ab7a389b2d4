package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAvailableWarehousesQueryIsNotConstructed = errors.New(
	"GetAvailableWarehousesQuery must be created via NewGetAvailableWarehousesQuery constructor",
)

// GetAvailableWarehousesQuery retrieves warehouses whose utilization sits
// below 80% of capacity, the sole admission criterion. An optional city
// narrows the result to one destination. RequiredCapacity is accepted for
// API compatibility and carried through, but does not filter: nothing in
// the read model records per-batch capacity demands.
type GetAvailableWarehousesQuery struct {
	city             string
	requiredCapacity decimal.Decimal

	guard guard.ConstructorGuard
}

// NewGetAvailableWarehousesQuery creates a query for admissible warehouses.
// An empty city disables the city filter; a zero requiredCapacity means the
// caller stated no demand.
func NewGetAvailableWarehousesQuery(city string, requiredCapacity decimal.Decimal) GetAvailableWarehousesQuery {
	return GetAvailableWarehousesQuery{
		city:             city,
		requiredCapacity: requiredCapacity,
		guard:            guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableWarehousesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableWarehousesQueryIsNotConstructed)
}

// City returns the city filter, empty for no filter.
func (q GetAvailableWarehousesQuery) City() string {
	return q.city
}

// RequiredCapacity returns the caller's stated capacity demand.
func (q GetAvailableWarehousesQuery) RequiredCapacity() decimal.Decimal {
	return q.requiredCapacity
}

// WarehouseQueryResponse represents a warehouse in the read model.
type WarehouseQueryResponse struct {
	ID     kernel.UUID
	Code   string
	Name   string
	City   string
	Status string

	Capacity           decimal.Decimal
	CurrentUtilization decimal.Decimal

	UpdatedAt time.Time
}
