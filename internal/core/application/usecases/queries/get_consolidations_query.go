package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetConsolidationsQueryIsNotConstructed = errors.New(
	"GetConsolidationsQuery must be created via NewGetConsolidationsQuery constructor",
)

// GetConsolidationsQuery retrieves consolidation batches, optionally
// filtered by owning customer. An empty customer ID returns every batch.
type GetConsolidationsQuery struct {
	customerID string

	guard guard.ConstructorGuard
}

// NewGetConsolidationsQuery creates a query for consolidation batches.
func NewGetConsolidationsQuery(customerID string) GetConsolidationsQuery {
	return GetConsolidationsQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetConsolidationsQuery) Validate() error {
	return q.guard.Validate(ErrGetConsolidationsQueryIsNotConstructed)
}

// CustomerID returns the customer filter, empty for no filter.
func (q GetConsolidationsQuery) CustomerID() string {
	return q.customerID
}

// ConsolidationQueryResponse represents a consolidation batch in the read
// model.
type ConsolidationQueryResponse struct {
	ID              kernel.UUID
	ConsolidationID kernel.UUID
	CustomerID      string
	ParcelIDs       []string
	Status          string
	Origin          string
	Destination     string

	TotalWeight decimal.Decimal
	TotalVolume decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
