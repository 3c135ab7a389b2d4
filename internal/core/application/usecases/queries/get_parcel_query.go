// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery retrieves a single parcel with its tracking history by
// internal identifier.
type GetParcelQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates a query for the parcel with the given identifier.
func NewGetParcelQuery(parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to fetch.
func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// ParcelQueryResponse represents a parcel in the read model, including its
// full tracking history.
type ParcelQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	SenderID        string
	RecipientID     string
	Status          string
	CurrentLocation string
	ConsolidationID string

	Weight decimal.Decimal
	Length decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal

	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	TrackingHistory []TrackingEventQueryResponse
}

// TrackingEventQueryResponse represents one entry of a parcel's tracking
// history in the read model.
type TrackingEventQueryResponse struct {
	Timestamp   time.Time
	Location    string
	Status      string
	Description string
}
