package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/guard"
)

var ErrGetParcelByTrackingNumberQueryIsNotConstructed = errors.New(
	"GetParcelByTrackingNumberQuery must be created via NewGetParcelByTrackingNumberQuery constructor",
)

// GetParcelByTrackingNumberQuery retrieves a parcel by its public tracking
// number, the lookup customers use.
type GetParcelByTrackingNumberQuery struct {
	trackingNumber parcel.TrackingNumber

	guard guard.ConstructorGuard
}

// NewGetParcelByTrackingNumberQuery creates a query for the parcel with the
// given tracking number.
func NewGetParcelByTrackingNumberQuery(trackingNumber parcel.TrackingNumber) (GetParcelByTrackingNumberQuery, error) {
	if err := trackingNumber.Validate(); err != nil {
		return GetParcelByTrackingNumberQuery{}, err
	}

	return GetParcelByTrackingNumberQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelByTrackingNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelByTrackingNumberQueryIsNotConstructed)
}

// TrackingNumber returns the tracking number to look up.
func (q GetParcelByTrackingNumberQuery) TrackingNumber() parcel.TrackingNumber {
	return q.trackingNumber
}
