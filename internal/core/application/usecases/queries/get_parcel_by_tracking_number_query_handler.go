package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetParcelByTrackingNumberQueryHandler retrieves parcel read models by
// tracking number.
type GetParcelByTrackingNumberQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelByTrackingNumberQueryHandler creates a handler for tracking
// number lookups.
func NewGetParcelByTrackingNumberQueryHandler(db *gorm.DB) GetParcelByTrackingNumberQueryHandler {
	return GetParcelByTrackingNumberQueryHandler{db: db}
}

// Handle executes the lookup. Returns an ObjectNotFoundError when no parcel
// carries the tracking number.
func (h GetParcelByTrackingNumberQueryHandler) Handle(
	ctx context.Context,
	query GetParcelByTrackingNumberQuery,
) (*ParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchParcel(ctx, h.db, `WHERE tracking_number = ?`, query.TrackingNumber().String())
}
