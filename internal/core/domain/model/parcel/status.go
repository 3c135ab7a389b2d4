package parcel

import (
	"parcelhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// The primary progression is:
//
//	CREATED ──> IN_TRANSIT ──> AT_WAREHOUSE ──> OUT_FOR_DELIVERY ──> DELIVERED
//
// CONSOLIDATED is an orthogonal marker applied when the parcel is bound to a
// consolidation batch; a parcel can sit at a warehouse and be consolidated at
// the same time, and the batch back-reference is the authoritative signal.
//
// Unlike the consolidation state machine, parcel status is deliberately
// permissive: tracking updates carry carrier-supplied strings and the manager
// does not reject out-of-order transitions. Callers that care can check
// IsKnown before trusting a value.
type Status string

const (
	// StatusCreated is the initial status assigned on intake.
	StatusCreated Status = "CREATED"

	// StatusInTransit indicates the parcel is moving between locations.
	StatusInTransit Status = "IN_TRANSIT"

	// StatusAtWarehouse indicates the parcel has arrived at a warehouse.
	StatusAtWarehouse Status = "AT_WAREHOUSE"

	// StatusOutForDelivery indicates the parcel is on its final leg.
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"

	// StatusDelivered indicates the parcel reached its recipient.
	StatusDelivered Status = "DELIVERED"

	// StatusConsolidated marks a parcel that has been aggregated into a batch.
	StatusConsolidated Status = "CONSOLIDATED"
)

// Validate rejects blank statuses. Any non-blank string is accepted; the
// tracking feed is the source of truth and unknown values are preserved.
func (s Status) Validate() error {
	if s == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return nil
}

// IsKnown reports whether the status is one of the values this system
// assigns itself.
func (s Status) IsKnown() bool {
	switch s {
	case StatusCreated, StatusInTransit, StatusAtWarehouse,
		StatusOutForDelivery, StatusDelivered, StatusConsolidated:
		return true
	}
	return false
}

// String returns the raw status value.
func (s Status) String() string {
	return string(s)
}
