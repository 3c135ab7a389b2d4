package warehouse

import (
	"fmt"

	"parcelhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Status represents the operational state of a warehouse.
//
// FULL and ACTIVE are managed by the capacity function: FULL holds exactly
// while utilization has reached capacity, and clears back to ACTIVE when
// utilization drops. INACTIVE and MAINTENANCE are operator-only states:
// the capacity function never produces them and never overwrites them.
type Status string

const (
	// StatusActive is the normal operating state.
	StatusActive Status = "ACTIVE"

	// StatusInactive is an operator-only state for decommissioned sites.
	StatusInactive Status = "INACTIVE"

	// StatusMaintenance is an operator-only state for sites under maintenance.
	StatusMaintenance Status = "MAINTENANCE"

	// StatusFull indicates utilization has reached capacity. It is an alarm
	// condition, not a hard block: utilization may transiently exceed
	// capacity.
	StatusFull Status = "FULL"
)

// Validate rejects statuses outside the warehouse state set.
func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusInactive, StatusMaintenance, StatusFull:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("warehouse status",
		fmt.Errorf("%q is not a valid warehouse status", string(s)))
}

// String returns the raw status value.
func (s Status) String() string {
	return string(s)
}

// NextStatus is the pure capacity function: given total capacity, the new
// utilization, and the current status, it returns the status the warehouse
// must hold afterwards.
//
//	FULL    if utilization >= capacity
//	ACTIVE  if the current status is FULL and utilization dropped below capacity
//	current otherwise (INACTIVE and MAINTENANCE pass through untouched)
func NextStatus(capacity, utilization decimal.Decimal, current Status) Status {
	if utilization.GreaterThanOrEqual(capacity) {
		return StatusFull
	}
	if current == StatusFull {
		return StatusActive
	}
	return current
}
