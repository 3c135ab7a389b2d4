package consolidation

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a consolidation batch.
// Unlike parcel statuses, batch transitions are strictly forward:
//
//	PENDING ──> PROCESSING ──> COMPLETED ──> SHIPPED
//
// Skipping ahead is allowed (PENDING -> COMPLETED), moving backward or
// repeating the current status is not.
type Status string

const (
	// StatusPending is the initial status of a freshly created batch.
	StatusPending Status = "PENDING"

	// StatusProcessing indicates the batch is being physically assembled.
	StatusProcessing Status = "PROCESSING"

	// StatusCompleted indicates assembly is finished; membership is frozen.
	StatusCompleted Status = "COMPLETED"

	// StatusShipped is the terminal status. A shipped batch no longer binds
	// its member parcels for conflict purposes.
	StatusShipped Status = "SHIPPED"
)

// statusRank orders statuses for the forward-only transition rule.
var statusRank = map[Status]int{
	StatusPending:    1,
	StatusProcessing: 2,
	StatusCompleted:  3,
	StatusShipped:    4,
}

// Validate rejects statuses outside the batch state machine.
func (s Status) Validate() error {
	if _, ok := statusRank[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("consolidation status",
			fmt.Errorf("%q is not a valid consolidation status", string(s)))
	}
	return nil
}

// TransitionTo returns the next status if the transition is strictly
// forward, or an InvalidTransitionError otherwise.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}
	if err := s.Validate(); err != nil {
		return "", err
	}

	if statusRank[next] <= statusRank[s] {
		return "", errs.NewInvalidTransitionError("consolidation status", string(s), string(next))
	}

	return next, nil
}

// IsTerminal reports whether the batch has reached its final status.
func (s Status) IsTerminal() bool {
	return s == StatusShipped
}

// String returns the raw status value.
func (s Status) String() string {
	return string(s)
}
