package parcel

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
)

// trackingNumberPattern matches the format this system generates: the "TRK"
// prefix followed by eight uppercase hex characters.
var trackingNumberPattern = regexp.MustCompile(`^TRK[0-9A-F]{8}$`)

// ErrTrackingNumberIsInvalid is returned for tracking numbers that do not
// match the expected format.
var ErrTrackingNumberIsInvalid = errs.NewValueIsInvalidError("tracking number")

// TrackingNumber is the globally unique business key of a parcel. It is
// immutable once assigned. Global uniqueness is enforced by the store's
// unique index; on a collision the caller regenerates with a fresh random
// suffix and retries.
type TrackingNumber string

// GenerateTrackingNumber produces a candidate tracking number from a random
// UUID's leading hex characters.
func GenerateTrackingNumber() TrackingNumber {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return TrackingNumber("TRK" + suffix)
}

// TrackingNumberFromString validates and converts an externally supplied
// tracking number.
func TrackingNumberFromString(s string) (TrackingNumber, error) {
	tn := TrackingNumber(s)
	if err := tn.Validate(); err != nil {
		return "", err
	}
	return tn, nil
}

// Validate checks the tracking number against the generated format.
func (t TrackingNumber) Validate() error {
	if !trackingNumberPattern.MatchString(string(t)) {
		return ErrTrackingNumberIsInvalid
	}
	return nil
}

// String returns the raw tracking number.
func (t TrackingNumber) String() string {
	return string(t)
}

// TrackingEvent is one immutable entry in a parcel's tracking history.
// Entries are append-only: they are never removed or reordered, and the
// parcel's status always equals the status of the most recent entry once
// tracking begins.
type TrackingEvent struct {
	timestamp   time.Time
	location    string
	status      Status
	description string
}

// NewTrackingEvent creates a validated tracking entry.
func NewTrackingEvent(timestamp time.Time, location string, status Status, description string) (TrackingEvent, error) {
	if timestamp.IsZero() {
		return TrackingEvent{}, errs.NewValueIsRequiredError("timestamp")
	}
	if strings.TrimSpace(location) == "" {
		return TrackingEvent{}, errs.NewValueIsRequiredError("location")
	}
	if err := status.Validate(); err != nil {
		return TrackingEvent{}, err
	}

	return TrackingEvent{
		timestamp:   timestamp,
		location:    location,
		status:      status,
		description: description,
	}, nil
}

// RestoreTrackingEvent rebuilds an entry from persistence without
// re-validating free-form fields that were accepted at write time.
func RestoreTrackingEvent(timestamp time.Time, location string, status Status, description string) (TrackingEvent, error) {
	if timestamp.IsZero() {
		return TrackingEvent{}, errors.Join(errs.NewValueIsRequiredError("timestamp"))
	}
	return TrackingEvent{
		timestamp:   timestamp,
		location:    location,
		status:      status,
		description: description,
	}, nil
}

// Timestamp returns when the event occurred.
func (e TrackingEvent) Timestamp() time.Time {
	return e.timestamp
}

// Location returns where the event occurred.
func (e TrackingEvent) Location() string {
	return e.location
}

// Status returns the status the parcel entered with this event.
func (e TrackingEvent) Status() Status {
	return e.status
}

// Description returns the free-form event description.
func (e TrackingEvent) Description() string {
	return e.description
}
