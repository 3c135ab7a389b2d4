package commands

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrRecordTrackingUpdateCommandIsNotConstructed = errors.New(
	"RecordTrackingUpdateCommand must be created via NewRecordTrackingUpdateCommand constructor",
)

// RecordTrackingUpdateCommand represents a scan or checkpoint reported for a
// parcel. Status is free-form by contract: carriers report stages outside
// the canonical set and updates may arrive out of order.
type RecordTrackingUpdateCommand struct { //nolint:recvcheck //using for validation
	parcelID    kernel.UUID
	location    string
	status      parcel.Status
	description string
	timestamp   time.Time

	guard guard.ConstructorGuard
}

// NewRecordTrackingUpdateCommand creates a command to append a tracking event.
// Location and status must be non-blank; description is optional. A zero
// timestamp defaults to the current time.
func NewRecordTrackingUpdateCommand(
	parcelID kernel.UUID,
	location string,
	status parcel.Status,
	description string,
	timestamp time.Time,
) (RecordTrackingUpdateCommand, error) {
	cmd := RecordTrackingUpdateCommand{
		description: description,
		timestamp:   timestamp,
		guard:       guard.NewConstructorGuard(),
	}
	if cmd.timestamp.IsZero() {
		cmd.timestamp = time.Now().UTC()
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setLocation(location),
		cmd.setStatus(status),
	); err != nil {
		return RecordTrackingUpdateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordTrackingUpdateCommand) Validate() error {
	return c.guard.Validate(ErrRecordTrackingUpdateCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel being updated.
func (c RecordTrackingUpdateCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Location returns where the scan happened.
func (c RecordTrackingUpdateCommand) Location() string {
	return c.location
}

// Status returns the reported parcel status.
func (c RecordTrackingUpdateCommand) Status() parcel.Status {
	return c.status
}

// Description returns the optional human-readable note.
func (c RecordTrackingUpdateCommand) Description() string {
	return c.description
}

// Timestamp returns when the scan happened.
func (c RecordTrackingUpdateCommand) Timestamp() time.Time {
	return c.timestamp
}

func (c *RecordTrackingUpdateCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *RecordTrackingUpdateCommand) setLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}

	c.location = location
	return nil
}

func (c *RecordTrackingUpdateCommand) setStatus(status parcel.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
