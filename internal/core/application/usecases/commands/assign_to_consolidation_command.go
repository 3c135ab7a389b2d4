package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrAssignToConsolidationCommandIsNotConstructed = errors.New(
	"AssignToConsolidationCommand must be created via NewAssignToConsolidationCommand constructor",
)

// AssignToConsolidationCommand represents a request to attach a single
// parcel to a consolidation batch ahead of the batch's own member drain.
type AssignToConsolidationCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	consolidationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignToConsolidationCommand creates a command to bind a parcel to a batch.
func NewAssignToConsolidationCommand(
	parcelID kernel.UUID,
	consolidationID kernel.UUID,
) (AssignToConsolidationCommand, error) {
	cmd := AssignToConsolidationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setConsolidationID(consolidationID),
	); err != nil {
		return AssignToConsolidationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignToConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrAssignToConsolidationCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel being assigned.
func (c AssignToConsolidationCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ConsolidationID returns the target batch identifier.
func (c AssignToConsolidationCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

func (c *AssignToConsolidationCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *AssignToConsolidationCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	c.consolidationID = consolidationID
	return nil
}
