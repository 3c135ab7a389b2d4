package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/warehouse"
	"parcelhub/internal/pkg/guard"
)

var ErrUpdateWarehouseStatusCommandIsNotConstructed = errors.New(
	"UpdateWarehouseStatusCommand must be created via NewUpdateWarehouseStatusCommand constructor",
)

// UpdateWarehouseStatusCommand represents an operator override of a
// warehouse's status, typically to MAINTENANCE or INACTIVE.
type UpdateWarehouseStatusCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	status      warehouse.Status

	guard guard.ConstructorGuard
}

// NewUpdateWarehouseStatusCommand creates a command to override a
// warehouse's status.
func NewUpdateWarehouseStatusCommand(
	warehouseID kernel.UUID, status warehouse.Status,
) (UpdateWarehouseStatusCommand, error) {
	cmd := UpdateWarehouseStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWarehouseID(warehouseID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateWarehouseStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateWarehouseStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWarehouseStatusCommandIsNotConstructed)
}

// WarehouseID returns the identifier of the warehouse to update.
func (c UpdateWarehouseStatusCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Status returns the status to apply.
func (c UpdateWarehouseStatusCommand) Status() warehouse.Status {
	return c.status
}

func (c *UpdateWarehouseStatusCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *UpdateWarehouseStatusCommand) setStatus(status warehouse.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
