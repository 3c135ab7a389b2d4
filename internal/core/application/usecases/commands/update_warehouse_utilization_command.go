package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateWarehouseUtilizationCommandIsNotConstructed = errors.New(
	"UpdateWarehouseUtilizationCommand must be created via NewUpdateWarehouseUtilizationCommand constructor",
)

// UpdateWarehouseUtilizationCommand represents a request to set a
// warehouse's current utilization to a new absolute value.
type UpdateWarehouseUtilizationCommand struct { //nolint:recvcheck //using for validation
	warehouseID    kernel.UUID
	newUtilization decimal.Decimal

	guard guard.ConstructorGuard
}

// NewUpdateWarehouseUtilizationCommand creates a command to update a
// warehouse's utilization. Negative values are rejected; values above
// capacity are allowed and surface as the FULL status.
func NewUpdateWarehouseUtilizationCommand(
	warehouseID kernel.UUID, newUtilization decimal.Decimal,
) (UpdateWarehouseUtilizationCommand, error) {
	cmd := UpdateWarehouseUtilizationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWarehouseID(warehouseID),
		cmd.setNewUtilization(newUtilization),
	); err != nil {
		return UpdateWarehouseUtilizationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateWarehouseUtilizationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWarehouseUtilizationCommandIsNotConstructed)
}

// WarehouseID returns the identifier of the warehouse to update.
func (c UpdateWarehouseUtilizationCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// NewUtilization returns the absolute utilization value to set.
func (c UpdateWarehouseUtilizationCommand) NewUtilization() decimal.Decimal {
	return c.newUtilization
}

func (c *UpdateWarehouseUtilizationCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *UpdateWarehouseUtilizationCommand) setNewUtilization(newUtilization decimal.Decimal) error {
	if newUtilization.IsNegative() {
		return errs.NewValueIsInvalidError("newUtilization")
	}

	c.newUtilization = newUtilization
	return nil
}
