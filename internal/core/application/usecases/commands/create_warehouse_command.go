package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/warehouse"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateWarehouseCommandIsNotConstructed = errors.New(
	"CreateWarehouseCommand must be created via NewCreateWarehouseCommand constructor",
)

// CreateWarehouseCommand represents a request to register a new warehouse.
// The warehouse starts ACTIVE with zero utilization.
type CreateWarehouseCommand struct { //nolint:recvcheck //using for validation
	warehouseID       kernel.UUID
	code              warehouse.Code
	name              string
	address           kernel.Address
	capacity          decimal.Decimal
	supportedTypes    []string
	availableServices []string

	guard guard.ConstructorGuard
}

// NewCreateWarehouseCommand creates a command to register a warehouse.
// Capacity must be strictly positive and the code must match the warehouse
// code format.
func NewCreateWarehouseCommand(
	warehouseID kernel.UUID,
	code warehouse.Code,
	name string,
	address kernel.Address,
	capacity decimal.Decimal,
	supportedTypes, availableServices []string,
) (CreateWarehouseCommand, error) {
	cmd := CreateWarehouseCommand{
		supportedTypes:    supportedTypes,
		availableServices: availableServices,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWarehouseID(warehouseID),
		cmd.setCode(code),
		cmd.setName(name),
		cmd.setAddress(address),
		cmd.setCapacity(capacity),
	); err != nil {
		return CreateWarehouseCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrCreateWarehouseCommandIsNotConstructed)
}

// WarehouseID returns the unique identifier for the warehouse.
func (c CreateWarehouseCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Code returns the warehouse business code.
func (c CreateWarehouseCommand) Code() warehouse.Code {
	return c.code
}

// Name returns the warehouse display name.
func (c CreateWarehouseCommand) Name() string {
	return c.name
}

// Address returns the warehouse location.
func (c CreateWarehouseCommand) Address() kernel.Address {
	return c.address
}

// Capacity returns the total cubic capacity.
func (c CreateWarehouseCommand) Capacity() decimal.Decimal {
	return c.capacity
}

// SupportedParcelTypes returns the parcel types the site accepts.
func (c CreateWarehouseCommand) SupportedParcelTypes() []string {
	return c.supportedTypes
}

// AvailableServices returns the services offered at the site.
func (c CreateWarehouseCommand) AvailableServices() []string {
	return c.availableServices
}

func (c *CreateWarehouseCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *CreateWarehouseCommand) setCode(code warehouse.Code) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.code = code
	return nil
}

func (c *CreateWarehouseCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateWarehouseCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateWarehouseCommand) setCapacity(capacity decimal.Decimal) error {
	if !capacity.IsPositive() {
		return errs.NewValueIsInvalidError("capacity")
	}

	c.capacity = capacity
	return nil
}
