package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand represents a request to register a new parcel.
// Encapsulates the sender, recipient, addresses, and physical dimensions;
// the tracking number is generated by the handler.
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID         kernel.UUID
	senderID         string
	recipientID      string
	senderAddress    kernel.Address
	recipientAddress kernel.Address
	dimensions       parcel.Dimensions

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register a new parcel.
// Validates the identifiers, both addresses, and the dimensions.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	senderID, recipientID string,
	senderAddress, recipientAddress kernel.Address,
	dimensions parcel.Dimensions,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSenderID(senderID),
		cmd.setRecipientID(recipientID),
		cmd.setSenderAddress(senderAddress),
		cmd.setRecipientAddress(recipientAddress),
		cmd.setDimensions(dimensions),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the unique identifier for the parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// SenderID returns the sending customer's identifier.
func (c CreateParcelCommand) SenderID() string {
	return c.senderID
}

// RecipientID returns the receiving customer's identifier.
func (c CreateParcelCommand) RecipientID() string {
	return c.recipientID
}

// SenderAddress returns the origin address.
func (c CreateParcelCommand) SenderAddress() kernel.Address {
	return c.senderAddress
}

// RecipientAddress returns the destination address.
func (c CreateParcelCommand) RecipientAddress() kernel.Address {
	return c.recipientAddress
}

// Dimensions returns the parcel's physical dimensions.
func (c CreateParcelCommand) Dimensions() parcel.Dimensions {
	return c.dimensions
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setSenderID(senderID string) error {
	if senderID == "" {
		return errs.NewValueIsRequiredError("senderID")
	}

	c.senderID = senderID
	return nil
}

func (c *CreateParcelCommand) setRecipientID(recipientID string) error {
	if recipientID == "" {
		return errs.NewValueIsRequiredError("recipientID")
	}

	c.recipientID = recipientID
	return nil
}

func (c *CreateParcelCommand) setSenderAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.senderAddress = address
	return nil
}

func (c *CreateParcelCommand) setRecipientAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.recipientAddress = address
	return nil
}

func (c *CreateParcelCommand) setDimensions(dimensions parcel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}

	c.dimensions = dimensions
	return nil
}
