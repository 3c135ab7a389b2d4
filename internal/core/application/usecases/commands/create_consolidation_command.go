package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateConsolidationCommandIsNotConstructed = errors.New(
	"CreateConsolidationCommand must be created via NewCreateConsolidationCommand constructor",
)

// CreateConsolidationCommand represents a request to group parcels into a
// consolidation batch. The consolidation ID is supplied by the caller and
// doubles as the idempotency key: resubmitting the same ID resumes the
// existing batch instead of creating a duplicate.
type CreateConsolidationCommand struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID
	customerID      string
	parcelIDs       []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateConsolidationCommand creates a command to build a batch from the
// given member parcels. An empty member list passes construction; the
// handler reports it as not found when resolution yields no parcels.
func NewCreateConsolidationCommand(
	consolidationID kernel.UUID,
	customerID string,
	parcelIDs []kernel.UUID,
) (CreateConsolidationCommand, error) {
	cmd := CreateConsolidationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsolidationID(consolidationID),
		cmd.setCustomerID(customerID),
		cmd.setParcelIDs(parcelIDs),
	); err != nil {
		return CreateConsolidationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrCreateConsolidationCommandIsNotConstructed)
}

// ConsolidationID returns the caller-supplied batch identifier.
func (c CreateConsolidationCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// CustomerID returns the owning customer's identifier.
func (c CreateConsolidationCommand) CustomerID() string {
	return c.customerID
}

// ParcelIDs returns the identifiers of the member parcels.
func (c CreateConsolidationCommand) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.parcelIDs))
	copy(ids, c.parcelIDs)
	return ids
}

func (c *CreateConsolidationCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	c.consolidationID = consolidationID
	return nil
}

func (c *CreateConsolidationCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerID")
	}

	c.customerID = customerID
	return nil
}

func (c *CreateConsolidationCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.parcelIDs = make([]kernel.UUID, len(parcelIDs))
	copy(c.parcelIDs, parcelIDs)
	return nil
}
