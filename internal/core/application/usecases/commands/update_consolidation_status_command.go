package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrUpdateConsolidationStatusCommandIsNotConstructed = errors.New(
	"UpdateConsolidationStatusCommand must be created via NewUpdateConsolidationStatusCommand constructor",
)

// UpdateConsolidationStatusCommand represents a request to advance a batch
// along its forward-only status chain.
type UpdateConsolidationStatusCommand struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID
	status          consolidation.Status

	guard guard.ConstructorGuard
}

// NewUpdateConsolidationStatusCommand creates a command to move the batch
// with the given external identifier to the target status.
func NewUpdateConsolidationStatusCommand(
	consolidationID kernel.UUID, status consolidation.Status,
) (UpdateConsolidationStatusCommand, error) {
	cmd := UpdateConsolidationStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsolidationID(consolidationID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateConsolidationStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateConsolidationStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateConsolidationStatusCommandIsNotConstructed)
}

// ConsolidationID returns the external batch identifier.
func (c UpdateConsolidationStatusCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// Status returns the target status.
func (c UpdateConsolidationStatusCommand) Status() consolidation.Status {
	return c.status
}

func (c *UpdateConsolidationStatusCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	c.consolidationID = consolidationID
	return nil
}

func (c *UpdateConsolidationStatusCommand) setStatus(status consolidation.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
