package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrCompleteConsolidationCommandIsNotConstructed = errors.New(
	"CompleteConsolidationCommand must be created via NewCompleteConsolidationCommand constructor",
)

// CompleteConsolidationCommand requests the second phase of batch creation:
// marking every pending member parcel CONSOLIDATED. It is safe to re-run;
// already-updated members are skipped.
type CompleteConsolidationCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteConsolidationCommand creates a command to finish member updates
// for the batch with the given internal identifier.
func NewCompleteConsolidationCommand(batchID kernel.UUID) (CompleteConsolidationCommand, error) {
	cmd := CompleteConsolidationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setBatchID(batchID); err != nil {
		return CompleteConsolidationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrCompleteConsolidationCommandIsNotConstructed)
}

// BatchID returns the internal identifier of the batch to complete.
func (c CompleteConsolidationCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *CompleteConsolidationCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}
