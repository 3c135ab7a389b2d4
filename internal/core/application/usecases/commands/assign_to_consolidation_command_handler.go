package commands

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/events"
	"parcelhub/internal/pkg/errs"
)

// AssignToConsolidationCommandHandler binds one parcel to a batch: the
// parcel moves to AT_WAREHOUSE and keeps the batch back-reference, and a
// parcel.status.updated event keyed by the batch id is enqueued in the same
// transaction. Re-assigning a parcel to the batch it already belongs to is
// a no-op; a parcel bound to a different batch is a conflict.
type AssignToConsolidationCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewAssignToConsolidationCommandHandler creates a handler for parcel assignment.
func NewAssignToConsolidationCommandHandler(uowFactory ParcelUoWFactory) AssignToConsolidationCommandHandler {
	return AssignToConsolidationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
func (h *AssignToConsolidationCommandHandler) Handle(ctx context.Context, cmd AssignToConsolidationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	changed, err := aggregate.AssignToConsolidation(cmd.ConsolidationID(), now)
	if err != nil {
		if errors.Is(err, parcel.ErrBoundToOtherConsolidation) {
			return errs.NewObjectInConflictErrorWithCause(
				"parcel", cmd.ParcelID().String(), err)
		}
		return err
	}
	if !changed {
		return uow.Commit(ctx)
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	envelope, err := events.NewEnvelope(
		events.TopicParcelStatusUpdated, cmd.ConsolidationID().String(),
		now, events.NewParcelPayload(aggregate),
	)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, envelope); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
