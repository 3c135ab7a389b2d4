package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/events"
)

// UpdateConsolidationStatusCommandHandler advances a batch's status and
// enqueues the consolidation.status.changed event in the same transaction.
// Downstream consumers propagate the change to member parcels and warehouse
// capacity, so the handler itself touches only the batch.
type UpdateConsolidationStatusCommandHandler struct {
	uowFactory ConsolidationUoWFactory
}

// NewUpdateConsolidationStatusCommandHandler creates a handler for batch
// status changes.
func NewUpdateConsolidationStatusCommandHandler(uowFactory ConsolidationUoWFactory) UpdateConsolidationStatusCommandHandler {
	return UpdateConsolidationStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
func (h *UpdateConsolidationStatusCommandHandler) Handle(ctx context.Context, cmd UpdateConsolidationStatusCommand) error {
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

	consolidationRepo := uow.ConsolidationRepository()
	batch, err := consolidationRepo.GetByConsolidationID(ctx, cmd.ConsolidationID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = batch.ChangeStatus(cmd.Status(), now); err != nil {
		return err
	}

	if err = consolidationRepo.Update(ctx, batch); err != nil {
		return err
	}

	envelope, err := events.NewEnvelope(
		events.TopicConsolidationStatusChanged, batch.ConsolidationID().String(),
		now, events.NewConsolidationPayload(batch),
	)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, envelope); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
