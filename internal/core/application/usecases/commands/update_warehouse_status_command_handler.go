package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/events"
)

// UpdateWarehouseStatusCommandHandler applies operator status overrides and
// enqueues the warehouse.status.changed event in the same transaction.
type UpdateWarehouseStatusCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewUpdateWarehouseStatusCommandHandler creates a handler for status overrides.
func NewUpdateWarehouseStatusCommandHandler(uowFactory WarehouseUoWFactory) UpdateWarehouseStatusCommandHandler {
	return UpdateWarehouseStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status override command.
func (h *UpdateWarehouseStatusCommandHandler) Handle(ctx context.Context, cmd UpdateWarehouseStatusCommand) error {
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

	warehouseRepo := uow.WarehouseRepository()
	aggregate, err := warehouseRepo.Get(ctx, cmd.WarehouseID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	statusEvent, err := aggregate.OverrideStatus(cmd.Status(), now)
	if err != nil {
		return err
	}

	if err = warehouseRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	envelope, err := events.NewEnvelope(
		events.TopicWarehouseStatusChanged, statusEvent.WarehouseID.String(),
		now, events.NewCapacityEventPayload(statusEvent),
	)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, envelope); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
