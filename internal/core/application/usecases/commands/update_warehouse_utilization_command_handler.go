package commands

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/warehouse"
	"parcelhub/internal/core/events"
	"parcelhub/internal/pkg/errs"
)

// staleVersionAttempts bounds retries when concurrent writers race on the
// same warehouse row.
const staleVersionAttempts = 3

// UpdateWarehouseUtilizationCommandHandler sets a warehouse's utilization
// through the aggregate's capacity function and publishes the resulting
// capacity event, plus a status event when the status moved. Writes are
// versioned; on a stale version the handler re-reads and retries.
type UpdateWarehouseUtilizationCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewUpdateWarehouseUtilizationCommandHandler creates a handler for
// utilization updates.
func NewUpdateWarehouseUtilizationCommandHandler(uowFactory WarehouseUoWFactory) UpdateWarehouseUtilizationCommandHandler {
	return UpdateWarehouseUtilizationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the utilization update command.
func (h *UpdateWarehouseUtilizationCommandHandler) Handle(ctx context.Context, cmd UpdateWarehouseUtilizationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < staleVersionAttempts; attempt++ {
		err := h.update(ctx, cmd)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrVersionIsStale) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

func (h *UpdateWarehouseUtilizationCommandHandler) update(ctx context.Context, cmd UpdateWarehouseUtilizationCommand) error {
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
	capacityEvent, err := aggregate.UpdateUtilization(cmd.NewUtilization(), now)
	if err != nil {
		return err
	}

	if err = warehouseRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.publish(ctx, uow, capacityEvent, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateWarehouseUtilizationCommandHandler) publish(
	ctx context.Context, uow WarehouseUoW, capacityEvent warehouse.CapacityEvent, now time.Time,
) error {
	outbox := uow.OutboxRepository()
	payload := events.NewCapacityEventPayload(capacityEvent)

	envelope, err := events.NewEnvelope(
		events.TopicWarehouseCapacityChanged, capacityEvent.WarehouseID.String(), now, payload,
	)
	if err != nil {
		return err
	}
	if err = outbox.Add(ctx, envelope); err != nil {
		return err
	}

	if capacityEvent.PreviousStatus == capacityEvent.NewStatus {
		return nil
	}

	envelope, err = events.NewEnvelope(
		events.TopicWarehouseStatusChanged, capacityEvent.WarehouseID.String(), now, payload,
	)
	if err != nil {
		return err
	}
	return outbox.Add(ctx, envelope)
}
