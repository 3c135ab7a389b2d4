package eventhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/warehouse"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/events"
)

// WarehouseCapacityGroup is the inbox consumer group for capacity reservation.
const WarehouseCapacityGroup = "warehouse-capacity"

// WarehouseCapacityHandler reserves warehouse capacity when a consolidation
// batch finishes forming, consuming the batch-keyed parcel.consolidated
// event. It selects a warehouse for the batch's destination,
// raises that warehouse's utilization by the batch volume and publishes the
// resulting capacity facts. The reservation, the inbox mark and the outbox
// envelopes commit in one transaction.
type WarehouseCapacityHandler struct {
	uowFactory WarehouseCapacityUoWFactory
	selector   services.WarehouseSelector
	logger     *slog.Logger
}

// NewWarehouseCapacityHandler creates the capacity reservation consumer.
func NewWarehouseCapacityHandler(
	uowFactory WarehouseCapacityUoWFactory,
	selector services.WarehouseSelector,
	logger *slog.Logger,
) *WarehouseCapacityHandler {
	return &WarehouseCapacityHandler{
		uowFactory: uowFactory,
		selector:   selector,
		logger:     logger.With("component", "warehouse_capacity_handler"),
	}
}

// Handle reserves capacity for a newly formed consolidation batch. Only
// batches still in PENDING carry a reservation; replays of later states
// pass through untouched.
func (h *WarehouseCapacityHandler) Handle(ctx context.Context, envelope events.Envelope) error {
	var payload events.ConsolidationPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		return err
	}

	if payload.Status != consolidation.StatusPending.String() {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	applied, err := uow.InboxRepository().MarkProcessed(ctx, WarehouseCapacityGroup, payload.ConsolidationID)
	if err != nil {
		return err
	}
	if !applied {
		h.logger.DebugContext(ctx, "Capacity already reserved, skipping redelivery",
			"consolidationId", payload.ConsolidationID)
		return uow.Commit(ctx)
	}

	warehouseRepo := uow.WarehouseRepository()
	warehouses, err := warehouseRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	selected, err := h.selector.Select(payload.Destination, warehouses)
	if err != nil {
		if errors.Is(err, services.ErrWarehouseNotFound) {
			h.logger.WarnContext(ctx, "No warehouse admits the batch, reservation skipped",
				"consolidationId", payload.ConsolidationID,
				"destination", payload.Destination,
				"totalVolume", payload.TotalVolume.String())
			return uow.Commit(ctx)
		}
		return err
	}

	now := time.Now().UTC()
	newUtilization := selected.CurrentUtilization().Add(payload.TotalVolume)
	capacityEvent, err := selected.UpdateUtilization(newUtilization, now)
	if err != nil {
		return err
	}

	// A stale version here rolls back the inbox mark too, so the
	// redelivered event retries the whole reservation.
	if err = warehouseRepo.Update(ctx, selected); err != nil {
		return err
	}

	if err = h.publish(ctx, uow, capacityEvent, now); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Capacity reserved",
		"consolidationId", payload.ConsolidationID,
		"warehouseCode", capacityEvent.WarehouseCode.String(),
		"newUtilization", capacityEvent.NewUtilization.String(),
		"newStatus", capacityEvent.NewStatus.String())

	return uow.Commit(ctx)
}

func (h *WarehouseCapacityHandler) publish(
	ctx context.Context, uow WarehouseCapacityUoW, capacityEvent warehouse.CapacityEvent, now time.Time,
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
