package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/events"
)

// RecordTrackingUpdateCommandHandler appends tracking events to parcels.
// The parcel's current status and location follow the newest appended event,
// and the parcel.status.updated event is enqueued in the same transaction.
type RecordTrackingUpdateCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewRecordTrackingUpdateCommandHandler creates a handler for tracking updates.
func NewRecordTrackingUpdateCommandHandler(uowFactory ParcelUoWFactory) RecordTrackingUpdateCommandHandler {
	return RecordTrackingUpdateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the tracking update command.
func (h *RecordTrackingUpdateCommandHandler) Handle(ctx context.Context, cmd RecordTrackingUpdateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	event, err := parcel.NewTrackingEvent(cmd.Timestamp(), cmd.Location(), cmd.Status(), cmd.Description())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = aggregate.RecordTrackingUpdate(event); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	envelope, err := events.NewEnvelope(
		events.TopicParcelStatusUpdated, aggregate.ID().String(),
		aggregate.UpdatedAt(), events.NewParcelPayload(aggregate),
	)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, envelope); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
