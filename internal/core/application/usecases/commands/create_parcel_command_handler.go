package commands

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/events"
	"parcelhub/internal/pkg/errs"
)

// trackingNumberAttempts bounds collision retries on generated tracking numbers.
const trackingNumberAttempts = 5

// CreateParcelCommandHandler handles the business logic for parcel registration.
// Generates the public tracking number, persists the parcel in CREATED status,
// and enqueues the parcel.created event in the same transaction.
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel registration.
// Requires a ParcelUoWFactory for transactional persistence.
func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the parcel registration command.
// Tracking number collisions are retried with a freshly generated number,
// each attempt in its own transaction.
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < trackingNumberAttempts; attempt++ {
		created, err := h.create(ctx, cmd, parcel.GenerateTrackingNumber())
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, errs.ErrObjectInConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func (h *CreateParcelCommandHandler) create(
	ctx context.Context, cmd CreateParcelCommand, trackingNumber parcel.TrackingNumber,
) (*parcel.Parcel, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := parcel.NewParcel(
		cmd.ParcelID(), trackingNumber,
		cmd.SenderID(), cmd.RecipientID(),
		cmd.SenderAddress(), cmd.RecipientAddress(),
		cmd.Dimensions(), time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	envelope, err := events.NewEnvelope(
		events.TopicParcelCreated, aggregate.ID().String(),
		aggregate.CreatedAt(), events.NewParcelPayload(aggregate),
	)
	if err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, envelope); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
