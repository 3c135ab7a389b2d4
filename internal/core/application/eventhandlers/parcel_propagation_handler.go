package eventhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/events"
	"parcelhub/internal/pkg/errs"
)

// ParcelPropagationGroup is the inbox consumer group for member propagation.
const ParcelPropagationGroup = "parcel-propagation"

// ParcelPropagationHandler pushes consolidation-level transitions down to the
// member parcels. When a batch ships, every member gets an IN_TRANSIT
// tracking update and a parcel.status.updated event. All members, the inbox
// mark and the outbox envelopes commit in one transaction.
type ParcelPropagationHandler struct {
	uowFactory ParcelPropagationUoWFactory
	logger     *slog.Logger
}

// NewParcelPropagationHandler creates the member propagation consumer.
func NewParcelPropagationHandler(uowFactory ParcelPropagationUoWFactory, logger *slog.Logger) *ParcelPropagationHandler {
	return &ParcelPropagationHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "parcel_propagation_handler"),
	}
}

// Handle propagates a SHIPPED batch transition to the member parcels. Other
// statuses pass through untouched.
func (h *ParcelPropagationHandler) Handle(ctx context.Context, envelope events.Envelope) error {
	var payload events.ConsolidationPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		return err
	}

	if payload.Status != consolidation.StatusShipped.String() {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The same batch can change status more than once, so the inbox key
	// carries the status the event announced.
	inboxKey := payload.ConsolidationID + ":" + payload.Status
	applied, err := uow.InboxRepository().MarkProcessed(ctx, ParcelPropagationGroup, inboxKey)
	if err != nil {
		return err
	}
	if !applied {
		h.logger.DebugContext(ctx, "Batch transition already propagated, skipping redelivery",
			"consolidationId", payload.ConsolidationID, "status", payload.Status)
		return uow.Commit(ctx)
	}

	now := time.Now().UTC()
	for _, rawID := range payload.ParcelIDs {
		if err = h.updateMember(ctx, uow, rawID, payload, now); err != nil {
			return err
		}
	}

	h.logger.InfoContext(ctx, "Batch transition propagated to members",
		"consolidationId", payload.ConsolidationID,
		"status", payload.Status,
		"members", len(payload.ParcelIDs))

	return uow.Commit(ctx)
}

func (h *ParcelPropagationHandler) updateMember(
	ctx context.Context,
	uow ParcelPropagationUoW,
	rawID string,
	payload events.ConsolidationPayload,
	now time.Time,
) error {
	parcelID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	member, err := parcelRepo.Get(ctx, parcelID)
	if err != nil {
		// A member deleted since the batch shipped should not wedge the
		// whole propagation.
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "Member parcel not found, skipping",
				"consolidationId", payload.ConsolidationID, "parcelId", rawID)
			return nil
		}
		return err
	}

	event, err := parcel.NewTrackingEvent(
		now,
		payload.Origin,
		parcel.StatusInTransit,
		"Consolidated shipment "+payload.ConsolidationID+" dispatched",
	)
	if err != nil {
		return err
	}
	if err = member.RecordTrackingUpdate(event); err != nil {
		return err
	}
	if err = parcelRepo.Update(ctx, member); err != nil {
		return err
	}

	envelope, err := events.NewEnvelope(
		events.TopicParcelStatusUpdated, member.ID().String(), now, events.NewParcelPayload(member),
	)
	if err != nil {
		return err
	}
	return uow.OutboxRepository().Add(ctx, envelope)
}
