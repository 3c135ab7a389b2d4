package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/events"
)

// CompleteConsolidationCommandHandler runs the second phase of batch
// creation: one transaction per pending member, marking the parcel
// CONSOLIDATED and removing it from the batch's pending list. A crash
// between members leaves the batch with a non-empty pending list, and a
// later re-run picks up where the previous one stopped. When the last
// member completes, the parcel.consolidated event goes out carrying the
// full batch record, keyed by the consolidation id. The batch itself stays
// PENDING; only the operator's status update moves it forward.
type CompleteConsolidationCommandHandler struct {
	uowFactory ConsolidationUoWFactory
}

// NewCompleteConsolidationCommandHandler creates a handler for member completion.
func NewCompleteConsolidationCommandHandler(uowFactory ConsolidationUoWFactory) CompleteConsolidationCommandHandler {
	return CompleteConsolidationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle drains the batch's pending members and returns the batch in its
// final state.
func (h *CompleteConsolidationCommandHandler) Handle(
	ctx context.Context, cmd CompleteConsolidationCommand,
) (*consolidation.Consolidation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	for {
		batch, done, err := h.completeNextMember(ctx, cmd)
		if err != nil {
			return nil, err
		}
		if done {
			return batch, nil
		}
	}
}

// completeNextMember updates a single pending member in its own transaction.
// Reports done when the batch has no pending members left.
func (h *CompleteConsolidationCommandHandler) completeNextMember(
	ctx context.Context, cmd CompleteConsolidationCommand,
) (*consolidation.Consolidation, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	consolidationRepo := uow.ConsolidationRepository()
	batch, err := consolidationRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return nil, false, err
	}

	if !batch.HasPendingMembers() {
		return batch, true, nil
	}

	now := time.Now().UTC()
	parcelID := batch.PendingParcelIDs()[0]

	parcelRepo := uow.ParcelRepository()
	member, err := parcelRepo.Get(ctx, parcelID)
	if err != nil {
		return nil, false, err
	}

	if err = member.MarkConsolidated(batch.ConsolidationID(), now); err != nil {
		return nil, false, err
	}
	if err = parcelRepo.Update(ctx, member); err != nil {
		return nil, false, err
	}

	batch.MarkMemberUpdated(parcelID, now)

	if err = consolidationRepo.Update(ctx, batch); err != nil {
		return nil, false, err
	}

	lastMember := !batch.HasPendingMembers()
	if lastMember {
		envelope, err := events.NewEnvelope(
			events.TopicParcelConsolidated, batch.ConsolidationID().String(),
			now, events.NewConsolidationPayload(batch),
		)
		if err != nil {
			return nil, false, err
		}
		if err = uow.OutboxRepository().Add(ctx, envelope); err != nil {
			return nil, false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return batch, lastMember, nil
}
