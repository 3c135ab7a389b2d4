package commands

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/events"
	"parcelhub/internal/pkg/errs"
)

// CreateConsolidationCommandHandler handles batch creation in two phases.
// Phase one creates the batch with all members pending and commits; phase
// two delegates to CompleteConsolidationCommandHandler to mark each member
// CONSOLIDATED in its own transaction. Resubmitting a known consolidation ID
// skips phase one and resumes phase two, which makes the command safe to
// retry after a crash.
type CreateConsolidationCommandHandler struct {
	uowFactory      ConsolidationUoWFactory
	completeHandler CompleteConsolidationCommandHandler
}

// NewCreateConsolidationCommandHandler creates a handler for batch creation.
func NewCreateConsolidationCommandHandler(uowFactory ConsolidationUoWFactory) CreateConsolidationCommandHandler {
	return CreateConsolidationCommandHandler{
		uowFactory:      uowFactory,
		completeHandler: NewCompleteConsolidationCommandHandler(uowFactory),
	}
}

// Handle processes the batch creation command and returns the batch with
// member updates finished.
func (h *CreateConsolidationCommandHandler) Handle(
	ctx context.Context, cmd CreateConsolidationCommand,
) (*consolidation.Consolidation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	batch, err := h.createBatch(ctx, cmd)
	if err != nil {
		return nil, err
	}

	completeCmd, err := NewCompleteConsolidationCommand(batch.ID())
	if err != nil {
		return nil, err
	}

	return h.completeHandler.Handle(ctx, completeCmd)
}

// createBatch runs phase one. When the consolidation ID already exists the
// stored batch is returned untouched.
func (h *CreateConsolidationCommandHandler) createBatch(
	ctx context.Context, cmd CreateConsolidationCommand,
) (*consolidation.Consolidation, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	consolidationRepo := uow.ConsolidationRepository()
	existing, err := consolidationRepo.GetByConsolidationID(ctx, cmd.ConsolidationID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	members, err := h.loadMembers(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch, err := consolidation.NewConsolidation(
		kernel.NewUUID(), cmd.ConsolidationID(), cmd.CustomerID(), members, now,
	)
	if err != nil {
		return nil, err
	}

	if err = consolidationRepo.Add(ctx, batch); err != nil {
		return nil, err
	}

	envelope, err := events.NewEnvelope(
		events.TopicConsolidationStatusChanged, batch.ConsolidationID().String(),
		now, events.NewConsolidationPayload(batch),
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

	return batch, nil
}

// loadMembers fetches every member parcel and rejects parcels already bound
// to a different batch. An empty member list resolves to no parcels and is
// reported as not found, like a list of unknown ids would be.
func (h *CreateConsolidationCommandHandler) loadMembers(
	ctx context.Context, uow ConsolidationUoW, cmd CreateConsolidationCommand,
) ([]*parcel.Parcel, error) {
	if len(cmd.ParcelIDs()) == 0 {
		return nil, errs.NewObjectNotFoundError("parcelIDs", cmd.ConsolidationID().String())
	}

	parcelRepo := uow.ParcelRepository()

	members := make([]*parcel.Parcel, 0, len(cmd.ParcelIDs()))
	for _, id := range cmd.ParcelIDs() {
		member, err := parcelRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		if bound := member.ConsolidationID(); bound != nil && !bound.IsEqual(cmd.ConsolidationID()) {
			return nil, errs.NewObjectInConflictErrorWithCause(
				"parcel", id.String(), parcel.ErrBoundToOtherConsolidation)
		}

		members = append(members, member)
	}

	return members, nil
}
