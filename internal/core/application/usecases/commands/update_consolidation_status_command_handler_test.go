package commands_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/consolidation"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixtureBatch(t *testing.T) *consolidation.Consolidation {
	t.Helper()

	batch, err := consolidation.NewConsolidation(
		kernel.NewUUID(), kernel.NewUUID(), "customer-1",
		[]*parcel.Parcel{fixtureParcel(t)}, time.Now(),
	)
	require.NoError(t, err)
	return batch
}

func TestUpdateConsolidationStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	batch := fixtureBatch(t)

	cmd, err := commands.NewUpdateConsolidationStatusCommand(
		batch.ConsolidationID(), consolidation.StatusShipped,
	)
	require.NoError(t, err)

	repo := new(MockConsolidationRepository)
	outbox := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetByConsolidationID", mock.Anything, batch.ConsolidationID()).Return(batch, nil).Once(),
		repo.On("Update", mock.Anything, batch).Return(nil).Once(),
		outbox.On("Add", mock.Anything, mock.AnythingOfType("events.Envelope")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("ConsolidationRepository").Return(repo)
	uow.On("OutboxRepository").Return(outbox)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateConsolidationStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, consolidation.StatusShipped, batch.Status())
	repo.AssertExpectations(t)
	outbox.AssertExpectations(t)
}

func TestUpdateConsolidationStatusCommandHandler_Handle_RejectsBackwardTransition(t *testing.T) {
	ctx := t.Context()
	batch := fixtureBatch(t)
	require.NoError(t, batch.ChangeStatus(consolidation.StatusCompleted, time.Now()))

	cmd, err := commands.NewUpdateConsolidationStatusCommand(
		batch.ConsolidationID(), consolidation.StatusPending,
	)
	require.NoError(t, err)

	repo := new(MockConsolidationRepository)
	repo.On("GetByConsolidationID", mock.Anything, batch.ConsolidationID()).Return(batch, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("ConsolidationRepository").Return(repo)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateConsolidationStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, consolidation.StatusCompleted, batch.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNewUpdateConsolidationStatusCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateConsolidationStatusCommand(
		kernel.NewUUID(), consolidation.Status("LOST"),
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
