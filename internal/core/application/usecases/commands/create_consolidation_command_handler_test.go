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

func TestCreateConsolidationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	p1 := fixtureParcel(t)
	p2 := fixtureParcel(t)
	consolidationID := kernel.NewUUID()

	cmd, err := commands.NewCreateConsolidationCommand(
		consolidationID, "customer-1", []kernel.UUID{p1.ID(), p2.ID()},
	)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Get", mock.Anything, p1.ID()).Return(p1, nil)
	parcelRepo.On("Get", mock.Anything, p2.ID()).Return(p2, nil)
	parcelRepo.On("Update", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil)

	consRepo := new(MockConsolidationRepository)
	consRepo.On("GetByConsolidationID", mock.Anything, consolidationID).
		Return(nil, errs.NewObjectNotFoundError("consolidation", consolidationID.String())).Once()
	// The batch id is generated inside the handler, so the Get expectation
	// is registered once the created batch is captured from Add.
	consRepo.On("Add", mock.Anything, mock.AnythingOfType("*consolidation.Consolidation")).
		Run(func(args mock.Arguments) {
			batch := args.Get(1).(*consolidation.Consolidation)
			consRepo.On("Get", mock.Anything, batch.ID()).Return(batch, nil)
		}).Return(nil).Once()
	consRepo.On("Update", mock.Anything, mock.AnythingOfType("*consolidation.Consolidation")).Return(nil)

	outbox := new(MockOutboxRepository)
	outbox.On("Add", mock.Anything, mock.AnythingOfType("events.Envelope")).Return(nil)

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("ConsolidationRepository").Return(consRepo)
	uow.On("OutboxRepository").Return(outbox)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateConsolidationCommandHandler(factory)
	batch, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	// Creation forms the batch but never advances it; operators move it
	// forward through the status endpoint.
	assert.Equal(t, consolidation.StatusPending, batch.Status())
	assert.False(t, batch.HasPendingMembers())
	assert.Equal(t, parcel.StatusConsolidated, p1.Status())
	assert.Equal(t, parcel.StatusConsolidated, p2.Status())
	require.NotNil(t, p1.ConsolidationID())
	assert.True(t, p1.ConsolidationID().IsEqual(consolidationID))

	// Batch creation plus one transaction per member.
	uow.AssertNumberOfCalls(t, "Commit", 3)
	// The PENDING status envelope plus one parcel.consolidated for the batch.
	outbox.AssertNumberOfCalls(t, "Add", 2)
}

func TestCreateConsolidationCommandHandler_Handle_ResumesExistingBatch(t *testing.T) {
	ctx := t.Context()

	p1 := fixtureParcel(t)
	consolidationID := kernel.NewUUID()

	batch, err := consolidation.NewConsolidation(
		kernel.NewUUID(), consolidationID, "customer-1",
		[]*parcel.Parcel{p1}, time.Now(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewCreateConsolidationCommand(
		consolidationID, "customer-1", []kernel.UUID{p1.ID()},
	)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Get", mock.Anything, p1.ID()).Return(p1, nil)
	parcelRepo.On("Update", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil)

	consRepo := new(MockConsolidationRepository)
	consRepo.On("GetByConsolidationID", mock.Anything, consolidationID).Return(batch, nil).Once()
	consRepo.On("Get", mock.Anything, batch.ID()).Return(batch, nil)
	consRepo.On("Update", mock.Anything, mock.AnythingOfType("*consolidation.Consolidation")).Return(nil)

	outbox := new(MockOutboxRepository)
	outbox.On("Add", mock.Anything, mock.AnythingOfType("events.Envelope")).Return(nil)

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("ConsolidationRepository").Return(consRepo)
	uow.On("OutboxRepository").Return(outbox)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateConsolidationCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.IsEqual(batch))
	assert.False(t, got.HasPendingMembers())
	// No second batch is created on resubmission.
	consRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	// Only the member transaction commits.
	uow.AssertNumberOfCalls(t, "Commit", 1)
}

func TestCreateConsolidationCommandHandler_Handle_RejectsBoundParcel(t *testing.T) {
	ctx := t.Context()

	p1 := fixtureParcel(t)
	otherBatch := kernel.NewUUID()
	_, err := p1.AssignToConsolidation(otherBatch, time.Now())
	require.NoError(t, err)

	consolidationID := kernel.NewUUID()
	cmd, err := commands.NewCreateConsolidationCommand(
		consolidationID, "customer-1", []kernel.UUID{p1.ID()},
	)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Get", mock.Anything, p1.ID()).Return(p1, nil)

	consRepo := new(MockConsolidationRepository)
	consRepo.On("GetByConsolidationID", mock.Anything, consolidationID).
		Return(nil, errs.NewObjectNotFoundError("consolidation", consolidationID.String())).Once()

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("ParcelRepository").Return(parcelRepo)
	uow.On("ConsolidationRepository").Return(consRepo)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateConsolidationCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectInConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateConsolidationCommandHandler_Handle_EmptyMemberListIsNotFound(t *testing.T) {
	ctx := t.Context()
	consolidationID := kernel.NewUUID()

	cmd, err := commands.NewCreateConsolidationCommand(consolidationID, "customer-1", nil)
	require.NoError(t, err)

	consRepo := new(MockConsolidationRepository)
	consRepo.On("GetByConsolidationID", mock.Anything, consolidationID).
		Return(nil, errs.NewObjectNotFoundError("consolidation", consolidationID.String())).Once()

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("ConsolidationRepository").Return(consRepo)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateConsolidationCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	// Zero resolvable members reads as "nothing to consolidate", not as a
	// malformed request.
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateConsolidationCommand_Validation(t *testing.T) {
	t.Run("rejects blank customer", func(t *testing.T) {
		_, err := commands.NewCreateConsolidationCommand(
			kernel.NewUUID(), "", []kernel.UUID{kernel.NewUUID()},
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
