package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"parcelhub/internal/core/events"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOutboxRepository struct{ mock.Mock }

func (m *mockOutboxRepository) Add(ctx context.Context, envelope events.Envelope) error {
	args := m.Called(ctx, envelope)
	return args.Error(0)
}

func (m *mockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]events.Envelope, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]events.Envelope), args.Error(1)
}

func (m *mockOutboxRepository) MarkPublished(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, envelope events.Envelope) error {
	args := m.Called(ctx, envelope)
	return args.Error(0)
}

type mockUoW struct {
	mock.Mock
	outbox ports.OutboxRepository
}

func (m *mockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *mockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *mockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *mockUoW) ParcelRepository() ports.ParcelRepository               { return nil }
func (m *mockUoW) ConsolidationRepository() ports.ConsolidationRepository { return nil }
func (m *mockUoW) WarehouseRepository() ports.WarehouseRepository         { return nil }
func (m *mockUoW) InboxRepository() ports.InboxRepository                 { return nil }

func (m *mockUoW) OutboxRepository() ports.OutboxRepository { return m.outbox }

type mockUoWFactory struct{ uow ports.UnitOfWork }

func (f *mockUoWFactory) Create() ports.UnitOfWork { return f.uow }

func relayTestEnvelope(t *testing.T) events.Envelope {
	t.Helper()
	envelope, err := events.NewEnvelope(
		events.TopicParcelCreated, "key-1", time.Now().UTC(), map[string]string{"field": "value"},
	)
	require.NoError(t, err)
	return envelope
}

func newRelayJob(outbox *mockOutboxRepository, publisher *mockPublisher) *OutboxRelayJob {
	factory := &mockUoWFactory{uow: &mockUoW{outbox: outbox}}
	return NewOutboxRelayJob(factory, publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestOutboxRelayJob_PublishesAndMarks(t *testing.T) {
	outbox := &mockOutboxRepository{}
	publisher := &mockPublisher{}
	first := relayTestEnvelope(t)
	second := relayTestEnvelope(t)

	outbox.On("GetUnpublished", mock.Anything, relayBatchSize).
		Return([]events.Envelope{first, second}, nil).Once()
	publisher.On("Publish", mock.Anything, first).Return(nil).Once()
	outbox.On("MarkPublished", mock.Anything, first.EventID).Return(nil).Once()
	publisher.On("Publish", mock.Anything, second).Return(nil).Once()
	outbox.On("MarkPublished", mock.Anything, second.EventID).Return(nil).Once()

	job := newRelayJob(outbox, publisher)
	err := job.relay(context.Background())

	require.NoError(t, err)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOutboxRelayJob_StopsBatchOnPublishFailure(t *testing.T) {
	outbox := &mockOutboxRepository{}
	publisher := &mockPublisher{}
	first := relayTestEnvelope(t)
	second := relayTestEnvelope(t)

	outbox.On("GetUnpublished", mock.Anything, relayBatchSize).
		Return([]events.Envelope{first, second}, nil).Once()
	publisher.On("Publish", mock.Anything, first).Return(assert.AnError).Once()

	job := newRelayJob(outbox, publisher)
	err := job.relay(context.Background())

	require.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, second)
	outbox.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything)
}

func TestOutboxRelayJob_EmptyOutboxIsQuiet(t *testing.T) {
	outbox := &mockOutboxRepository{}
	publisher := &mockPublisher{}

	outbox.On("GetUnpublished", mock.Anything, relayBatchSize).
		Return([]events.Envelope{}, nil).Once()

	job := newRelayJob(outbox, publisher)
	err := job.relay(context.Background())

	require.NoError(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
