package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rz-parfum-be/internal/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Insert(ctx context.Context, o *Order) (uuid.UUID, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, f Filter) ([]*Order, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[Status]int), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		pub := &recordingPublisher{}
		svc := NewService(repo, pub)
		id := uuid.New()

		o := sampleOrder()
		o.Status = StatusDelivered
		repo.On("Insert", ctx, o).Run(func(args mock.Arguments) {
			args.Get(1).(*Order).ID = id
		}).Return(id, nil)

		got, err := svc.Submit(ctx, o)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, StatusPending, got.Status)
		require.Len(t, pub.events, 1)
		assert.Equal(t, realtime.TopicOrders, pub.events[0].Topic)
		assert.Equal(t, realtime.EventInsert, pub.events[0].Type)
		repo.AssertExpectations(t)
	})

	t.Run("Invalid", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		o := sampleOrder()
		o.Total = 1

		_, err := svc.Submit(ctx, o)
		assert.ErrorIs(t, err, ErrTotalsMismatch)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		pub := &recordingPublisher{}
		svc := NewService(repo, pub)

		repo.On("Insert", ctx, mock.Anything).Return(uuid.Nil, errors.New("db down"))

		_, err := svc.Submit(ctx, sampleOrder())
		assert.EqualError(t, err, "db down")
		assert.Empty(t, pub.events)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		pub := &recordingPublisher{}
		svc := NewService(repo, pub)

		updated := sampleOrder()
		updated.ID = id
		updated.Status = StatusShipped

		repo.On("UpdateStatus", ctx, id, StatusShipped).Return(nil)
		repo.On("Get", ctx, id).Return(updated, nil)

		got, err := svc.UpdateStatus(ctx, id, "Shipped")
		require.NoError(t, err)
		assert.Equal(t, StatusShipped, got.Status)
		require.Len(t, pub.events, 1)
		assert.Equal(t, realtime.EventUpdate, pub.events[0].Type)
	})

	t.Run("AnyTransitionAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		back := sampleOrder()
		back.Status = StatusPending
		repo.On("UpdateStatus", ctx, id, StatusPending).Return(nil)
		repo.On("Get", ctx, id).Return(back, nil)

		_, err := svc.UpdateStatus(ctx, id, "pending")
		assert.NoError(t, err)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		_, err := svc.UpdateStatus(ctx, id, "lost")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		pub := &recordingPublisher{}
		svc := NewService(repo, pub)

		repo.On("UpdateStatus", ctx, id, StatusCancelled).Return(ErrOrderNotFound)

		_, err := svc.UpdateStatus(ctx, id, "cancelled")
		assert.ErrorIs(t, err, ErrOrderNotFound)
		assert.Empty(t, pub.events)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	repo.On("List", ctx, Filter{Status: StatusPending}).Return([]*Order{sampleOrder()}, nil)

	orders, err := svc.List(ctx, Filter{Status: StatusPending})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = svc.List(ctx, Filter{Status: "weird"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CountByStatus", ctx).Return(map[Status]int{
			StatusPending:   4,
			StatusConfirmed: 2,
			StatusShipped:   1,
			StatusDelivered: 5,
			StatusCancelled: 3,
		}, nil)

		st, err := NewService(repo, nil).Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, Stats{Total: 15, Pending: 4, Confirmed: 2, Delivered: 5}, st)
	})

	t.Run("Empty", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CountByStatus", ctx).Return(map[Status]int{}, nil)

		st, err := NewService(repo, nil).Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, Stats{}, st)
	})

	t.Run("DBError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CountByStatus", ctx).Return(nil, errors.New("db error"))

		_, err := NewService(repo, nil).Stats(ctx)
		assert.Error(t, err)
	})
}
