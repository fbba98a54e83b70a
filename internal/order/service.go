package order

import (
	"context"
	"errors"

	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher receives order change events. *realtime.Hub satisfies it.
type Publisher interface {
	Publish(ctx context.Context, event realtime.Event)
}

type Service interface {
	Submit(ctx context.Context, o *Order) (*Order, error)
	List(ctx context.Context, f Filter) ([]*Order, error)
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error)
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo Repository
	pub  Publisher
}

// NewService builds the order service. pub may be nil when change events
// reach subscribers through the database listener instead.
func NewService(repo Repository, pub Publisher) Service {
	return &service{repo: repo, pub: pub}
}

func (s *service) publish(ctx context.Context, typ realtime.EventType, o *Order) {
	if s.pub == nil {
		return
	}
	event, err := realtime.NewEvent(realtime.TopicOrders, typ, o)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to build order event", zap.Error(err))
		return
	}
	s.pub.Publish(ctx, event)
}

func (s *service) Submit(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Submit"),
	)

	if err := o.Validate(); err != nil {
		log.Warn("rejecting invalid order", zap.Error(err))
		return nil, err
	}

	o.Status = StatusPending
	if _, err := s.repo.Insert(ctx, o); err != nil {
		log.Error("failed to submit order", zap.Error(err))
		return nil, err
	}

	log.Info("order submitted",
		zap.String("order_id", o.ID.String()),
		zap.Int("items", len(o.Items)),
		zap.Int64("total", o.Total),
	)
	s.publish(ctx, realtime.EventInsert, o)
	return o, nil
}

func (s *service) List(ctx context.Context, f Filter) ([]*Order, error) {
	if f.Status != "" && !f.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus moves an order to any valid status.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id.String()),
	)

	st, err := ParseStatus(status)
	if err != nil {
		log.Debug("invalid status", zap.String("status", status))
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			log.Error("failed to update status", zap.Error(err))
		}
		return nil, err
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info("order status changed", zap.String("status", string(st)))
	s.publish(ctx, realtime.EventUpdate, o)
	return o, nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	for _, n := range counts {
		st.Total += n
	}
	st.Pending = counts[StatusPending]
	st.Confirmed = counts[StatusConfirmed]
	st.Delivered = counts[StatusDelivered]
	return st, nil
}
