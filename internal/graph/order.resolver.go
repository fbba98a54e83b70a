package graph

import (
	"context"
	"encoding/json"
	"strings"

	"rz-parfum-be/internal/checkout"
	"rz-parfum-be/internal/graph/model"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/order"
	"rz-parfum-be/internal/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func toGraphQLOrder(o *order.Order) *model.Order {
	items := make([]*model.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, &model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     int(it.Price),
			Quantity:  it.Quantity,
			LineTotal: int(it.LineTotal()),
		})
	}
	return &model.Order{
		ID:              o.ID.String(),
		Reference:       o.Reference,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerCity:    o.CustomerCity,
		CustomerAddress: o.CustomerAddress,
		Items:           items,
		Subtotal:        int(o.Subtotal),
		DeliveryFee:     int(o.DeliveryFee),
		Total:           int(o.Total),
		Status:          model.OrderStatus(strings.ToUpper(string(o.Status))),
		StatusLabel:     o.Status.Label(),
		ContactURL:      checkout.ContactLink(o.CustomerPhone),
		CreatedAt:       o.CreatedAt.Format(timeLayout),
		UpdatedAt:       o.UpdatedAt.Format(timeLayout),
	}
}

func parseOrderID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, order.ErrOrderNotFound
	}
	return uid, nil
}

func (r *queryResolver) Orders(ctx context.Context, status *model.OrderStatus, limit, offset *int) (*model.OrderList, error) {
	var f order.Filter
	if status != nil {
		st, err := order.ParseStatus(string(*status))
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	if limit != nil {
		f.Limit = *limit
	}
	if offset != nil {
		f.Offset = *offset
	}

	orders, err := r.OrderSvc.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toGraphQLOrder(o))
	}
	return &model.OrderList{Orders: out, Count: len(out)}, nil
}

func (r *queryResolver) Order(ctx context.Context, id string) (*model.Order, error) {
	uid, err := parseOrderID(id)
	if err != nil {
		return nil, err
	}
	o, err := r.OrderSvc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toGraphQLOrder(o), nil
}

func (r *queryResolver) OrderStats(ctx context.Context) (*model.OrderStats, error) {
	s, err := r.OrderSvc.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &model.OrderStats{Total: s.Total, Pending: s.Pending, Confirmed: s.Confirmed, Delivered: s.Delivered}, nil
}

func (r *mutationResolver) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	uid, err := parseOrderID(id)
	if err != nil {
		return nil, err
	}
	o, err := r.OrderSvc.UpdateStatus(ctx, uid, strings.ToLower(string(status)))
	if err != nil {
		return nil, err
	}
	logger.FromCtx(ctx).Info("order status updated",
		zap.String("layer", "graph"),
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)),
	)
	return toGraphQLOrder(o), nil
}

// OrderChanged streams every order insert, update and delete.
func (r *subscriptionResolver) OrderChanged(ctx context.Context) (<-chan *model.OrderEvent, error) {
	return relay(ctx, r.Hub, realtime.TopicOrders, func(ev realtime.Event) (*model.OrderEvent, bool) {
		var o order.Order
		if err := json.Unmarshal(ev.Payload, &o); err != nil {
			logger.FromCtx(ctx).Warn("dropping undecodable order event", zap.Error(err))
			return nil, false
		}
		return &model.OrderEvent{
			Type:  model.ChangeType(strings.ToUpper(string(ev.Type))),
			Order: toGraphQLOrder(&o),
		}, true
	}), nil
}
