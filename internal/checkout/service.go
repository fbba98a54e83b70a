package checkout

import (
	"context"
	"errors"

	"rz-parfum-be/internal/address"
	"rz-parfum-be/internal/cart"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/order"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyCart = errors.New("cart is empty")

// Recorder counts checkout outcomes.
type Recorder interface {
	OrderSubmitted(ok bool)
}

type Result struct {
	OrderID     uuid.UUID    `json:"order_id"`
	Reference   string       `json:"reference"`
	WhatsAppURL string       `json:"whatsapp_url"`
	Message     string       `json:"message"`
	Summary     cart.Summary `json:"summary"`
}

type Service interface {
	// Checkout records the order and returns the prefilled WhatsApp link.
	// The caller clears its cart only when err is nil.
	Checkout(ctx context.Context, c cart.Cart, info address.DeliveryInfo) (*Result, error)
}

type service struct {
	orders   order.Service
	pricing  cart.Pricing
	number   string
	recorder Recorder
}

func NewService(orders order.Service, pricing cart.Pricing, whatsappNumber string, rec Recorder) Service {
	return &service{
		orders:   orders,
		pricing:  pricing,
		number:   whatsappNumber,
		recorder: rec,
	}
}

func (s *service) record(ok bool) {
	if s.recorder != nil {
		s.recorder.OrderSubmitted(ok)
	}
}

func (s *service) Checkout(ctx context.Context, c cart.Cart, info address.DeliveryInfo) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	info = info.Normalize()
	if err := info.Validate(); err != nil {
		log.Debug("invalid delivery info", zap.Error(err))
		return nil, err
	}

	summary := s.pricing.Summarize(c)
	o := snapshot(summary, info)

	placed, err := s.orders.Submit(ctx, o)
	if err != nil {
		s.record(false)
		log.Error("order submission failed", zap.Error(err))
		return nil, err
	}
	s.record(true)

	msg := Message(summary, &info, placed.Reference)
	log.Info("checkout completed",
		zap.String("order_id", placed.ID.String()),
		zap.Int64("total", summary.Total),
		zap.Bool("free_delivery", summary.FreeDelivery),
	)

	return &Result{
		OrderID:     placed.ID,
		Reference:   placed.Reference,
		WhatsAppURL: Link(s.number, msg),
		Message:     msg,
		Summary:     summary,
	}, nil
}

func snapshot(s cart.Summary, info address.DeliveryInfo) *order.Order {
	items := make([]order.Item, 0, len(s.Lines))
	for _, l := range s.Lines {
		items = append(items, order.Item{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		})
	}
	return &order.Order{
		CustomerName:    info.Name,
		CustomerPhone:   info.Phone,
		CustomerCity:    info.City,
		CustomerAddress: info.Address,
		Items:           items,
		Subtotal:        s.Subtotal,
		DeliveryFee:     s.DeliveryFee,
		Total:           s.Total,
	}
}
