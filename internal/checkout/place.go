package checkout

import (
	"context"

	"rz-parfum-be/internal/address"
	"rz-parfum-be/internal/localstore"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/session"

	"go.uber.org/zap"
)

// Placer checks out a device's session cart.
type Placer struct {
	Checkout Service
	Sessions *session.Store
	Delivery address.Service
}

// Place submits the cart of deviceID. Empty info falls back to the form
// saved in store; provided info is saved once the order went through. Only
// the submitted lines leave the cart, so lines added meanwhile are kept.
func (p Placer) Place(ctx context.Context, deviceID string, store localstore.Store, info address.DeliveryInfo) (*Result, error) {
	provided := !info.Normalize().IsZero()
	if !provided {
		info, _ = p.Delivery.Load(ctx, store)
	}

	c := p.Sessions.Get(deviceID).Cart
	res, err := p.Checkout.Checkout(ctx, c, info)
	if err != nil {
		return nil, err
	}

	p.Sessions.Update(deviceID, func(s session.State) session.State {
		s.Cart = s.Cart.Subtract(c.Lines())
		return s
	})
	if provided {
		if _, err := p.Delivery.Save(ctx, store, info); err != nil {
			logger.FromCtx(ctx).Warn("failed to remember delivery info",
				zap.String("layer", "service"),
				zap.Error(err),
			)
		}
	}
	return res, nil
}
