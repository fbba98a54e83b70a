package graph

import (
	"context"

	"rz-parfum-be/internal/address"
	"rz-parfum-be/internal/cart"
	"rz-parfum-be/internal/compare"
	"rz-parfum-be/internal/graph/model"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/session"
	"rz-parfum-be/internal/wishlist"

	"go.uber.org/zap"
)

func (r *Resolver) updateCart(ctx context.Context, fn func(cart.Cart) cart.Cart) *model.Cart {
	st := r.Sessions.Update(deviceID(ctx), func(s session.State) session.State {
		s.Cart = fn(s.Cart)
		return s
	})
	return toGraphQLCart(r.Pricing.Summarize(st.Cart))
}

func (r *Resolver) currentCart(ctx context.Context) *model.Cart {
	return toGraphQLCart(r.Pricing.Summarize(r.Sessions.Get(deviceID(ctx)).Cart))
}

func (r *Resolver) lookup(id string) (product.Product, error) {
	p, ok := r.ProductSvc.Catalogue().Get(id)
	if !ok {
		return product.Product{}, product.ErrProductNotFound
	}
	return p, nil
}

func (r *queryResolver) Cart(ctx context.Context) (*model.Cart, error) {
	return r.currentCart(ctx), nil
}

func (r *mutationResolver) AddToCart(ctx context.Context, input model.AddToCartInput) (*model.Cart, error) {
	qty := 1
	if input.Quantity != nil {
		qty = *input.Quantity
	}
	if !cart.ValidQuantity(qty) {
		return nil, cart.ErrInvalidQuantity
	}
	p, ok := r.ProductSvc.Catalogue().Get(input.ProductID)
	if !ok {
		return nil, cart.ErrProductNotFound
	}

	c := r.updateCart(ctx, func(c cart.Cart) cart.Cart { return c.Add(p, qty) })

	logger.FromCtx(ctx).Debug("cart item added",
		zap.String("layer", "graph"),
		zap.String("product_id", p.ID),
		zap.Int("item_count", c.ItemCount),
	)
	return c, nil
}

// UpdateCartItem sets a line's quantity. Zero or less removes the line.
func (r *mutationResolver) UpdateCartItem(ctx context.Context, productID string, quantity int) (*model.Cart, error) {
	if quantity > cart.MaxQuantity {
		return nil, cart.ErrInvalidQuantity
	}
	return r.updateCart(ctx, func(c cart.Cart) cart.Cart { return c.UpdateQuantity(productID, quantity) }), nil
}

func (r *mutationResolver) RemoveFromCart(ctx context.Context, productID string) (*model.Cart, error) {
	return r.updateCart(ctx, func(c cart.Cart) cart.Cart { return c.RemoveItem(productID) }), nil
}

func (r *mutationResolver) ClearCart(ctx context.Context) (*model.Cart, error) {
	return r.updateCart(ctx, func(c cart.Cart) cart.Cart { return c.Clear() }), nil
}

func (r *Resolver) updateCompare(ctx context.Context, fn func(compare.Set) compare.Set) compare.Set {
	return r.Sessions.Update(deviceID(ctx), func(s session.State) session.State {
		s.Compare = fn(s.Compare)
		return s
	}).Compare
}

func (r *queryResolver) Comparison(ctx context.Context) (*model.Comparison, error) {
	return toGraphQLComparison(r.Sessions.Get(deviceID(ctx)).Compare), nil
}

// AddToComparison reports added=false instead of failing when the set is
// full or already holds the product.
func (r *mutationResolver) AddToComparison(ctx context.Context, productID string) (*model.CompareResult, error) {
	p, err := r.lookup(productID)
	if err != nil {
		return nil, err
	}
	var added bool
	set := r.updateCompare(ctx, func(s compare.Set) compare.Set {
		s, added = s.Add(p)
		return s
	})
	return &model.CompareResult{Added: added, Comparison: toGraphQLComparison(set)}, nil
}

func (r *mutationResolver) RemoveFromComparison(ctx context.Context, productID string) (*model.Comparison, error) {
	return toGraphQLComparison(r.updateCompare(ctx, func(s compare.Set) compare.Set { return s.Remove(productID) })), nil
}

func (r *mutationResolver) ClearComparison(ctx context.Context) (*model.Comparison, error) {
	return toGraphQLComparison(r.updateCompare(ctx, func(s compare.Set) compare.Set { return s.Clear() })), nil
}

func (r *Resolver) updateWishlist(ctx context.Context, fn func(wishlist.Wishlist) wishlist.Wishlist) (*model.Wishlist, error) {
	wl, err := r.Wishlists.For(deviceID(ctx)).Update(ctx, fn)
	if err != nil {
		return nil, err
	}
	return toGraphQLWishlist(wl), nil
}

func (r *queryResolver) Wishlist(ctx context.Context) (*model.Wishlist, error) {
	return toGraphQLWishlist(r.Wishlists.For(deviceID(ctx)).Get(ctx)), nil
}

func (r *mutationResolver) AddToWishlist(ctx context.Context, productID string) (*model.Wishlist, error) {
	p, err := r.lookup(productID)
	if err != nil {
		return nil, err
	}
	return r.updateWishlist(ctx, func(wl wishlist.Wishlist) wishlist.Wishlist { return wl.Add(p) })
}

func (r *mutationResolver) RemoveFromWishlist(ctx context.Context, productID string) (*model.Wishlist, error) {
	return r.updateWishlist(ctx, func(wl wishlist.Wishlist) wishlist.Wishlist { return wl.Remove(productID) })
}

func (r *mutationResolver) ClearWishlist(ctx context.Context) (*model.Wishlist, error) {
	return r.updateWishlist(ctx, func(wl wishlist.Wishlist) wishlist.Wishlist { return wl.Clear() })
}

func toDeliveryInfo(in *model.DeliveryInfo) address.DeliveryInfo {
	if in == nil {
		return address.DeliveryInfo{}
	}
	return address.DeliveryInfo{Name: in.Name, Phone: in.Phone, City: in.City, Address: in.Address}
}

func toGraphQLDeliveryInfo(info address.DeliveryInfo) *model.DeliveryInfo {
	return &model.DeliveryInfo{Name: info.Name, Phone: info.Phone, City: info.City, Address: info.Address}
}

func (r *queryResolver) DeliveryInfo(ctx context.Context) (*model.SavedDeliveryInfo, error) {
	info, ok := r.DeliverySvc.Load(ctx, deviceStore(ctx, r.LocalStore))
	return &model.SavedDeliveryInfo{Saved: ok, Info: toGraphQLDeliveryInfo(info)}, nil
}

func (r *mutationResolver) SaveDeliveryInfo(ctx context.Context, input model.DeliveryInfo) (*model.SavedDeliveryInfo, error) {
	saved, err := r.DeliverySvc.Save(ctx, deviceStore(ctx, r.LocalStore), toDeliveryInfo(&input))
	if err != nil {
		return nil, err
	}
	return &model.SavedDeliveryInfo{Saved: true, Info: toGraphQLDeliveryInfo(saved)}, nil
}

func (r *mutationResolver) ForgetDeliveryInfo(ctx context.Context) (bool, error) {
	if err := r.DeliverySvc.Forget(ctx, deviceStore(ctx, r.LocalStore)); err != nil {
		return false, err
	}
	return true, nil
}

// Checkout places the device's cart. Without input the saved delivery form
// is used. The returned cart is what is left after the order, lines added
// during submission included.
func (r *mutationResolver) Checkout(ctx context.Context, input *model.DeliveryInfo) (*model.CheckoutResult, error) {
	res, err := r.placer().Place(ctx, deviceID(ctx), deviceStore(ctx, r.LocalStore), toDeliveryInfo(input))
	if err != nil {
		return nil, err
	}
	return &model.CheckoutResult{
		OrderID:     res.OrderID.String(),
		Reference:   res.Reference,
		WhatsappURL: res.WhatsAppURL,
		Message:     res.Message,
		Cart:        r.currentCart(ctx),
	}, nil
}
