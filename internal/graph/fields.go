package graph

import (
	"context"

	"rz-parfum-be/internal/graph/model"
)

type idArgs struct {
	ID string `json:"id"`
}

type productIDArgs struct {
	ProductID string `json:"productId"`
}

// call binds the field arguments into A before running fn.
func call[A any](fn func(ctx context.Context, a A) (any, error)) fieldFunc {
	return func(ctx context.Context, args map[string]any) (any, error) {
		var a A
		if err := bind(args, &a); err != nil {
			return nil, err
		}
		return fn(ctx, a)
	}
}

func stream[A, T any](fn func(ctx context.Context, a A) (<-chan T, error)) streamFunc {
	return func(ctx context.Context, args map[string]any) (<-chan any, error) {
		var a A
		if err := bind(args, &a); err != nil {
			return nil, err
		}
		ch, err := fn(ctx, a)
		if err != nil {
			return nil, err
		}
		return untyped(ctx, ch), nil
	}
}

func noArgs[T any](fn func(ctx context.Context) (T, error)) fieldFunc {
	return func(ctx context.Context, _ map[string]any) (any, error) {
		return fn(ctx)
	}
}

func queryFields(q *queryResolver) map[string]fieldFunc {
	return map[string]fieldFunc{
		"products": call(func(ctx context.Context, a struct {
			Filter *model.ProductFilter `json:"filter"`
		}) (any, error) {
			return q.Products(ctx, a.Filter)
		}),
		"product": call(func(ctx context.Context, a idArgs) (any, error) {
			return q.Product(ctx, a.ID)
		}),
		"facets": noArgs(q.Facets),
		"reviews": call(func(ctx context.Context, a productIDArgs) (any, error) {
			return q.Reviews(ctx, a.ProductID)
		}),
		"cart":         noArgs(q.Cart),
		"comparison":   noArgs(q.Comparison),
		"wishlist":     noArgs(q.Wishlist),
		"deliveryInfo": noArgs(q.DeliveryInfo),
		"me":           noArgs(q.Me),
		"orders": call(func(ctx context.Context, a struct {
			Status *model.OrderStatus `json:"status"`
			Limit  *int               `json:"limit"`
			Offset *int               `json:"offset"`
		}) (any, error) {
			return q.Orders(ctx, a.Status, a.Limit, a.Offset)
		}),
		"order": call(func(ctx context.Context, a idArgs) (any, error) {
			return q.Order(ctx, a.ID)
		}),
		"orderStats": noArgs(q.OrderStats),
	}
}

func mutationFields(m *mutationResolver) map[string]fieldFunc {
	return map[string]fieldFunc{
		"addToCart": call(func(ctx context.Context, a struct {
			Input model.AddToCartInput `json:"input"`
		}) (any, error) {
			return m.AddToCart(ctx, a.Input)
		}),
		"updateCartItem": call(func(ctx context.Context, a struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}) (any, error) {
			return m.UpdateCartItem(ctx, a.ProductID, a.Quantity)
		}),
		"removeFromCart": call(func(ctx context.Context, a productIDArgs) (any, error) {
			return m.RemoveFromCart(ctx, a.ProductID)
		}),
		"clearCart": noArgs(m.ClearCart),

		"addToComparison": call(func(ctx context.Context, a productIDArgs) (any, error) {
			return m.AddToComparison(ctx, a.ProductID)
		}),
		"removeFromComparison": call(func(ctx context.Context, a productIDArgs) (any, error) {
			return m.RemoveFromComparison(ctx, a.ProductID)
		}),
		"clearComparison": noArgs(m.ClearComparison),

		"addToWishlist": call(func(ctx context.Context, a productIDArgs) (any, error) {
			return m.AddToWishlist(ctx, a.ProductID)
		}),
		"removeFromWishlist": call(func(ctx context.Context, a productIDArgs) (any, error) {
			return m.RemoveFromWishlist(ctx, a.ProductID)
		}),
		"clearWishlist": noArgs(m.ClearWishlist),

		"saveDeliveryInfo": call(func(ctx context.Context, a struct {
			Input model.DeliveryInfo `json:"input"`
		}) (any, error) {
			return m.SaveDeliveryInfo(ctx, a.Input)
		}),
		"forgetDeliveryInfo": noArgs(m.ForgetDeliveryInfo),
		"checkout": call(func(ctx context.Context, a struct {
			Input *model.DeliveryInfo `json:"input"`
		}) (any, error) {
			return m.Checkout(ctx, a.Input)
		}),

		"submitReview": call(func(ctx context.Context, a struct {
			ProductID string            `json:"productId"`
			Input     model.ReviewInput `json:"input"`
		}) (any, error) {
			return m.SubmitReview(ctx, a.ProductID, a.Input)
		}),

		"signup": call(func(ctx context.Context, a struct {
			Input model.CredentialsInput `json:"input"`
		}) (any, error) {
			return m.Signup(ctx, a.Input)
		}),
		"login": call(func(ctx context.Context, a struct {
			Input model.CredentialsInput `json:"input"`
		}) (any, error) {
			return m.Login(ctx, a.Input)
		}),
		"requestPasswordReset": call(func(ctx context.Context, a struct {
			Email string `json:"email"`
		}) (any, error) {
			return m.RequestPasswordReset(ctx, a.Email)
		}),
		"resetPassword": call(func(ctx context.Context, a struct {
			Input model.ResetPasswordInput `json:"input"`
		}) (any, error) {
			return m.ResetPassword(ctx, a.Input)
		}),

		"updateOrderStatus": call(func(ctx context.Context, a struct {
			ID     string            `json:"id"`
			Status model.OrderStatus `json:"status"`
		}) (any, error) {
			return m.UpdateOrderStatus(ctx, a.ID, a.Status)
		}),
	}
}

func subscriptionFields(s *subscriptionResolver) map[string]streamFunc {
	return map[string]streamFunc{
		"reviewAdded": stream(func(ctx context.Context, a productIDArgs) (<-chan *model.Review, error) {
			return s.ReviewAdded(ctx, a.ProductID)
		}),
		"orderChanged": stream(func(ctx context.Context, _ struct{}) (<-chan *model.OrderEvent, error) {
			return s.OrderChanged(ctx)
		}),
	}
}
