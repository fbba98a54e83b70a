package transport

import (
	"context"
	"net/http"

	"rz-parfum-be/internal/address"
	"rz-parfum-be/internal/cart"
	"rz-parfum-be/internal/checkout"
	"rz-parfum-be/internal/localstore"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/metrics"
	"rz-parfum-be/internal/middleware"
	"rz-parfum-be/internal/order"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/realtime"
	"rz-parfum-be/internal/review"
	"rz-parfum-be/internal/session"
	"rz-parfum-be/internal/user"
	"rz-parfum-be/internal/wishlist"
)

// Pinger is the database health probe. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps holds everything the handlers reach into. Metrics, Limiter and
// GraphQL are optional.
type Deps struct {
	DB         Pinger
	Products   product.Service
	Pricing    cart.Pricing
	Sessions   *session.Store
	Wishlists  *wishlist.Devices
	LocalStore localstore.Store
	Delivery   address.Service
	Checkout   checkout.Service
	Orders     order.Service
	Reviews    review.Service
	Users      user.Service
	Hub        *realtime.Hub
	Metrics    *metrics.Metrics
	Tokens     middleware.TokenParser
	Limiter    *middleware.RateLimiter

	// GraphQL is served on /query behind the same middleware chain.
	GraphQL http.Handler

	CORSOrigin    string
	SecureCookies bool
}

type Handler struct {
	Deps
}

// NewRouter wires every route behind the shared middleware chain.
func NewRouter(d Deps) http.Handler {
	h := &Handler{Deps: d}
	mux := http.NewServeMux()

	handle := func(pattern string, fn http.HandlerFunc, wrap ...func(http.Handler) http.Handler) {
		var next http.Handler = fn
		for i := len(wrap) - 1; i >= 0; i-- {
			next = wrap[i](next)
		}
		if d.Metrics != nil {
			next = d.Metrics.Instrument(pattern, next)
		}
		mux.Handle(pattern, next)
	}

	handle("GET /healthz", h.Health)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	handle("GET /products", h.ListProducts)
	handle("GET /products/facets", h.ProductFacets)
	handle("GET /products/{id}", h.GetProduct)
	handle("GET /products/{id}/reviews", h.ListReviews)
	handle("POST /products/{id}/reviews", h.SubmitReview)
	handle("GET /products/{id}/reviews/stream", h.StreamReviews)

	handle("GET /cart", h.GetCart)
	handle("POST /cart/items", h.AddCartItem)
	handle("PATCH /cart/items/{id}", h.UpdateCartItem)
	handle("DELETE /cart/items/{id}", h.RemoveCartItem)
	handle("DELETE /cart", h.ClearCart)

	handle("GET /compare", h.GetCompare)
	handle("POST /compare/{id}", h.AddCompare)
	handle("DELETE /compare/{id}", h.RemoveCompare)
	handle("DELETE /compare", h.ClearCompare)

	handle("GET /wishlist", h.GetWishlist)
	handle("POST /wishlist/{id}", h.AddWishlist)
	handle("DELETE /wishlist/{id}", h.RemoveWishlist)
	handle("DELETE /wishlist", h.ClearWishlist)

	handle("GET /delivery-info", h.GetDeliveryInfo)
	handle("PUT /delivery-info", h.SaveDeliveryInfo)
	handle("DELETE /delivery-info", h.ForgetDeliveryInfo)

	handle("POST /checkout", h.PlaceOrder)

	handle("POST /auth/signup", h.Signup)
	handle("POST /auth/login", h.Login)
	handle("POST /auth/logout", h.Logout)
	handle("GET /auth/me", h.Me, middleware.RequireAuth)
	handle("POST /auth/password-reset", h.RequestPasswordReset)
	handle("POST /auth/password", h.ResetPassword)

	admin := middleware.RequireAdmin(d.Users)
	handle("GET /admin/orders", h.ListOrders, admin)
	handle("GET /admin/orders/stats", h.OrderStats, admin)
	handle("GET /admin/orders/{id}", h.GetOrder, admin)
	handle("PATCH /admin/orders/{id}", h.UpdateOrderStatus, admin)
	handle("GET /admin/orders/stream", h.StreamOrders, admin)

	if d.GraphQL != nil {
		handle("/query", d.GraphQL.ServeHTTP)
	}

	mws := []func(http.Handler) http.Handler{
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.RecoverMiddleware,
		middleware.CORS(d.CORSOrigin),
		middleware.AuthMiddleware(d.Tokens),
	}
	if d.Limiter != nil {
		// After auth so signed-in users are limited by account.
		mws = append(mws, d.Limiter.Middleware)
	}
	mws = append(mws, middleware.DeviceMiddleware)

	return middleware.Chain(mux, mws...)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
