package graph

import (
	"net/http"
	"time"

	"rz-parfum-be/internal/address"
	"rz-parfum-be/internal/cart"
	"rz-parfum-be/internal/checkout"
	"rz-parfum-be/internal/localstore"
	"rz-parfum-be/internal/order"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/realtime"
	"rz-parfum-be/internal/review"
	"rz-parfum-be/internal/session"
	"rz-parfum-be/internal/user"
	"rz-parfum-be/internal/wishlist"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/gorilla/websocket"
)

const (
	complexityLimit   = 300
	keepAliveInterval = 10 * time.Second
)

type Resolver struct {
	ProductSvc  product.Service
	Pricing     cart.Pricing
	Sessions    *session.Store
	Wishlists   *wishlist.Devices
	LocalStore  localstore.Store
	DeliverySvc address.Service
	CheckoutSvc checkout.Service
	OrderSvc    order.Service
	ReviewSvc   review.Service
	UserSvc     user.Service
	Hub         *realtime.Hub
}

type queryResolver struct{ *Resolver }

type mutationResolver struct{ *Resolver }

type subscriptionResolver struct{ *Resolver }

func (r *Resolver) Query() *queryResolver { return &queryResolver{r} }

func (r *Resolver) Mutation() *mutationResolver { return &mutationResolver{r} }

func (r *Resolver) Subscription() *subscriptionResolver { return &subscriptionResolver{r} }

func (r *Resolver) placer() checkout.Placer {
	return checkout.Placer{Checkout: r.CheckoutSvc, Sessions: r.Sessions, Delivery: r.DeliverySvc}
}

func NewSchema(r *Resolver) graphql.ExecutableSchema {
	return newExecutableSchema(r)
}

// NewHandler serves the schema over POST, GET and SSE, and subscriptions
// over websockets. Websocket upgrades are accepted from origin only; an
// empty origin accepts any.
func NewHandler(r *Resolver, origin string) http.Handler {
	srv := handler.New(NewSchema(r))

	srv.AddTransport(transport.Websocket{
		KeepAlivePingInterval: keepAliveInterval,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(req *http.Request) bool {
				o := req.Header.Get("Origin")
				return origin == "" || o == "" || o == origin
			},
		},
	})
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.SSE{})
	srv.AddTransport(transport.POST{})

	srv.Use(extension.FixedComplexityLimit(complexityLimit))

	return srv
}
