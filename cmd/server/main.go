package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rz-parfum-be/internal/address"
	"rz-parfum-be/internal/cart"
	"rz-parfum-be/internal/checkout"
	"rz-parfum-be/internal/config"
	"rz-parfum-be/internal/db"
	"rz-parfum-be/internal/graph"
	"rz-parfum-be/internal/localstore"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/metrics"
	"rz-parfum-be/internal/middleware"
	"rz-parfum-be/internal/order"
	"rz-parfum-be/internal/product"
	"rz-parfum-be/internal/realtime"
	"rz-parfum-be/internal/review"
	"rz-parfum-be/internal/session"
	"rz-parfum-be/internal/transport"
	"rz-parfum-be/internal/user"
	"rz-parfum-be/internal/wishlist"

	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	janitorInterval = time.Minute
)

// app is the wired process, without its network listeners.
type app struct {
	handler  http.Handler
	hub      *realtime.Hub
	sessions *session.Store
	limiter  *middleware.RateLimiter
}

func newApp(cfg *config.Config, database *sql.DB, store localstore.Store) *app {
	m := metrics.New()
	hub := realtime.NewHub(realtime.WithObserver(m))
	catalogue := product.DefaultCatalogue()
	pricing := cart.Pricing{
		DeliveryFee:           cfg.DeliveryFee,
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
	}

	// With the Postgres listener on, the change triggers are the only
	// source of realtime events.
	var orderPub order.Publisher
	var reviewPub review.Publisher
	if !cfg.PGListen {
		orderPub, reviewPub = hub, hub
	}

	orderSvc := order.NewService(order.NewRepository(database), orderPub)
	reviewSvc := review.NewService(review.NewRepository(database), catalogue, reviewPub, m)
	tokens := user.NewTokens(cfg.JWTSecret)
	userSvc := user.NewService(user.NewRepository(database), tokens, user.LogNotifier{})

	sessions := session.NewStore(cfg.SessionTTL)
	limiter := middleware.NewRateLimiter()

	productSvc := product.NewService(catalogue)
	wishlists := wishlist.NewDevices(store)
	delivery := address.NewService()
	checkoutSvc := checkout.NewService(orderSvc, pricing, cfg.WhatsAppNumber, m)

	gql := graph.NewHandler(&graph.Resolver{
		ProductSvc:  productSvc,
		Pricing:     pricing,
		Sessions:    sessions,
		Wishlists:   wishlists,
		LocalStore:  store,
		DeliverySvc: delivery,
		CheckoutSvc: checkoutSvc,
		OrderSvc:    orderSvc,
		ReviewSvc:   reviewSvc,
		UserSvc:     userSvc,
		Hub:         hub,
	}, cfg.CORSOrigin)

	handler := transport.NewRouter(transport.Deps{
		DB:            database,
		Products:      productSvc,
		Pricing:       pricing,
		Sessions:      sessions,
		Wishlists:     wishlists,
		LocalStore:    store,
		Delivery:      delivery,
		Checkout:      checkoutSvc,
		Orders:        orderSvc,
		Reviews:       reviewSvc,
		Users:         userSvc,
		Hub:           hub,
		GraphQL:       gql,
		Metrics:       m,
		Tokens:        tokens,
		Limiter:       limiter,
		CORSOrigin:    cfg.CORSOrigin,
		SecureCookies: cfg.IsProduction(),
	})

	return &app{handler: handler, hub: hub, sessions: sessions, limiter: limiter}
}

// background starts the maintenance loops; they stop with ctx.
func (a *app) background(ctx context.Context, cfg *config.Config) {
	go a.sessions.RunJanitor(ctx, janitorInterval)
	go a.limiter.RunCleanup(ctx)

	if cfg.PGListen {
		l := realtime.NewPGListener(db.DSN(cfg), a.hub)
		go func() {
			if err := l.Run(ctx); err != nil {
				logger.L().Error("pg listener exited", zap.Error(err))
			}
		}()
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := localstore.OpenSQLite(cfg.LocalStorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	a := newApp(cfg, database, store)
	a.background(ctx, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("🚀 server running", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	// Ends open event streams so Shutdown does not wait on them.
	a.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
