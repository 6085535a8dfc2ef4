package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kharidoapp/checkout-engine/internal/api/handlers"
	"github.com/kharidoapp/checkout-engine/internal/api/middleware"
	"github.com/kharidoapp/checkout-engine/internal/config"
	"github.com/kharidoapp/checkout-engine/internal/geocode"
	"github.com/kharidoapp/checkout-engine/internal/health"
	"github.com/kharidoapp/checkout-engine/internal/identity"
	"github.com/kharidoapp/checkout-engine/internal/metrics"
	"github.com/kharidoapp/checkout-engine/internal/models"
	service "github.com/kharidoapp/checkout-engine/internal/services"
	"github.com/kharidoapp/checkout-engine/internal/store"
	sendgridClient "github.com/kharidoapp/checkout-engine/pkg/sendgrid"
	"github.com/redis/go-redis/v9"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Record store setup
	recordStore, err := newStore(cfg)
	if err != nil {
		slog.Error("❌ Error opening the record store", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := recordStore.Close(); err != nil {
			slog.Error("⚠️ Error closing record store", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Record store closed")
		}
	}()

	// Identity: verifier for IdP-issued tokens plus the process-wide
	// current-principal cell.
	verifier := identity.NewVerifier([]byte(cfg.Security.JWTKey))
	authState := identity.NewState()

	unsubscribe := authState.Subscribe(func(p *models.Principal) {
		if p == nil {
			slog.Info("Principal signed out")
			return
		}

		slog.Info("Principal changed", slog.String("userId", p.ID.String()))
	})
	defer unsubscribe()

	var notifier service.Notifier
	if cfg.SendGrid.APIKey != "" {
		notifier = sendgridClient.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	geocoder := geocode.NewClient(&cfg.Geocoder)

	cartService := service.NewCartService(recordStore)
	checkoutService := service.NewCheckoutService(recordStore, geocoder)
	orderService := service.NewOrderService(recordStore, cartService, checkoutService, notifier)
	paymentService := service.NewPaymentService(orderService)

	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, orderService, cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	authMiddleware := middleware.NewAuthMiddleware(verifier, authState)

	healthHandler, err := health.NewHealthHandler(cfg, recordStore)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("backend", cfg.Store.Backend))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/quantity", authMiddleware.Authenticate(cartHandler.AdjustQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/cart/items/save-for-later", authMiddleware.Authenticate(cartHandler.SaveForLater()))
	routerMux.HandleFunc("GET /api/v1/cart/saved", authMiddleware.Authenticate(cartHandler.ListSaved()))
	routerMux.HandleFunc("GET /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Session()))
	routerMux.HandleFunc("PUT /api/v1/checkout/address", authMiddleware.Authenticate(checkoutHandler.UpdateAddress()))
	routerMux.HandleFunc("POST /api/v1/checkout/address/confirm", authMiddleware.Authenticate(checkoutHandler.ConfirmAddress()))
	routerMux.HandleFunc("POST /api/v1/checkout/address/edit", authMiddleware.Authenticate(checkoutHandler.EditAddress()))
	routerMux.HandleFunc("POST /api/v1/checkout/address/autofill", authMiddleware.Authenticate(checkoutHandler.AutofillAddress()))
	routerMux.HandleFunc("PUT /api/v1/checkout/payment-method", authMiddleware.Authenticate(checkoutHandler.SelectPaymentMethod()))
	routerMux.HandleFunc("POST /api/v1/checkout/proceed", authMiddleware.Authenticate(checkoutHandler.Proceed()))
	routerMux.HandleFunc("POST /api/v1/payments/simulate", authMiddleware.Authenticate(paymentHandler.SimulateCapture()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("POST /api/v1/orders/reorder", authMiddleware.Authenticate(orderHandler.Reorder()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}

func newStore(cfg *config.Config) (store.Store, error) {

	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConnect.Host,
			Username: cfg.RedisConnect.Username,
			Password: cfg.RedisConnect.Password,
			DB:       cfg.RedisConnect.DB,
		})

		return store.NewRedisStore(client), nil
	case "postgres":
		return store.NewPostgresStore(&cfg.Database)
	default:
		return store.NewSQLiteStore(cfg.Store.SQLitePath)
	}
}
