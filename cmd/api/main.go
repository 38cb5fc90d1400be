package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/order-notifier/internal/application/service"
	"github.com/sangkips/order-notifier/internal/config"
	"github.com/sangkips/order-notifier/internal/infrastructure/repository"
	"github.com/sangkips/order-notifier/internal/presentation/http/handler"
	"github.com/sangkips/order-notifier/internal/presentation/http/middleware"
	"github.com/sangkips/order-notifier/internal/presentation/http/routes"
	"github.com/sangkips/order-notifier/pkg/line"
	"github.com/sangkips/order-notifier/pkg/logger"
	"github.com/sangkips/order-notifier/pkg/thaifmt"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}, cfg.App.Name)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect the order store; without STORE_CREDENTIALS writes are skipped
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	store, err := repository.NewOrderStoreFromConfig(connectCtx, &cfg.Store, cfg.App.Debug, log)
	cancel()
	if err != nil {
		log.Error("failed to initialize order store", "error", err)
		os.Exit(1)
	}

	// Initialize LINE pusher
	var pusher line.Pusher
	if cfg.Line.DryRun {
		log.Warn("LINE_DRY_RUN enabled, receipts are logged instead of pushed")
		pusher = line.NewLogPusher(log)
	} else {
		pusher = line.NewClient(line.Config{
			BaseURL: cfg.Line.BaseURL,
			Token:   cfg.Line.Token,
			Timeout: cfg.Line.Timeout,
		})
	}
	if cfg.Line.Token == "" || cfg.Line.To == "" {
		log.Warn("LINE_TOKEN or LINE_TO is not set, order webhooks will fail until configured")
	}

	location := thaifmt.LoadZone(cfg.Receipt.Timezone)
	labels := service.DefaultReceiptLabels()
	if cfg.Receipt.ShopName != "" {
		labels.ShopName = cfg.Receipt.ShopName
	}

	// Initialize services
	receiptService := service.NewReceiptService(labels, location)
	notificationService := service.NewNotificationService(pusher, receiptService)
	orderService := service.NewOrderService(store, notificationService, &cfg.Line, location, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		OrderWebhook: handler.NewOrderWebhookHandler(orderService, log),
		LogWebhook:   handler.NewLogWebhookHandler(log),
	}

	rateLimiter := middleware.NewClientRateLimiterFromConfig(cfg.RateLimit)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:         cfg,
		Logger:      log,
		Store:       store,
		RateLimiter: rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", "port", port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error("failed to close order store", "error", err)
	}
}

