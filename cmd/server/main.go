package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightbuy/brightbuy-backend/config"
	"github.com/brightbuy/brightbuy-backend/internal/app/controller"
	"github.com/brightbuy/brightbuy-backend/internal/app/repository"
	"github.com/brightbuy/brightbuy-backend/internal/app/service"
	"github.com/brightbuy/brightbuy-backend/internal/db"
	"github.com/brightbuy/brightbuy-backend/internal/middleware"
	"github.com/brightbuy/brightbuy-backend/internal/queue"
	"github.com/brightbuy/brightbuy-backend/internal/router"
	"github.com/brightbuy/brightbuy-backend/internal/scheduler"
	"github.com/brightbuy/brightbuy-backend/internal/worker"
	"github.com/brightbuy/brightbuy-backend/pkg/logger"
	"github.com/brightbuy/brightbuy-backend/pkg/redis"
	"github.com/brightbuy/brightbuy-backend/pkg/util"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if logLevel == "" {
		logLevel = "info"
		if cfg.Server.Environment == "development" {
			logLevel = "debug"
		}
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})

	logger.Info("Starting BrightBuy Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations (also seeds the location table)
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; without it city lookups go straight to the database
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, location cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	defer redis.Close()
	locationCache := redis.NewCache(redis.GetClient(), "brightbuy", cfg.Redis.CacheTTL)

	queueClient := queue.NewClient(&cfg.Queue)
	defer queueClient.Close()

	database := db.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	variantRepo := repository.NewVariantRepository(database)
	cartRepo := repository.NewCartRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	locationRepo := repository.NewLocationRepository(database)

	// Initialize services
	mailNotifier := service.NewEmailNotifier(util.MailSettings{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
	})
	var notifier service.OrderNotifier = service.NewAsyncNotifier(mailNotifier)
	if queueClient.Enabled() {
		notifier = service.NewQueueNotifier(queueClient)
	}

	estimator := service.NewDeliveryEstimator(service.DeliveryRules{
		PickupDays:            cfg.Delivery.PickupDays,
		MainCityDays:          cfg.Delivery.MainCityDays,
		OtherCityDays:         cfg.Delivery.OtherCityDays,
		LowStockThreshold:     cfg.Delivery.LowStockThreshold,
		LowStockSurchargeDays: cfg.Delivery.LowStockSurchargeDays,
	})

	inventoryService := service.NewInventoryService(variantRepo)
	locationService := service.NewLocationService(database, locationRepo, locationCache)
	cartService := service.NewCartService(database, cartRepo, variantRepo)
	orderService := service.NewOrderService(database, orderRepo)
	checkoutService := service.NewCheckoutService(
		database,
		cartRepo,
		orderRepo,
		locationRepo,
		userRepo,
		inventoryService,
		locationService,
		estimator,
		notifier,
	)

	// Initialize controllers
	cartController := controller.NewCartController(cartService, checkoutService)
	orderController := controller.NewOrderController(orderService, checkoutService)
	locationController := controller.NewLocationController(locationService)
	adminController := controller.NewAdminController(orderService, inventoryService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		cartController,
		orderController,
		locationController,
		adminController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Background worker, only when the queue is configured
	var workerService *worker.Service
	if queueClient.Enabled() {
		consumer := worker.NewConsumer(orderRepo, userRepo, inventoryService, mailNotifier)
		workerService, err = worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			logger.Fatal("Failed to create worker", err)
		}
		if err := workerService.Start(); err != nil {
			logger.Fatal("Failed to start worker", err)
		}
	}

	lowStockScheduler := scheduler.NewLowStockScheduler(
		cfg.Schedule.LowStockSweep,
		estimator.Rules().LowStockThreshold,
		inventoryService,
		queueClient,
	)
	if err := lowStockScheduler.Start(); err != nil {
		logger.Warn("Low stock scheduler not started", map[string]interface{}{
			"error": err.Error(),
		})
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	lowStockScheduler.Stop()
	if workerService != nil {
		workerService.Stop()
	}

	logger.Info("Server stopped successfully")
}
