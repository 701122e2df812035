package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	nrecho "github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/numpang/numpang/internal/pkg/config"
	"github.com/numpang/numpang/internal/pkg/database"
	"github.com/numpang/numpang/internal/pkg/health"
	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/internal/pkg/middleware"
	natspkg "github.com/numpang/numpang/internal/pkg/nats"
	nrpkg "github.com/numpang/numpang/internal/pkg/newrelic"
	"github.com/numpang/numpang/internal/pkg/server"
	bookingGateway "github.com/numpang/numpang/services/bookings/gateway"
	bookingHandler "github.com/numpang/numpang/services/bookings/handler"
	"github.com/numpang/numpang/services/bookings/inventory"
	bookingRepository "github.com/numpang/numpang/services/bookings/repository"
	bookingUsecase "github.com/numpang/numpang/services/bookings/usecase"
	notificationHandler "github.com/numpang/numpang/services/notifications/handler"
	notificationRepository "github.com/numpang/numpang/services/notifications/repository"
	notificationUsecase "github.com/numpang/numpang/services/notifications/usecase"
	rideHandler "github.com/numpang/numpang/services/rides/handler"
	rideRepository "github.com/numpang/numpang/services/rides/repository"
	rideUsecase "github.com/numpang/numpang/services/rides/usecase"
	"go.uber.org/zap"
)

func main() {
	appName := "numpang"
	configPath := os.Getenv("CONFIG_PATH")
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}

	// Repositories
	rideRepo := rideRepository.NewRideRepository(configs, postgresClient.GetDB())
	bookingRepo := bookingRepository.NewBookingRepository(configs, postgresClient.GetDB())
	notificationRepo := notificationRepository.NewNotificationRepo(configs, redisClient)

	// Seat inventory manager; its hold sweep runs for the life of the process
	holdTTL := time.Duration(configs.Booking.HoldTTLSeconds) * time.Second
	sweepInterval := time.Duration(configs.Booking.SweepIntervalSeconds) * time.Second
	seatManager := inventory.NewManager(rideRepo, holdTTL)

	// Rebuild the token table from open bookings before serving traffic;
	// seat counters are durable but their guarding tokens are not
	if err := bookingUsecase.RecoverInventory(context.Background(), bookingRepo, seatManager, holdTTL); err != nil {
		zapLogger.Fatal("Failed to recover seat inventory from ledger", zap.Error(err))
	}
	seatManager.StartSweep(sweepInterval)

	// Departed rides drop out of search on the retire sweep
	retireSweeper := rideUsecase.NewRetireSweeper(rideRepo)
	retireSweeper.Start(time.Duration(configs.Search.RetireIntervalSeconds) * time.Second)

	// Gateways
	bookingGW := bookingGateway.NewBookingGW(natsClient)

	// Use cases
	rideUC := rideUsecase.NewRideUC(configs, rideRepo)
	bookingUC := bookingUsecase.NewBookingUC(configs, bookingRepo, rideRepo, seatManager, bookingGW)
	notificationUC := notificationUsecase.NewNotificationUC(configs, notificationRepo)

	// Handlers
	ridesHandler := rideHandler.NewHandler(rideUC, configs)
	bookingsHandler := bookingHandler.NewHandler(bookingUC, configs)
	notificationsHandler := notificationHandler.NewHandler(notificationUC, natsClient, configs, nrApp)

	if err := notificationsHandler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", zap.Error(err))
	}

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Health endpoints
	healthService := health.NewHealthService()
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Service routes
	ridesHandler.RegisterRoutes(e)
	bookingsHandler.RegisterRoutes(e)
	notificationsHandler.RegisterRoutes(e)

	// Register cleanup, most-dependent components first
	shutdownManager := server.NewShutdownManager(zapLogger)
	shutdownManager.Register("seat-inventory", func(ctx context.Context) error {
		seatManager.StopSweep()
		return nil
	})
	shutdownManager.Register("ride-retire", func(ctx context.Context) error {
		retireSweeper.Stop()
		return nil
	})
	shutdownManager.Register("nats", func(ctx context.Context) error {
		notificationsHandler.Close()
		natsClient.Close()
		return nil
	})
	shutdownManager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})
	shutdownManager.Register("postgres", func(ctx context.Context) error {
		return postgresClient.Close()
	})

	gracefulServer := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := gracefulServer.Start(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdownManager.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Component shutdown failed", zap.Error(err))
	}
}
