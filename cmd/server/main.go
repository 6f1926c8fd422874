package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/turfhub/service-turf/internal/adapter"
	"github.com/turfhub/service-turf/internal/application"
	"github.com/turfhub/service-turf/internal/config"
	turfEvents "github.com/turfhub/service-turf/internal/events"
	"github.com/turfhub/service-turf/internal/handler"
	"github.com/turfhub/service-turf/internal/repository"
	"github.com/turfhub/service-turf/internal/seed"
	"github.com/turfhub/service-turf/pkg/auth"
	"github.com/turfhub/service-turf/pkg/database"
	"github.com/turfhub/service-turf/pkg/health"
	"github.com/turfhub/service-turf/pkg/kafka"
	"github.com/turfhub/service-turf/pkg/logger"
	"github.com/turfhub/service-turf/pkg/middleware"
	"github.com/turfhub/service-turf/pkg/obs"
)

const serviceName = "service-turf"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting service-turf",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
		zap.String("events_driver", cfg.EventsDriver),
	)

	ctx := context.Background()

	// Initialize tracing
	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		zapLogger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}

	db, err := database.Connect(dbConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.VenueModel{}, &repository.UserModel{}, &repository.BookingModel{}); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := dbConfig.DatabaseURL()
		if err := database.RunMigrations(dbURL, "migrations", zapLogger); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTTL)

	// Initialize repositories
	venueRepo := repository.NewGormVenueRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	// Slot lock and catalog cache: Redis when configured, in-process otherwise
	var (
		slotLocker adapter.SlotLocker = adapter.NewLocalSlotLocker(cfg.BookingConfig.SlotLockWait)
		typeCache  adapter.SportTypeCache = adapter.NoopSportTypeCache{}
	)
	if cfg.RedisConfig.Enabled() {
		redisClient, err := adapter.NewRedisClient(ctx, cfg.RedisConfig)
		if err != nil {
			zapLogger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		slotLocker = adapter.NewRedisSlotLocker(redisClient, cfg.BookingConfig.SlotLockTTL, cfg.BookingConfig.SlotLockWait, zapLogger)
		typeCache = adapter.NewRedisSportTypeCache(redisClient, cfg.CatalogCacheTTL, zapLogger)
		zapLogger.Info("redis enabled for slot locks and catalog cache", zap.String("addr", cfg.RedisConfig.Addr))
	}

	// Initialize event publisher
	publisher := newPublisher(cfg, zapLogger)
	defer publisher.Close()

	// Initialize application services
	authService := application.NewAuthService(userRepo, jwtManager, cfg.BcryptCost, zapLogger)
	catalogService := application.NewCatalogService(venueRepo, typeCache, zapLogger)
	availabilityService := application.NewAvailabilityService(venueRepo, bookingRepo, zapLogger)
	bookingService := application.NewBookingService(bookingRepo, venueRepo, userRepo, slotLocker, publisher, zapLogger)

	// Seed catalog and admin account
	if cfg.SeedVenues {
		if _, err := seed.NewVenueSeeder(venueRepo, zapLogger).Run(ctx); err != nil {
			zapLogger.Fatal("failed to seed venues", zap.Error(err))
		}
	}
	if _, err := authService.EnsureAdmin(ctx, cfg.AdminConfig.Email, cfg.AdminConfig.Password); err != nil {
		zapLogger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	// Start Kafka consumer for booking confirmations
	consumerCtx, consumerCancel := context.WithCancel(ctx)
	defer consumerCancel()

	if cfg.BookingConsumerEnabled {
		consumerGroupID := cfg.KafkaConfig.GroupPrefix + "turf-notifier"
		bookingConsumer := turfEvents.NewBookingEventConsumer(
			cfg.KafkaConfig.Brokers,
			consumerGroupID,
			turfEvents.NewLogNotifier(zapLogger),
			zapLogger,
		)
		defer bookingConsumer.Close()

		go func() {
			zapLogger.Info("starting booking event consumer")
			if err := bookingConsumer.Start(consumerCtx); err != nil {
				if consumerCtx.Err() == nil {
					zapLogger.Error("booking event consumer failed", zap.Error(err))
				}
			}
		}()
	}

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register API routes
	api := router.Group("/api")
	handler.NewAuthHandler(authService).RegisterRoutes(api)
	handler.NewUserHandler(authService, bookingService).RegisterRoutes(api, jwtManager)
	handler.NewVenueHandler(catalogService, availabilityService).RegisterRoutes(api)
	handler.NewBookingHandler(bookingService).RegisterRoutes(api, jwtManager)
	handler.NewAdminHandler(catalogService, bookingService).RegisterRoutes(api, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      obs.WrapHandler(router, serviceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down service-turf...")

	// Cancel Kafka consumer
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		zapLogger.Warn("tracer shutdown failed", zap.Error(err))
	}

	zapLogger.Info("service-turf stopped")
}

// newPublisher selects the booking event transport. A broker that cannot be
// reached at startup degrades to no publishing, since events are best effort.
func newPublisher(cfg *config.ServiceConfig, zapLogger *zap.Logger) turfEvents.Publisher {
	switch cfg.EventsDriver {
	case config.EventsDriverKafka:
		zapLogger.Info("publishing booking events to kafka", zap.Strings("brokers", cfg.KafkaConfig.Brokers))
		return turfEvents.NewKafkaPublisher(kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger))
	case config.EventsDriverRabbitMQ:
		p, err := turfEvents.NewAMQPPublisher(cfg.RabbitMQConfig.URL, turfEvents.ExchangeBooking)
		if err != nil {
			zapLogger.Warn("rabbitmq unavailable, booking events disabled", zap.Error(err))
			return turfEvents.NoopPublisher{}
		}
		zapLogger.Info("publishing booking events to rabbitmq", zap.String("exchange", turfEvents.ExchangeBooking))
		return p
	case config.EventsDriverNone, "":
		return turfEvents.NoopPublisher{}
	default:
		zapLogger.Warn("unknown EVENTS_DRIVER, booking events disabled", zap.String("driver", cfg.EventsDriver))
		return turfEvents.NoopPublisher{}
	}
}
