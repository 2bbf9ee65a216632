package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/drivelane/rental-backend/internal/adapters/cache"
	"github.com/drivelane/rental-backend/internal/adapters/database"
	"github.com/drivelane/rental-backend/internal/adapters/events"
	hashprovider "github.com/drivelane/rental-backend/internal/adapters/providers"
	"github.com/drivelane/rental-backend/internal/api/handlers"
	"github.com/drivelane/rental-backend/internal/api/routes"
	"github.com/drivelane/rental-backend/internal/application/services"
	"github.com/drivelane/rental-backend/internal/domain/providers"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	"github.com/drivelane/rental-backend/internal/infrastructure/clients/postgres"
	"github.com/drivelane/rental-backend/internal/infrastructure/clients/redis"
	"github.com/drivelane/rental-backend/internal/infrastructure/observability"
	"github.com/drivelane/rental-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client; the application works without caching or
	// event publishing when Redis is unavailable
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize adapters
	var vehicleRepo repositories.VehicleRepository = database.NewVehicleAdapter(pgClient)
	if cacheProvider != nil {
		vehicleRepo = database.NewCachedVehicleAdapter(vehicleRepo, cacheProvider)
	}
	userRepo := database.NewUserAdapter(pgClient)
	reserveRepo := database.NewReserveAdapter(pgClient)

	// Initialize services
	vehicleService := services.NewVehicleService(vehicleRepo)
	userService := services.NewUserService(userRepo, hashprovider.NewBcryptHashProvider())
	reserveService := services.NewReserveService(reserveRepo, vehicleRepo, userRepo, eventBus)

	// Initialize handlers and routes
	router := routes.NewRouter(
		handlers.NewVehicleHandler(vehicleService),
		handlers.NewUserHandler(userService),
		handlers.NewReserveHandler(reserveService),
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}
}
