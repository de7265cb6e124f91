package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classpulse/backend/internal/adapters/cache"
	"github.com/classpulse/backend/internal/adapters/database"
	"github.com/classpulse/backend/internal/adapters/security"
	"github.com/classpulse/backend/internal/api/handlers"
	"github.com/classpulse/backend/internal/api/routes"
	"github.com/classpulse/backend/internal/application/services"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/infrastructure/clients/mongo"
	"github.com/classpulse/backend/internal/infrastructure/clients/redis"
	"github.com/classpulse/backend/internal/infrastructure/observability"
	"github.com/classpulse/backend/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize document store
	mongoClient, err := mongo.NewClient(ctx, &cfg.Mongo, metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	if err := mongoClient.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create MongoDB indexes")
	}

	// Initialize adapters
	var userRepo repositories.UserRepository = database.NewUserAdapter(mongoClient)
	feedbackRepo := database.NewFeedbackAdapter(mongoClient)
	reviewRepo := database.NewReviewAdapter(mongoClient)
	messageRepo := database.NewMessageAdapter(mongoClient)

	// Optional user cache
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without user cache")
		} else {
			userRepo = database.NewCachedUserAdapter(userRepo, cache.NewRedisAdapter(redisClient), cfg.Redis.UserCacheTTL, metrics)
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("User cache enabled")
		}
	}

	// Initialize services
	userService := services.NewUserService(userRepo, security.NewBcryptHasher(cfg.Security.BcryptCost))
	feedbackService := services.NewFeedbackService(feedbackRepo, userRepo, metrics)
	reviewService := services.NewReviewService(reviewRepo, userRepo)
	messageService := services.NewMessageService(messageRepo, userRepo)

	// Initialize handlers
	router := routes.NewRouter(
		handlers.NewSystemHandler(mongoClient),
		handlers.NewAuthHandler(userService),
		handlers.NewFeedbackHandler(feedbackService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewMessageHandler(messageService),
		metrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Redis")
		}
	}
	if err := mongoClient.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error closing MongoDB")
	}

	log.Info().Msg("Server stopped")
}
