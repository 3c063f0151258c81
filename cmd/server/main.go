package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/ayodeji-m/kobowallet/internal/adapter/http"
	"github.com/ayodeji-m/kobowallet/internal/adapter/http/handler"
	"github.com/ayodeji-m/kobowallet/internal/adapter/http/middleware"
	postgresRepo "github.com/ayodeji-m/kobowallet/internal/adapter/repository/postgres"
	redisRepo "github.com/ayodeji-m/kobowallet/internal/adapter/repository/redis"
	"github.com/ayodeji-m/kobowallet/internal/infrastructure/auth"
	"github.com/ayodeji-m/kobowallet/internal/infrastructure/config"
	"github.com/ayodeji-m/kobowallet/internal/infrastructure/eventpublisher"
	"github.com/ayodeji-m/kobowallet/internal/infrastructure/logger"
	"github.com/ayodeji-m/kobowallet/internal/infrastructure/metrics"
	"github.com/ayodeji-m/kobowallet/internal/infrastructure/notifier"
	"github.com/ayodeji-m/kobowallet/internal/infrastructure/postgres"
	"github.com/ayodeji-m/kobowallet/internal/infrastructure/redis"
	"github.com/ayodeji-m/kobowallet/internal/usecase"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Run database migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Event publisher: Kafka when brokers are configured, log otherwise
	var publisher usecase.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("publishing events to kafka")
	} else {
		publisher = eventpublisher.NewLogPublisher(appLogger)
	}

	// OTP notifier: webhook when configured, log otherwise
	var otpNotifier usecase.Notifier
	if cfg.NotifierWebhookURL != "" {
		otpNotifier = notifier.NewWebhookNotifier(cfg.NotifierWebhookURL)
	} else {
		otpNotifier = notifier.NewLogNotifier(appLogger)
	}

	// Initialize repositories
	walletStore := postgresRepo.NewWalletStore(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	recoveryRepo := postgresRepo.NewRecoveryRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()

	appMetrics := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize use cases
	transferUC := usecase.NewTransferUseCase(walletStore, recoveryRepo, publisher, retrier, idGen, appMetrics, appLogger)
	walletUC := usecase.NewWalletUseCase(walletStore, userRepo, appMetrics, cfg.DialingPrefix, appLogger)
	userUC := usecase.NewUserUseCase(userRepo, otpNotifier, idGen, appLogger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	walletHandler := handler.NewWalletHandler(walletUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      authHandler,
		WalletHandler:    walletHandler,
		TransferHandler:  transferHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:           appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
