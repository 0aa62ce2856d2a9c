package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coinwall/config"
	httpHandler "coinwall/internal/adapter/http/handler"
	memStorage "coinwall/internal/adapter/storage/memory"
	pgStorage "coinwall/internal/adapter/storage/postgres"
	redisStorage "coinwall/internal/adapter/storage/redis"
	"coinwall/internal/adapter/stream"
	"coinwall/internal/core/ports"
	"coinwall/internal/service"
	"coinwall/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("store", cfg.Store.Backend).
		Int("port", cfg.Server.Port).
		Msg("Starting coinwall")

	ctx := context.Background()

	var (
		walletRepo     ports.WalletRepository
		ledgerRepo     ports.LedgerRepository
		postRepo       ports.PostRepository
		transactor     ports.DBTransactor
		feedCache      ports.FeedCache
		rateLimitStore *redisStorage.RateLimitStore
		healthCheckers []ports.HealthChecker
	)

	switch cfg.Store.Backend {
	case "memory":
		// Self-contained mode: no PostgreSQL, no Redis.
		walletRepo = memStorage.NewWalletRepo()
		ledgerRepo = memStorage.NewLedgerRepo()
		postRepo = memStorage.NewPostRepo()
		transactor = memStorage.NewTransactor()
		log.Warn().Msg("using in-memory store, data will not survive a restart")

	default:
		if err := pgStorage.Migrate(cfg.Database.DSN(), log); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database schema")
		}

		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		walletRepo = pgStorage.NewWalletRepo(pool)
		ledgerRepo = pgStorage.NewLedgerRepo(pool)
		postRepo = pgStorage.NewPostRepo(pool)
		transactor = pgStorage.NewTransactor(pool)
		feedCache = redisStorage.NewFeedCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
		}
	}

	// Live wall broadcast
	hub := stream.NewHub(cfg.Wall.SubscriberBuffer, log)
	defer hub.Close()

	// Business services
	addrSvc := service.NewAddressService()
	walletSvc := service.NewWalletService(
		walletRepo,
		ledgerRepo,
		transactor,
		addrSvc,
		cfg.Wallet.MinMnemonicWords,
		cfg.Wallet.StartingBalance,
		log,
	)
	wallSvc := service.NewWallService(
		postRepo,
		feedCache,
		hub,
		cfg.Wall.FeedLimit,
		cfg.Wall.CacheTTL,
		log,
	)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:      walletSvc,
		WallSvc:        wallSvc,
		Hub:            hub,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
