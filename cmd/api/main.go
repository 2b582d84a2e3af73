package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-core/config"
	httpHandler "wallet-core/internal/adapter/http/handler"
	pgStorage "wallet-core/internal/adapter/storage/postgres"
	redisStorage "wallet-core/internal/adapter/storage/redis"
	"wallet-core/internal/core/ports"
	"wallet-core/internal/service"
	"wallet-core/pkg/logger"
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
		Int("port", cfg.Server.Port).
		Msg("Starting Wallet Core")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	reservedIDRepo := pgStorage.NewReservedIDRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	feeRuleRepo := pgStorage.NewFeeRuleRepo(pool)
	suspRepo := pgStorage.NewSuspiciousActivityRepo(pool)
	rateRepo := pgStorage.NewExchangeRateRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	transferCache := redisStorage.NewTransferCache(rdb)

	// Initialize business services
	allocator := service.NewAllocator(reservedIDRepo, cfg.Allocator, log)
	auditSink := service.NewAuditSink(auditRepo, log)
	feeSvc := service.NewFeeService(feeRuleRepo, log)
	fraudSvc := service.NewFraudService(ledgerRepo, suspRepo, cfg.Fraud, log)
	walletSvc := service.NewWalletService(walletRepo, ledgerRepo, allocator, transactor, auditSink, log)
	ledgerSvc := service.NewLedgerService(
		walletRepo,
		ledgerRepo,
		feeSvc,
		fraudSvc,
		walletSvc,
		allocator,
		transferCache,
		transactor,
		auditSink,
		cfg.Ledger,
		log,
	)
	fxSvc := service.NewFXService(rateRepo, log)
	reportingSvc := service.NewReportingService(walletRepo, ledgerRepo, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:      walletSvc,
		LedgerSvc:      ledgerSvc,
		FXSvc:          fxSvc,
		ReportingSvc:   reportingSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
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
