package handler

import (
	"wallet-core/internal/adapter/http/middleware"
	"wallet-core/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	LedgerSvc      ports.LedgerService
	FXSvc          ports.FXService
	ReportingSvc   ports.ReportingService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.WalletSvc)
	ledgerHandler := NewLedgerHandler(deps.LedgerSvc)
	reportingHandler := NewReportingHandler(deps.ReportingSvc)
	fxHandler := NewFXHandler(deps.FXSvc)

	wallets := v1.Group("/wallets")
	{
		wallets.POST("", walletHandler.Ensure)
		wallets.GET("/:id", walletHandler.Get)
		wallets.PATCH("/:id/status", walletHandler.SetStatus)
		wallets.POST("/:id/deposit", ledgerHandler.Deposit)
		wallets.POST("/:id/withdraw", ledgerHandler.Withdraw)
		wallets.GET("/:id/entries", reportingHandler.ListEntries)
	}

	v1.POST("/transfers", ledgerHandler.Transfer)

	owners := v1.Group("/owners")
	{
		owners.GET("/:id/stats", reportingHandler.OwnerStats)
	}

	fx := v1.Group("/fx")
	{
		fx.POST("/convert", fxHandler.Convert)
	}

	return r
}
