package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"stockfolio/configs"
	"stockfolio/internal/adapter"
	"stockfolio/internal/database"
	delivery "stockfolio/internal/delivery/http"
	"stockfolio/internal/infra"
	"stockfolio/internal/repository"
	"stockfolio/internal/service"
	"stockfolio/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	// Initialize context
	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// Initialize quote gateway
	quoteSvc := adapter.NewQuoteGateway(cfg.Quote.URL, cfg.Quote.APIKey)

	// Initialize services
	accountSvc := service.NewAccountService(userRepo, cfg.Account.StartingCash)
	portfolioSvc := service.NewPortfolioService(ledgerRepo, userRepo, quoteSvc, cfg.Account.IncludeZeroPositions)
	auditSvc := service.NewAuditService(userRepo, ledgerRepo)
	tradingSvc := usecase.NewTradingService(ledgerRepo, quoteSvc, portfolioSvc)

	// Schedule the periodic ledger audit
	scheduler := infra.NewScheduler(auditSvc, cfg.Audit.Schedule)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start audit scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize HTTP router
	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:      delivery.NewAuthHandler(accountSvc, userRepo),
		PortfolioHandler: delivery.NewPortfolioHandler(portfolioSvc, userRepo, quoteSvc),
		TradeHandler:     delivery.NewTradeHandler(tradingSvc),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Stockfolio starting on %s", addr)
	log.Printf("Environment: %s", cfg.Server.Env)
	log.Printf("Starting balance for new accounts: $%s", cfg.Account.StartingCash.StringFixed(2))

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}
