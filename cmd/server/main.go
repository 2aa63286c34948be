package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradediary/internal/api"
	"tradediary/internal/config"
	"tradediary/internal/database"
	"tradediary/internal/jobs"
	"tradediary/internal/quotes"
	"tradediary/internal/repository"
	"tradediary/internal/scheduler"
	"tradediary/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and run migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	spotRepo := repository.NewSpotRepository(db)
	rateChangeRepo := repository.NewRateChangeRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	// Quote feed client (nil when no feed is configured)
	var quoteClient quotes.Client
	if cfg.Quotes.BaseURL != "" {
		quoteClient = quotes.NewFeedClient(cfg.Quotes.BaseURL)
	}

	// Create services
	systemService := service.NewSystemService(db)
	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	portfolioService := service.NewPortfolioService(portfolioRepo)
	rateChangeService := service.NewRateChangeService(rateChangeRepo)
	tradeService := service.NewTradeService(tradeRepo, rateChangeService)
	analyticsService := service.NewAnalyticsService(tradeRepo, rateChangeService)
	spotService := service.NewSpotService(spotRepo, priceRepo)
	priceService := service.NewPriceService(priceRepo, spotRepo, quoteClient)

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Auth:       authService,
		Portfolio:  portfolioService,
		Trade:      tradeService,
		Analytics:  analyticsService,
		Spot:       spotService,
		RateChange: rateChangeService,
		Price:      priceService,
	}, cfg)

	// Scheduled quote refresh, only when a feed is configured
	sched := scheduler.New()
	if quoteClient != nil {
		if err := sched.AddJob(cfg.Quotes.Schedule, jobs.NewPriceRefreshJob(priceService)); err != nil {
			log.Fatalf("Failed to schedule price refresh: %v", err)
		}
	}
	sched.Start()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sched.Stop()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
