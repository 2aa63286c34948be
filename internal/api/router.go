package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tradediary/internal/api/handlers"
	custommiddleware "tradediary/internal/api/middleware"
	"tradediary/internal/config"
	"tradediary/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System     *service.SystemService
	Auth       *service.AuthService
	Portfolio  *service.PortfolioService
	Trade      *service.TradeService
	Analytics  *service.AnalyticsService
	Spot       *service.SpotService
	RateChange *service.RateChangeService
	Price      *service.PriceService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// Mutations require a login token; reads stay open. The middleware is a
	// no-op when no auth key is configured.
	requireToken := custommiddleware.RequireToken(svc.Auth)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svc.Auth)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/", portfolioHandler.Portfolios)
			r.With(requireToken).Post("/", portfolioHandler.CreatePortfolio)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.With(requireToken).Put("/", portfolioHandler.UpdatePortfolio)
				r.With(requireToken).Delete("/", portfolioHandler.DeletePortfolio)
			})
		})

		r.Route("/trade", func(r chi.Router) {
			tradeHandler := handlers.NewTradeHandler(svc.Trade, svc.Analytics)
			r.Get("/", tradeHandler.Trades)
			r.With(requireToken).Post("/", tradeHandler.CreateTrade)
			r.With(requireToken).Post("/import", tradeHandler.ImportTrades)

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/summary", tradeHandler.AnalyticsSummary)
				r.Get("/rates-impact", tradeHandler.RatesImpact)
				r.Get("/monthly", tradeHandler.MonthlyAnalytics)
				r.Get("/symbols", tradeHandler.SymbolAnalytics)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", tradeHandler.GetTrade)
				r.Get("/interest", tradeHandler.TradeInterest)
				r.Get("/interest/daily", tradeHandler.DailyInterest)
				r.With(requireToken).Put("/", tradeHandler.UpdateTrade)
				r.With(requireToken).Delete("/", tradeHandler.DeleteTrade)
				r.With(requireToken).Post("/close", tradeHandler.CloseTrade)
			})
		})

		r.Route("/spot", func(r chi.Router) {
			spotHandler := handlers.NewSpotHandler(svc.Spot)
			r.Get("/", spotHandler.Transactions)
			r.With(requireToken).Post("/", spotHandler.CreateTransaction)

			r.Get("/positions", spotHandler.Positions)
			r.Get("/sales", spotHandler.Sales)
			r.Get("/cash", spotHandler.Cash)
			r.Get("/statistics", spotHandler.Statistics)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", spotHandler.GetTransaction)
				r.With(requireToken).Put("/", spotHandler.UpdateTransaction)
				r.With(requireToken).Delete("/", spotHandler.DeleteTransaction)
			})
		})

		r.Route("/rates", func(r chi.Router) {
			rateChangeHandler := handlers.NewRateChangeHandler(svc.RateChange)
			r.Get("/", rateChangeHandler.RateChanges)
			r.With(requireToken).Post("/", rateChangeHandler.CreateRateChange)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", rateChangeHandler.GetRateChange)
				r.With(requireToken).Delete("/", rateChangeHandler.DeleteRateChange)
			})
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svc.Price)
			r.Get("/", priceHandler.Prices)
			r.With(requireToken).Post("/refresh", priceHandler.RefreshPrices)
			r.Get("/{ticker}", priceHandler.GetPrice)
			r.With(requireToken).Put("/{ticker}", priceHandler.UpsertPrice)
		})
	})

	return r
}
