package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"tradediary/internal/quotes"
	"tradediary/internal/repository"
	"tradediary/internal/service"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(repository.NewPortfolioRepository(db))
}

func NewTestRateChangeService(t *testing.T, db *sql.DB) *service.RateChangeService {
	t.Helper()

	return service.NewRateChangeService(repository.NewRateChangeRepository(db))
}

func NewTestTradeService(t *testing.T, db *sql.DB) *service.TradeService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)
	return service.NewTradeService(tradeRepo, NewTestRateChangeService(t, db))
}

func NewTestAnalyticsService(t *testing.T, db *sql.DB) *service.AnalyticsService {
	t.Helper()

	tradeRepo := repository.NewTradeRepository(db)
	return service.NewAnalyticsService(tradeRepo, NewTestRateChangeService(t, db))
}

func NewTestSpotService(t *testing.T, db *sql.DB) *service.SpotService {
	t.Helper()

	return service.NewSpotService(
		repository.NewSpotRepository(db),
		repository.NewPriceRepository(db),
	)
}

func NewTestPriceService(t *testing.T, db *sql.DB, client *QuoteClientMock) *service.PriceService {
	t.Helper()

	// Avoid handing the service a typed-nil interface value.
	var feed quotes.Client
	if client != nil {
		feed = client
	}
	return service.NewPriceService(
		repository.NewPriceRepository(db),
		repository.NewSpotRepository(db),
		feed,
	)
}

// QuoteClientMock serves canned quotes for testing the refresh flow.
// A ticker missing from Quotes yields an error, like a feed miss would.
type QuoteClientMock struct {
	Quotes map[string]float64
}

// GetQuote implements quotes.Client.
func (m *QuoteClientMock) GetQuote(_ context.Context, ticker string) (float64, error) {
	price, ok := m.Quotes[ticker]
	if !ok {
		return 0, fmt.Errorf("no quote for %s", ticker)
	}
	return price, nil
}
