package testutil

import (
	"database/sql"
	"testing"
	"time"

	"tradediary/internal/model"
	"tradediary/internal/repository"
)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Margin Book").
//	    Archived().
//	    Build(t, db)
type PortfolioBuilder struct {
	ID          string
	Name        string
	Description string
	Currency    string
	IsArchived  bool
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		Name:        "Test Portfolio",
		Description: "Test description",
		Currency:    "RUB",
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// Archived marks the portfolio as archived.
func (b *PortfolioBuilder) Archived() *PortfolioBuilder {
	b.IsArchived = true
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, name, description, currency, is_archived)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, b.ID, b.Name, b.Description, b.Currency, b.IsArchived); err != nil {
		t.Fatalf("Failed to insert test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Currency:    b.Currency,
		IsArchived:  b.IsArchived,
	}
}

// TradeBuilder provides a fluent interface for creating test margin trades.
type TradeBuilder struct {
	ID          string
	PortfolioID string
	Symbol      string
	EntryDate   time.Time
	EntryPrice  float64
	Quantity    float64
	MarginRate  float64
	ExitDate    *time.Time
	ExitPrice   *float64
	Notes       string
	CreatedAt   time.Time
}

// NewTrade creates a TradeBuilder with sensible defaults: 100 shares at 1000
// on a 20 percent margin rate, open.
func NewTrade(portfolioID string) *TradeBuilder {
	return &TradeBuilder{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Symbol:      "SBER",
		EntryDate:   Date(2024, 1, 1),
		EntryPrice:  1000,
		Quantity:    100,
		MarginRate:  20,
		CreatedAt:   time.Now().UTC(),
	}
}

// WithSymbol sets a custom symbol.
func (b *TradeBuilder) WithSymbol(symbol string) *TradeBuilder {
	b.Symbol = symbol
	return b
}

// WithEntry sets the entry date and price.
func (b *TradeBuilder) WithEntry(date time.Time, price float64) *TradeBuilder {
	b.EntryDate = date
	b.EntryPrice = price
	return b
}

// WithQuantity sets a custom quantity.
func (b *TradeBuilder) WithQuantity(quantity float64) *TradeBuilder {
	b.Quantity = quantity
	return b
}

// WithMarginRate sets a custom annual margin rate percent.
func (b *TradeBuilder) WithMarginRate(rate float64) *TradeBuilder {
	b.MarginRate = rate
	return b
}

// Closed stamps the exit date and price, making the trade closed.
func (b *TradeBuilder) Closed(date time.Time, price float64) *TradeBuilder {
	b.ExitDate = &date
	b.ExitPrice = &price
	return b
}

// Build creates the trade in the database and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	query := `
		INSERT INTO trade (id, portfolio_id, symbol, entry_date, entry_price,
		                   quantity, margin_rate, exit_date, exit_price, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var exitDate any
	if b.ExitDate != nil {
		exitDate = b.ExitDate.Format("2006-01-02")
	}

	_, err := db.Exec(query,
		b.ID, b.PortfolioID, b.Symbol, b.EntryDate.Format("2006-01-02"),
		b.EntryPrice, b.Quantity, b.MarginRate, exitDate, b.ExitPrice, b.Notes,
		repository.Timestamp(b.CreatedAt),
	)
	if err != nil {
		t.Fatalf("Failed to insert test trade: %v", err)
	}

	return model.Trade{
		ID:          b.ID,
		PortfolioID: b.PortfolioID,
		Symbol:      b.Symbol,
		EntryDate:   b.EntryDate,
		EntryPrice:  b.EntryPrice,
		Quantity:    b.Quantity,
		MarginRate:  b.MarginRate,
		ExitDate:    b.ExitDate,
		ExitPrice:   b.ExitPrice,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
	}
}

// SpotTransactionBuilder provides a fluent interface for creating test spot
// transactions.
type SpotTransactionBuilder struct {
	ID          string
	PortfolioID string
	Ticker      string
	Company     string
	Type        string
	Date        time.Time
	Price       float64
	Quantity    float64
	CreatedAt   time.Time
}

// NewSpotTransaction creates a builder for a BUY of 100 shares at 10.
func NewSpotTransaction(portfolioID string) *SpotTransactionBuilder {
	return &SpotTransactionBuilder{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Ticker:      "GAZP",
		Type:        "BUY",
		Date:        Date(2024, 1, 1),
		Price:       10,
		Quantity:    100,
		CreatedAt:   time.Now().UTC(),
	}
}

// WithTicker sets a custom ticker.
func (b *SpotTransactionBuilder) WithTicker(ticker string) *SpotTransactionBuilder {
	b.Ticker = ticker
	return b
}

// WithType sets a custom transaction type.
func (b *SpotTransactionBuilder) WithType(txType string) *SpotTransactionBuilder {
	b.Type = txType
	return b
}

// On sets the transaction date.
func (b *SpotTransactionBuilder) On(date time.Time) *SpotTransactionBuilder {
	b.Date = date
	return b
}

// At sets the price and quantity.
func (b *SpotTransactionBuilder) At(price, quantity float64) *SpotTransactionBuilder {
	b.Price = price
	b.Quantity = quantity
	return b
}

// Build creates the transaction in the database and returns it.
func (b *SpotTransactionBuilder) Build(t *testing.T, db *sql.DB) model.SpotTransaction {
	t.Helper()

	query := `
		INSERT INTO spot_transaction (id, portfolio_id, ticker, company, type, date, price, quantity, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, '', ?)
	`
	_, err := db.Exec(query,
		b.ID, b.PortfolioID, b.Ticker, b.Company, b.Type,
		b.Date.Format("2006-01-02"), b.Price, b.Quantity,
		repository.Timestamp(b.CreatedAt),
	)
	if err != nil {
		t.Fatalf("Failed to insert test spot transaction: %v", err)
	}

	return model.SpotTransaction{
		ID:          b.ID,
		PortfolioID: b.PortfolioID,
		Ticker:      b.Ticker,
		Company:     b.Company,
		Type:        b.Type,
		Date:        b.Date,
		Price:       b.Price,
		Quantity:    b.Quantity,
		CreatedAt:   b.CreatedAt,
	}
}

// InsertRateChange inserts a rate event directly. createdAt drives the
// tie-break between events sharing an effective date.
func InsertRateChange(t *testing.T, db *sql.DB, effectiveDate time.Time, rate float64, createdAt time.Time) model.RateChange {
	t.Helper()

	change := model.RateChange{
		ID:            MakeID(),
		EffectiveDate: effectiveDate,
		Rate:          rate,
		CreatedAt:     createdAt,
	}
	query := `
		INSERT INTO rate_change (id, effective_date, rate, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := db.Exec(query, change.ID, effectiveDate.Format("2006-01-02"), rate, repository.Timestamp(createdAt))
	if err != nil {
		t.Fatalf("Failed to insert test rate change: %v", err)
	}
	return change
}

// InsertStockPrice inserts a stored quote directly.
func InsertStockPrice(t *testing.T, db *sql.DB, ticker string, price float64) model.StockPrice {
	t.Helper()

	record := model.StockPrice{
		ID:        MakeID(),
		Ticker:    ticker,
		Price:     price,
		UpdatedAt: time.Now().UTC(),
	}
	query := `
		INSERT INTO stock_price (id, ticker, price, updated_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := db.Exec(query, record.ID, record.Ticker, record.Price, repository.Timestamp(record.UpdatedAt))
	if err != nil {
		t.Fatalf("Failed to insert test stock price: %v", err)
	}
	return record
}

// Date builds a UTC midnight date, the shape every date column stores.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
