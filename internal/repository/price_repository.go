package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tradediary/internal/apperrors"
	"tradediary/internal/model"
)

// PriceRepository provides data access methods for the stock_price table.
// The table holds one row per ticker: the latest known quote.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetPrices retrieves all stored quotes sorted by ticker.
func (s *PriceRepository) GetPrices() ([]model.StockPrice, error) {
	query := `
		SELECT id, ticker, price, updated_at
		FROM stock_price
		ORDER BY ticker ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_price table: %w", err)
	}
	defer rows.Close()

	prices := []model.StockPrice{}
	for rows.Next() {
		var p model.StockPrice
		var updatedAtStr string

		err := rows.Scan(&p.ID, &p.Ticker, &p.Price, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock_price table results: %w", err)
		}
		p.UpdatedAt, err = ParseTime(updatedAtStr)
		if err != nil {
			return nil, err
		}

		prices = append(prices, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_price table: %w", err)
	}

	return prices, nil
}

// GetQuoteMap returns a ticker -> price map of all stored quotes, the shape
// the FIFO engine consumes.
func (s *PriceRepository) GetQuoteMap() (map[string]float64, error) {
	prices, err := s.GetPrices()
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]float64, len(prices))
	for _, p := range prices {
		quotes[p.Ticker] = p.Price
	}
	return quotes, nil
}

// GetPrice retrieves the stored quote for one ticker.
func (s *PriceRepository) GetPrice(ticker string) (model.StockPrice, error) {
	query := `
		SELECT id, ticker, price, updated_at
		FROM stock_price
		WHERE ticker = ?
	`

	var p model.StockPrice
	var updatedAtStr string

	err := s.db.QueryRow(query, ticker).Scan(&p.ID, &p.Ticker, &p.Price, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.StockPrice{}, apperrors.ErrPriceNotFound
	}
	if err != nil {
		return model.StockPrice{}, fmt.Errorf("failed to scan stock_price table results: %w", err)
	}
	p.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.StockPrice{}, err
	}

	return p, nil
}

// UpsertPrice stores the quote for a ticker, replacing any previous value.
func (s *PriceRepository) UpsertPrice(ctx context.Context, p *model.StockPrice) error {
	query := `
		INSERT INTO stock_price (id, ticker, price, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET price = excluded.price, updated_at = excluded.updated_at
	`

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, query, p.ID, p.Ticker, p.Price, Timestamp(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert stock price: %w", err)
	}
	return nil
}
