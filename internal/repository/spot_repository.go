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

// SpotRepository provides data access methods for the spot_transaction table.
type SpotRepository struct {
	db *sql.DB
}

// NewSpotRepository creates a new SpotRepository with the provided database connection.
func NewSpotRepository(db *sql.DB) *SpotRepository {
	return &SpotRepository{db: db}
}

const spotColumns = `
	id, portfolio_id, ticker, company, type, date, price, quantity, note, created_at
`

// GetTransactions retrieves spot transactions for a portfolio, optionally
// filtered by ticker and/or type, sorted by date ascending with insertion
// order preserved on equal dates.
func (s *SpotRepository) GetTransactions(portfolioID, ticker, txType string) ([]model.SpotTransaction, error) {
	query := "SELECT " + spotColumns + " FROM spot_transaction WHERE 1=1"
	var args []any

	if portfolioID != "" {
		query += " AND portfolio_id = ?"
		args = append(args, portfolioID)
	}
	if ticker != "" {
		query += " AND ticker = ?"
		args = append(args, ticker)
	}
	if txType != "" {
		query += " AND type = ?"
		args = append(args, txType)
	}
	query += " ORDER BY date ASC, created_at ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query spot_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.SpotTransaction{}
	for rows.Next() {
		t, err := scanSpotTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spot_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTickers returns the distinct tickers appearing in BUY/SELL transactions.
// Used to decide which quotes the refresh job should fetch.
func (s *SpotRepository) GetTickers() ([]string, error) {
	query := `
		SELECT DISTINCT ticker
		FROM spot_transaction
		WHERE type IN ('BUY', 'SELL')
		ORDER BY ticker ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query spot_transaction tickers: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, ticker)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickers: %w", err)
	}

	return tickers, nil
}

// GetTransaction retrieves a single spot transaction by ID.
func (s *SpotRepository) GetTransaction(transactionID string) (model.SpotTransaction, error) {
	query := "SELECT " + spotColumns + " FROM spot_transaction WHERE id = ?"

	t, err := scanSpotTransaction(s.db.QueryRow(query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.SpotTransaction{}, apperrors.ErrTransactionNotFound
	}
	return t, err
}

// InsertTransaction creates a new spot transaction record.
func (s *SpotRepository) InsertTransaction(ctx context.Context, t *model.SpotTransaction) error {
	query := `
		INSERT INTO spot_transaction (id, portfolio_id, ticker, company, type, date, price, quantity, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.PortfolioID, t.Ticker, t.Company, t.Type,
		t.Date.Format("2006-01-02"), t.Price, t.Quantity, t.Note,
		Timestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert spot transaction: %w", err)
	}
	return nil
}

// UpdateTransaction updates the mutable fields of a spot transaction.
func (s *SpotRepository) UpdateTransaction(ctx context.Context, t *model.SpotTransaction) error {
	query := `
		UPDATE spot_transaction
		SET ticker = ?, company = ?, type = ?, date = ?, price = ?, quantity = ?, note = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		t.Ticker, t.Company, t.Type, t.Date.Format("2006-01-02"),
		t.Price, t.Quantity, t.Note, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update spot transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a spot transaction.
func (s *SpotRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM spot_transaction WHERE id = ?", transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete spot transaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func scanSpotTransaction(row rowScanner) (model.SpotTransaction, error) {
	var t model.SpotTransaction
	var dateStr, createdAtStr string
	var company, note sql.NullString

	err := row.Scan(
		&t.ID,
		&t.PortfolioID,
		&t.Ticker,
		&company,
		&t.Type,
		&dateStr,
		&t.Price,
		&t.Quantity,
		&note,
		&createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SpotTransaction{}, err
		}
		return model.SpotTransaction{}, fmt.Errorf("failed to scan spot_transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.SpotTransaction{}, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.SpotTransaction{}, err
	}
	t.Company = company.String
	t.Note = note.String

	return t, nil
}
