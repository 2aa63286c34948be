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

// TradeRepository provides data access methods for the trade and
// trade_closure tables.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

const tradeColumns = `
	id, portfolio_id, symbol, entry_date, entry_price, quantity,
	margin_rate, exit_date, exit_price, notes, created_at
`

// GetTrades retrieves trades for a portfolio, or all trades if portfolioID is
// empty, sorted by entry date ascending. Closures are attached to each trade.
func (s *TradeRepository) GetTrades(portfolioID string) ([]model.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trade"
	var args []any

	if portfolioID != "" {
		query += " WHERE portfolio_id = ?"
		args = append(args, portfolioID)
	}
	query += " ORDER BY entry_date ASC, created_at ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	for i := range trades {
		closures, err := s.getClosures(trades[i].ID)
		if err != nil {
			return nil, err
		}
		trades[i].Closures = closures
	}

	return trades, nil
}

// GetTrade retrieves a single trade by ID, including its closures.
func (s *TradeRepository) GetTrade(tradeID string) (model.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trade WHERE id = ?"

	row := s.db.QueryRow(query, tradeID)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}
	if err != nil {
		return model.Trade{}, err
	}

	t.Closures, err = s.getClosures(t.ID)
	if err != nil {
		return model.Trade{}, err
	}
	return t, nil
}

// InsertTrade creates a new trade record.
func (s *TradeRepository) InsertTrade(ctx context.Context, t *model.Trade) error {
	return insertTrade(ctx, s.db, t)
}

// InsertTrades creates multiple trade records in one transaction. Either all
// rows are inserted or none are (bulk import is all-or-nothing).
func (s *TradeRepository) InsertTrades(ctx context.Context, trades []*model.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, t := range trades {
		if err := insertTrade(ctx, tx, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}
	return nil
}

// UpdateTrade updates the mutable fields of a trade.
func (s *TradeRepository) UpdateTrade(ctx context.Context, t *model.Trade) error {
	query := `
		UPDATE trade
		SET symbol = ?, entry_date = ?, entry_price = ?, quantity = ?,
		    margin_rate = ?, exit_date = ?, exit_price = ?, notes = ?
		WHERE id = ?
	`

	var exitDate any
	if t.ExitDate != nil {
		exitDate = t.ExitDate.Format("2006-01-02")
	}

	result, err := s.db.ExecContext(ctx, query,
		t.Symbol,
		t.EntryDate.Format("2006-01-02"),
		t.EntryPrice,
		t.Quantity,
		t.MarginRate,
		exitDate,
		t.ExitPrice,
		t.Notes,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}

// DeleteTrade removes a trade and, via cascade, its closures.
func (s *TradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM trade WHERE id = ?", tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}

// InsertClosure records a full or partial close for a trade.
func (s *TradeRepository) InsertClosure(ctx context.Context, c *model.TradeClosure) error {
	query := `
		INSERT INTO trade_closure (id, trade_id, closed_quantity, exit_price, exit_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.TradeID, c.ClosedQuantity, c.ExitPrice,
		c.ExitDate.Format("2006-01-02"), c.Notes, Timestamp(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade closure: %w", err)
	}
	return nil
}

func (s *TradeRepository) getClosures(tradeID string) ([]model.TradeClosure, error) {
	query := `
		SELECT id, trade_id, closed_quantity, exit_price, exit_date, notes, created_at
		FROM trade_closure
		WHERE trade_id = ?
		ORDER BY exit_date ASC, created_at ASC
	`

	rows, err := s.db.Query(query, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_closure table: %w", err)
	}
	defer rows.Close()

	closures := []model.TradeClosure{}
	for rows.Next() {
		var c model.TradeClosure
		var exitDateStr, createdAtStr string
		var notes sql.NullString

		err := rows.Scan(&c.ID, &c.TradeID, &c.ClosedQuantity, &c.ExitPrice, &exitDateStr, &notes, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_closure table results: %w", err)
		}
		c.ExitDate, err = ParseTime(exitDateStr)
		if err != nil {
			return nil, err
		}
		c.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}
		c.Notes = notes.String

		closures = append(closures, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_closure table: %w", err)
	}

	return closures, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (model.Trade, error) {
	var t model.Trade
	var entryDateStr, createdAtStr string
	var exitDateStr, notes sql.NullString
	var exitPrice sql.NullFloat64

	err := row.Scan(
		&t.ID,
		&t.PortfolioID,
		&t.Symbol,
		&entryDateStr,
		&t.EntryPrice,
		&t.Quantity,
		&t.MarginRate,
		&exitDateStr,
		&exitPrice,
		&notes,
		&createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Trade{}, err
		}
		return model.Trade{}, fmt.Errorf("failed to scan trade table results: %w", err)
	}

	t.EntryDate, err = ParseTime(entryDateStr)
	if err != nil {
		return model.Trade{}, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Trade{}, err
	}
	if exitDateStr.Valid {
		exitDate, err := ParseTime(exitDateStr.String)
		if err != nil {
			return model.Trade{}, err
		}
		t.ExitDate = &exitDate
	}
	if exitPrice.Valid {
		t.ExitPrice = &exitPrice.Float64
	}
	t.Notes = notes.String

	return t, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTrade(ctx context.Context, db execer, t *model.Trade) error {
	query := `
		INSERT INTO trade (id, portfolio_id, symbol, entry_date, entry_price,
		                   quantity, margin_rate, exit_date, exit_price, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var exitDate any
	if t.ExitDate != nil {
		exitDate = t.ExitDate.Format("2006-01-02")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := db.ExecContext(ctx, query,
		t.ID,
		t.PortfolioID,
		t.Symbol,
		t.EntryDate.Format("2006-01-02"),
		t.EntryPrice,
		t.Quantity,
		t.MarginRate,
		exitDate,
		t.ExitPrice,
		t.Notes,
		Timestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}
