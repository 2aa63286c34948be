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

// RateChangeRepository provides data access methods for the rate_change table.
type RateChangeRepository struct {
	db *sql.DB
}

// NewRateChangeRepository creates a new RateChangeRepository with the provided database connection.
func NewRateChangeRepository(db *sql.DB) *RateChangeRepository {
	return &RateChangeRepository{db: db}
}

// GetRateChanges retrieves the full rate-change timeline sorted by effective
// date ascending. Events sharing a date are returned in insertion order so
// the accrual engine's last-inserted-wins tie-break holds.
func (s *RateChangeRepository) GetRateChanges() ([]model.RateChange, error) {
	query := `
		SELECT id, effective_date, rate, created_at
		FROM rate_change
		ORDER BY effective_date ASC, created_at ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate_change table: %w", err)
	}
	defer rows.Close()

	changes := []model.RateChange{}
	for rows.Next() {
		var c model.RateChange
		var dateStr, createdAtStr string

		err := rows.Scan(&c.ID, &dateStr, &c.Rate, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate_change table results: %w", err)
		}
		c.EffectiveDate, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		c.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		changes = append(changes, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate_change table: %w", err)
	}

	return changes, nil
}

// GetRateChange retrieves a single rate-change event by ID.
func (s *RateChangeRepository) GetRateChange(rateChangeID string) (model.RateChange, error) {
	query := `
		SELECT id, effective_date, rate, created_at
		FROM rate_change
		WHERE id = ?
	`

	var c model.RateChange
	var dateStr, createdAtStr string

	err := s.db.QueryRow(query, rateChangeID).Scan(&c.ID, &dateStr, &c.Rate, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RateChange{}, apperrors.ErrRateChangeNotFound
	}
	if err != nil {
		return model.RateChange{}, fmt.Errorf("failed to scan rate_change table results: %w", err)
	}
	c.EffectiveDate, err = ParseTime(dateStr)
	if err != nil {
		return model.RateChange{}, err
	}
	c.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.RateChange{}, err
	}

	return c, nil
}

// InsertRateChange creates a new rate-change event.
func (s *RateChangeRepository) InsertRateChange(ctx context.Context, c *model.RateChange) error {
	query := `
		INSERT INTO rate_change (id, effective_date, rate, created_at)
		VALUES (?, ?, ?, ?)
	`

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, query, c.ID, c.EffectiveDate.Format("2006-01-02"), c.Rate, Timestamp(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert rate change: %w", err)
	}
	return nil
}

// DeleteRateChange removes a rate-change event.
func (s *RateChangeRepository) DeleteRateChange(ctx context.Context, rateChangeID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM rate_change WHERE id = ?", rateChangeID)
	if err != nil {
		return fmt.Errorf("failed to delete rate change: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrRateChangeNotFound
	}
	return nil
}
