package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Portfolio table
		CREATE TABLE IF NOT EXISTS portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			currency VARCHAR(3) NOT NULL DEFAULT 'RUB',
			is_archived BOOLEAN NOT NULL DEFAULT FALSE
		);

		-- Margin positions
		CREATE TABLE IF NOT EXISTS trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			symbol VARCHAR(10) NOT NULL,
			entry_date DATE NOT NULL,
			entry_price FLOAT NOT NULL,
			quantity FLOAT NOT NULL,
			margin_rate FLOAT NOT NULL,
			exit_date DATE,
			exit_price FLOAT,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE
		);

		-- Full or partial closes of margin positions
		CREATE TABLE IF NOT EXISTS trade_closure (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			trade_id VARCHAR(36) NOT NULL,
			closed_quantity FLOAT NOT NULL,
			exit_price FLOAT NOT NULL,
			exit_date DATE NOT NULL,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(trade_id) REFERENCES trade(id) ON DELETE CASCADE
		);

		-- Spot market transactions (BUY/SELL/DEPOSIT/WITHDRAW/DIVIDEND)
		CREATE TABLE IF NOT EXISTS spot_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			ticker VARCHAR(10) NOT NULL,
			company VARCHAR(100),
			type VARCHAR(10) NOT NULL,
			date DATE NOT NULL,
			price FLOAT NOT NULL,
			quantity FLOAT NOT NULL,
			note TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE
		);

		-- Central-bank rate change timeline
		CREATE TABLE IF NOT EXISTS rate_change (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			effective_date DATE NOT NULL,
			rate FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Latest quote per ticker
		CREATE TABLE IF NOT EXISTS stock_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(10) NOT NULL UNIQUE,
			price FLOAT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CountRows returns the number of rows in the given table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}

// AssertRowCount fails the test when the table does not hold exactly want rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, want int) {
	t.Helper()

	if got := CountRows(t, db, table); got != want {
		t.Errorf("table %s: got %d rows, want %d", table, got, want)
	}
}
