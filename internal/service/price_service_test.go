package service_test

import (
	"context"
	"testing"

	"tradediary/internal/testutil"
)

// TestPriceService_RefreshAll tests the quote refresh flow.
//
// WHY: Refresh fans out over the traded tickers concurrently; a failing feed
// for one ticker must not abort the rest, and only BUY/SELL tickers should be
// fetched at all.
func TestPriceService_RefreshAll(t *testing.T) {
	t.Run("updates every traded ticker", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db, &testutil.QuoteClientMock{
			Quotes: map[string]float64{"GAZP": 21.5, "SBER": 310},
		})

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewSpotTransaction(portfolio.ID).WithTicker("GAZP").Build(t, db)
		testutil.NewSpotTransaction(portfolio.ID).WithTicker("SBER").Build(t, db)

		updated, err := svc.RefreshAll(context.Background())
		if err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}

		if updated != 2 {
			t.Errorf("Expected 2 tickers updated, got %d", updated)
		}

		price, err := svc.GetPrice("GAZP")
		if err != nil {
			t.Fatalf("GetPrice() returned unexpected error: %v", err)
		}
		if price.Price != 21.5 {
			t.Errorf("Expected stored price 21.5, got %v", price.Price)
		}
	})

	t.Run("feed miss skips the ticker without failing the run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db, &testutil.QuoteClientMock{
			Quotes: map[string]float64{"GAZP": 21.5},
		})

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewSpotTransaction(portfolio.ID).WithTicker("GAZP").Build(t, db)
		testutil.NewSpotTransaction(portfolio.ID).WithTicker("DELISTED").Build(t, db)

		updated, err := svc.RefreshAll(context.Background())
		if err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}

		if updated != 1 {
			t.Errorf("Expected 1 ticker updated, got %d", updated)
		}
		testutil.AssertRowCount(t, db, "stock_price", 1)
	})

	t.Run("cash-only tickers are not fetched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPriceService(t, db, &testutil.QuoteClientMock{
			Quotes: map[string]float64{"CASH": 1},
		})

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewSpotTransaction(portfolio.ID).WithTicker("CASH").WithType("DEPOSIT").Build(t, db)

		updated, err := svc.RefreshAll(context.Background())
		if err != nil {
			t.Fatalf("RefreshAll() returned unexpected error: %v", err)
		}

		if updated != 0 {
			t.Errorf("Expected no tickers updated, got %d", updated)
		}
	})
}

// TestPriceService_UpsertPrice tests manual quote entry.
//
// WHY: Upsert replaces by ticker; a second write for the same ticker must
// update in place, not grow the table.
func TestPriceService_UpsertPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPriceService(t, db, nil)

	if _, err := svc.UpsertPrice(context.Background(), "GAZP", 20); err != nil {
		t.Fatalf("UpsertPrice() returned unexpected error: %v", err)
	}
	if _, err := svc.UpsertPrice(context.Background(), "GAZP", 22); err != nil {
		t.Fatalf("UpsertPrice() returned unexpected error: %v", err)
	}

	testutil.AssertRowCount(t, db, "stock_price", 1)

	price, err := svc.GetPrice("GAZP")
	if err != nil {
		t.Fatalf("GetPrice() returned unexpected error: %v", err)
	}
	if price.Price != 22 {
		t.Errorf("Expected latest price 22, got %v", price.Price)
	}
}
