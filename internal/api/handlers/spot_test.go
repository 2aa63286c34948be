package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradediary/internal/api/request"
	"tradediary/internal/fifo"
	"tradediary/internal/testutil"
)

func setupSpotHandler(t *testing.T) (*SpotHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ss := testutil.NewTestSpotService(t, db)
	return NewSpotHandler(ss), db
}

func TestSpotHandler_CreateTransaction(t *testing.T) {
	t.Run("creates a transaction", func(t *testing.T) {
		handler, db := setupSpotHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)

		body := request.CreateSpotTransactionRequest{
			PortfolioID: portfolio.ID,
			Ticker:      "GAZP",
			Type:        "BUY",
			Date:        "2024-01-01",
			Price:       150,
			Quantity:    10,
		}
		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/spot", nil, body)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "spot_transaction", 1)
	})

	t.Run("rejects an unknown transaction type", func(t *testing.T) {
		handler, db := setupSpotHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)

		body := request.CreateSpotTransactionRequest{
			PortfolioID: portfolio.ID,
			Ticker:      "GAZP",
			Type:        "SHORT",
			Date:        "2024-01-01",
			Price:       150,
			Quantity:    10,
		}
		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/spot", nil, body)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "spot_transaction", 0)
	})
}

func TestSpotHandler_Positions(t *testing.T) {
	handler, db := setupSpotHandler(t)
	portfolio := testutil.NewPortfolio().Build(t, db)

	testutil.NewSpotTransaction(portfolio.ID).
		WithTicker("GAZP").At(10, 100).On(testutil.Date(2024, 1, 1)).Build(t, db)
	testutil.NewSpotTransaction(portfolio.ID).
		WithTicker("GAZP").WithType("SELL").At(12, 40).On(testutil.Date(2024, 2, 1)).Build(t, db)
	testutil.InsertStockPrice(t, db, "GAZP", 20)

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/spot/positions",
		map[string]string{"portfolioId": portfolio.ID})
	w := httptest.NewRecorder()

	handler.Positions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result fifo.Result
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&result)

	position, ok := result.Positions["GAZP"]
	if !ok {
		t.Fatal("Expected a GAZP position in the response")
	}
	if position.SharesRemaining != 60 {
		t.Errorf("Expected 60 shares remaining, got %v", position.SharesRemaining)
	}
	if position.RealizedPL != 80 {
		t.Errorf("Expected realized P&L 80, got %v", position.RealizedPL)
	}
	if len(result.Sales) != 1 {
		t.Errorf("Expected 1 realized sale, got %d", len(result.Sales))
	}
}

func TestSpotHandler_Cash(t *testing.T) {
	handler, db := setupSpotHandler(t)
	portfolio := testutil.NewPortfolio().Build(t, db)

	testutil.NewSpotTransaction(portfolio.ID).
		WithType("DEPOSIT").At(1, 5000).On(testutil.Date(2024, 1, 1)).Build(t, db)
	testutil.NewSpotTransaction(portfolio.ID).
		WithTicker("GAZP").At(10, 100).On(testutil.Date(2024, 1, 2)).Build(t, db)

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/spot/cash",
		map[string]string{"portfolioId": portfolio.ID})
	w := httptest.NewRecorder()

	handler.Cash(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var cash fifo.CashSummary
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&cash)

	if cash.Balance != 4000 {
		t.Errorf("Expected balance 4000, got %v", cash.Balance)
	}
}
