package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradediary/internal/api/request"
	"tradediary/internal/interest"
	"tradediary/internal/model"
	"tradediary/internal/service"
	"tradediary/internal/testutil"
)

func setupTradeHandler(t *testing.T) (*TradeHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ts := testutil.NewTestTradeService(t, db)
	as := testutil.NewTestAnalyticsService(t, db)
	return NewTradeHandler(ts, as), db
}

func TestTradeHandler_CreateTrade(t *testing.T) {
	t.Run("creates a trade from a valid request", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)

		body := request.CreateTradeRequest{
			PortfolioID: portfolio.ID,
			Symbol:      "SBER",
			EntryDate:   "2024-01-01",
			EntryPrice:  1000,
			Quantity:    100,
			MarginRate:  20,
		}
		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/trade", nil, body)
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var trade model.Trade
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&trade)

		if trade.Symbol != "SBER" || trade.Quantity != 100 {
			t.Errorf("Unexpected trade in response: %+v", trade)
		}
		testutil.AssertRowCount(t, db, "trade", 1)
	})

	t.Run("rejects a request that fails validation", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)

		body := request.CreateTradeRequest{
			PortfolioID: portfolio.ID,
			Symbol:      "SBER",
			EntryDate:   "01/01/2024", // wrong format
			EntryPrice:  1000,
			Quantity:    100,
			MarginRate:  20,
		}
		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/trade", nil, body)
		w := httptest.NewRecorder()

		handler.CreateTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "trade", 0)
	})
}

func TestTradeHandler_CloseTrade(t *testing.T) {
	t.Run("closes a trade", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		trade := testutil.NewTrade(portfolio.ID).Build(t, db)

		body := request.CloseTradeRequest{ExitDate: "2024-03-01", ExitPrice: 1100}
		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost,
			"/api/trade/"+trade.ID+"/close", map[string]string{"uuid": trade.ID}, body)
		w := httptest.NewRecorder()

		handler.CloseTrade(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "trade_closure", 1)
	})

	t.Run("returns 404 for a missing trade", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)

		id := testutil.MakeID()
		body := request.CloseTradeRequest{ExitDate: "2024-03-01", ExitPrice: 1100}
		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost,
			"/api/trade/"+id+"/close", map[string]string{"uuid": id}, body)
		w := httptest.NewRecorder()

		handler.CloseTrade(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a double close", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		trade := testutil.NewTrade(portfolio.ID).
			Closed(testutil.Date(2024, 2, 1), 1050).
			Build(t, db)

		body := request.CloseTradeRequest{ExitDate: "2024-03-01", ExitPrice: 1100}
		req := testutil.NewJSONRequestWithURLParams(t, http.MethodPost,
			"/api/trade/"+trade.ID+"/close", map[string]string{"uuid": trade.ID}, body)
		w := httptest.NewRecorder()

		handler.CloseTrade(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_TradeInterest(t *testing.T) {
	t.Run("returns the accrual for a pinned asOf date", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		trade := testutil.NewTrade(portfolio.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/trade/"+trade.ID+"/interest?asOf=2024-01-11", map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.TradeInterest(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var accrual interest.Accrual
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&accrual)

		if len(accrual.Periods) != 1 {
			t.Errorf("Expected 1 period, got %d", len(accrual.Periods))
		}
		if accrual.TotalInterest <= 0 {
			t.Errorf("Expected positive interest, got %v", accrual.TotalInterest)
		}
	})

	t.Run("rejects a malformed asOf", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		trade := testutil.NewTrade(portfolio.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/trade/"+trade.ID+"/interest?asOf=yesterday", map[string]string{"uuid": trade.ID})
		w := httptest.NewRecorder()

		handler.TradeInterest(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_AnalyticsSummary(t *testing.T) {
	handler, db := setupTradeHandler(t)
	portfolio := testutil.NewPortfolio().Build(t, db)
	testutil.NewTrade(portfolio.ID).Build(t, db)

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/trade/analytics/summary",
		map[string]string{"portfolioId": portfolio.ID, "asOf": "2024-01-11"})
	w := httptest.NewRecorder()

	handler.AnalyticsSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var summary service.Summary
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&summary)

	if summary.OpenTrades != 1 {
		t.Errorf("Expected 1 open trade, got %d", summary.OpenTrades)
	}
}

func TestTradeHandler_MonthlyAnalytics(t *testing.T) {
	t.Run("returns a bucket per month in the range", func(t *testing.T) {
		handler, db := setupTradeHandler(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewTrade(portfolio.ID).Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/trade/analytics/monthly",
			map[string]string{"portfolioId": portfolio.ID, "from": "2024-01-01", "to": "2024-03-31"})
		w := httptest.NewRecorder()

		handler.MonthlyAnalytics(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var report []service.MonthProfit
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&report)

		if len(report) != 3 {
			t.Errorf("Expected 3 months, got %d", len(report))
		}
	})

	t.Run("rejects a malformed range", func(t *testing.T) {
		handler, _ := setupTradeHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/trade/analytics/monthly",
			map[string]string{"from": "January"})
		w := httptest.NewRecorder()

		handler.MonthlyAnalytics(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTradeHandler_SymbolAnalytics(t *testing.T) {
	handler, db := setupTradeHandler(t)
	portfolio := testutil.NewPortfolio().Build(t, db)
	testutil.NewTrade(portfolio.ID).Build(t, db)
	testutil.NewTrade(portfolio.ID).WithSymbol("GAZP").Build(t, db)

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/trade/analytics/symbols",
		map[string]string{"portfolioId": portfolio.ID})
	w := httptest.NewRecorder()

	handler.SymbolAnalytics(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report []service.SymbolStats
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&report)

	if len(report) != 2 {
		t.Errorf("Expected 2 symbols, got %d", len(report))
	}
}
