package service_test

import (
	"context"
	"math"
	"testing"

	"tradediary/internal/api/request"
	"tradediary/internal/testutil"
)

// TestAnalyticsService_GetSummary tests the trade-book dashboard aggregates.
//
// WHY: The summary mixes open and closed trades with different rules (accrual
// only for open ones, realized profit only from closures). A miscount here is
// the kind of bug a user sees on the front page.
func TestAnalyticsService_GetSummary(t *testing.T) {
	t.Run("aggregates open and closed trades separately", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db)

		portfolio := testutil.NewPortfolio().Build(t, db)
		// Open: 100 x 1000 at 20%.
		testutil.NewTrade(portfolio.ID).Build(t, db)
		// Closed on Feb 1 at 1050.
		testutil.NewTrade(portfolio.ID).WithSymbol("GAZP").
			Closed(testutil.Date(2024, 2, 1), 1050).
			Build(t, db)

		summary, err := svc.GetSummary(portfolio.ID, testutil.Date(2024, 1, 11))
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}

		if summary.OpenTrades != 1 || summary.ClosedTrades != 1 {
			t.Errorf("Expected 1 open and 1 closed, got %d / %d", summary.OpenTrades, summary.ClosedTrades)
		}
		if summary.OpenCostBasis != 100000 {
			t.Errorf("Expected open cost basis 100000, got %v", summary.OpenCostBasis)
		}

		// Only the open trade accrues: 100000 * 0.20 / 365 * 10 days.
		wantAccrued := 100000.0 * 0.20 / 365 * 10
		if math.Abs(summary.AccruedInterest-wantAccrued) > 1e-9 {
			t.Errorf("Expected accrued interest %v, got %v", wantAccrued, summary.AccruedInterest)
		}

		wantDaily := 100000.0 * 0.20 / 365
		if math.Abs(summary.DailyInterest-wantDaily) > 1e-9 {
			t.Errorf("Expected daily interest %v, got %v", wantDaily, summary.DailyInterest)
		}
	})

	t.Run("realized profit sums closure price P&L", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db)

		portfolio := testutil.NewPortfolio().Build(t, db)
		trade := testutil.NewTrade(portfolio.ID).WithQuantity(100).Build(t, db)
		tradeSvc := testutil.NewTestTradeService(t, db)

		_, err := tradeSvc.CloseTrade(context.Background(), trade.ID, request.CloseTradeRequest{
			ExitDate: "2024-02-01", ExitPrice: 1050, Quantity: 40,
		})
		if err != nil {
			t.Fatalf("partial close failed: %v", err)
		}

		summary, err := svc.GetSummary(portfolio.ID, testutil.Date(2024, 2, 2))
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}

		// (1050 - 1000) * 40
		if math.Abs(summary.RealizedProfit-2000) > 1e-9 {
			t.Errorf("Expected realized profit 2000, got %v", summary.RealizedProfit)
		}
	})

	t.Run("win rate counts profitable closed trades", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db)
		tradeSvc := testutil.NewTestTradeService(t, db)

		portfolio := testutil.NewPortfolio().Build(t, db)
		winner := testutil.NewTrade(portfolio.ID).Build(t, db)
		loser := testutil.NewTrade(portfolio.ID).WithSymbol("GAZP").Build(t, db)

		_, err := tradeSvc.CloseTrade(context.Background(), winner.ID, request.CloseTradeRequest{
			ExitDate: "2024-02-01", ExitPrice: 1050,
		})
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}
		_, err = tradeSvc.CloseTrade(context.Background(), loser.ID, request.CloseTradeRequest{
			ExitDate: "2024-02-01", ExitPrice: 950,
		})
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}

		summary, err := svc.GetSummary(portfolio.ID, testutil.Date(2024, 2, 2))
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}

		if summary.ClosedTrades != 2 || summary.WinningTrades != 1 {
			t.Errorf("Expected 2 closed with 1 winner, got %d / %d",
				summary.ClosedTrades, summary.WinningTrades)
		}
		if summary.WinRate != 50 {
			t.Errorf("Expected win rate 50, got %v", summary.WinRate)
		}
	})

	t.Run("weighted average rate follows the timeline", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalyticsService(t, db)

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewTrade(portfolio.ID).Build(t, db)
		testutil.InsertRateChange(t, db, testutil.Date(2024, 1, 6), 10, testutil.Date(2024, 1, 5))

		summary, err := svc.GetSummary(portfolio.ID, testutil.Date(2024, 1, 11))
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}

		// One trade, so the weighted average is just its effective rate.
		if summary.WeightedAverageRate != 10 {
			t.Errorf("Expected weighted average rate 10, got %v", summary.WeightedAverageRate)
		}
	})
}

// TestAnalyticsService_GetRatesImpact tests the floating-rates report.
//
// WHY: The report's whole point is the baseline-versus-actual comparison per
// open trade; closed trades must stay out of it.
func TestAnalyticsService_GetRatesImpact(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalyticsService(t, db)

	portfolio := testutil.NewPortfolio().Build(t, db)
	testutil.NewTrade(portfolio.ID).Build(t, db)
	testutil.NewTrade(portfolio.ID).WithSymbol("GAZP").
		Closed(testutil.Date(2024, 1, 4), 1050).
		Build(t, db)
	testutil.InsertRateChange(t, db, testutil.Date(2024, 1, 6), 10, testutil.Date(2024, 1, 5))

	report, err := svc.GetRatesImpact(portfolio.ID, testutil.Date(2024, 1, 11))
	if err != nil {
		t.Fatalf("GetRatesImpact() returned unexpected error: %v", err)
	}

	if len(report.Trades) != 1 {
		t.Fatalf("Expected 1 open trade in the report, got %d", len(report.Trades))
	}

	impact := report.Trades[0]
	if impact.EntryRate != 20 || impact.CurrentRate != 10 {
		t.Errorf("Expected rates 20 -> 10, got %v -> %v", impact.EntryRate, impact.CurrentRate)
	}

	// 5 days at 20% then 5 at 10%, against a flat-20% baseline.
	wantActual := 100000.0*0.20/365*5 + 100000.0*0.10/365*5
	wantBaseline := 100000.0 * 0.20 / 365 * 10
	if math.Abs(impact.ActualInterest-wantActual) > 1e-9 {
		t.Errorf("Expected actual interest %v, got %v", wantActual, impact.ActualInterest)
	}
	if math.Abs(impact.BaselineInterest-wantBaseline) > 1e-9 {
		t.Errorf("Expected baseline interest %v, got %v", wantBaseline, impact.BaselineInterest)
	}
	if math.Abs(report.Savings-(wantBaseline-wantActual)) > 1e-9 {
		t.Errorf("Expected savings %v, got %v", wantBaseline-wantActual, report.Savings)
	}
}

// TestAnalyticsService_GetMonthly tests the per-month realized-profit buckets.
//
// WHY: The chart behind this view needs every month in the range present,
// zeros included, and each closure's profit landing in the month it actually
// happened, not the trade's entry month.
func TestAnalyticsService_GetMonthly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalyticsService(t, db)
	tradeSvc := testutil.NewTestTradeService(t, db)

	portfolio := testutil.NewPortfolio().Build(t, db)
	winner := testutil.NewTrade(portfolio.ID).Build(t, db)
	loser := testutil.NewTrade(portfolio.ID).WithSymbol("GAZP").Build(t, db)

	_, err := tradeSvc.CloseTrade(context.Background(), winner.ID, request.CloseTradeRequest{
		ExitDate: "2024-02-15", ExitPrice: 1050,
	})
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	_, err = tradeSvc.CloseTrade(context.Background(), loser.ID, request.CloseTradeRequest{
		ExitDate: "2024-04-10", ExitPrice: 980,
	})
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}

	report, err := svc.GetMonthly(portfolio.ID, testutil.Date(2024, 1, 1), testutil.Date(2024, 5, 1))
	if err != nil {
		t.Fatalf("GetMonthly() returned unexpected error: %v", err)
	}

	if len(report) != 5 {
		t.Fatalf("Expected 5 months in the report, got %d", len(report))
	}
	if report[0].Month != "2024-01" || report[4].Month != "2024-05" {
		t.Errorf("Expected months 2024-01 through 2024-05, got %s through %s",
			report[0].Month, report[4].Month)
	}

	// (1050 - 1000) * 100 in February, (980 - 1000) * 100 in April.
	want := map[string]float64{
		"2024-01": 0, "2024-02": 5000, "2024-03": 0, "2024-04": -2000, "2024-05": 0,
	}
	for _, month := range report {
		if month.Profit != want[month.Month] {
			t.Errorf("Expected profit %v in %s, got %v", want[month.Month], month.Month, month.Profit)
		}
	}
}

// TestAnalyticsService_GetSymbols tests the per-symbol aggregates.
//
// WHY: Counts cover every trade that touched the symbol while profit comes
// only from closures, and ordering is what the user reads first.
func TestAnalyticsService_GetSymbols(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalyticsService(t, db)
	tradeSvc := testutil.NewTestTradeService(t, db)

	portfolio := testutil.NewPortfolio().Build(t, db)
	closed := testutil.NewTrade(portfolio.ID).Build(t, db)
	testutil.NewTrade(portfolio.ID).Build(t, db) // second SBER trade, open
	testutil.NewTrade(portfolio.ID).WithSymbol("GAZP").Build(t, db)

	_, err := tradeSvc.CloseTrade(context.Background(), closed.ID, request.CloseTradeRequest{
		ExitDate: "2024-02-01", ExitPrice: 1050,
	})
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}

	report, err := svc.GetSymbols(portfolio.ID)
	if err != nil {
		t.Fatalf("GetSymbols() returned unexpected error: %v", err)
	}

	if len(report) != 2 {
		t.Fatalf("Expected 2 symbols, got %d", len(report))
	}

	// SBER realized (1050 - 1000) * 100; GAZP realized nothing yet.
	if report[0].Symbol != "SBER" || report[0].Profit != 5000 || report[0].Trades != 2 {
		t.Errorf("Expected SBER first with profit 5000 over 2 trades, got %+v", report[0])
	}
	if report[1].Symbol != "GAZP" || report[1].Profit != 0 || report[1].Trades != 1 {
		t.Errorf("Expected GAZP with profit 0 over 1 trade, got %+v", report[1])
	}
}
