package service_test

import (
	"context"
	"errors"
	"testing"

	"tradediary/internal/api/request"
	"tradediary/internal/apperrors"
	"tradediary/internal/testutil"
)

// TestPortfolioService tests the portfolio lifecycle.
//
// WHY: Portfolios scope everything else through cascading foreign keys, so
// the archive filter and delete behavior need direct coverage.
func TestPortfolioService(t *testing.T) {
	t.Run("archive filter hides archived portfolios by default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		active := testutil.NewPortfolio().WithName("Active").Build(t, db)
		testutil.NewPortfolio().WithName("Old").Archived().Build(t, db)

		portfolios, err := svc.GetPortfolios(false)
		if err != nil {
			t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
		}
		if len(portfolios) != 1 || portfolios[0].ID != active.ID {
			t.Errorf("Expected only the active portfolio, got %d entries", len(portfolios))
		}

		all, err := svc.GetPortfolios(true)
		if err != nil {
			t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("Expected 2 portfolios with archived included, got %d", len(all))
		}
	})

	t.Run("create defaults the currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio, err := svc.CreatePortfolio(context.Background(), request.CreatePortfolioRequest{
			Name: "Margin Book",
		})
		if err != nil {
			t.Fatalf("CreatePortfolio() returned unexpected error: %v", err)
		}
		if portfolio.Currency != "USD" {
			t.Errorf("Expected default currency USD, got %s", portfolio.Currency)
		}
	})

	t.Run("update applies only provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.NewPortfolio().WithName("Before").Build(t, db)

		name := "After"
		updated, err := svc.UpdatePortfolio(context.Background(), portfolio.ID, request.UpdatePortfolioRequest{
			Name: &name,
		})
		if err != nil {
			t.Fatalf("UpdatePortfolio() returned unexpected error: %v", err)
		}
		if updated.Name != "After" {
			t.Errorf("Expected name After, got %s", updated.Name)
		}
		if updated.Currency != portfolio.Currency {
			t.Errorf("Expected currency untouched, got %s", updated.Currency)
		}
	})

	t.Run("delete cascades to trades and transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewTrade(portfolio.ID).Build(t, db)
		testutil.NewSpotTransaction(portfolio.ID).Build(t, db)

		if err := svc.DeletePortfolio(context.Background(), portfolio.ID); err != nil {
			t.Fatalf("DeletePortfolio() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "portfolio", 0)
		testutil.AssertRowCount(t, db, "trade", 0)
		testutil.AssertRowCount(t, db, "spot_transaction", 0)
	})

	t.Run("missing portfolio yields not-found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		_, err := svc.GetPortfolio(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})
}
