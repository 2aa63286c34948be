package service_test

import (
	"context"
	"errors"
	"testing"

	"tradediary/internal/api/request"
	"tradediary/internal/apperrors"
	"tradediary/internal/testutil"
)

// TestRateChangeService tests the rate timeline CRUD and its ordering.
//
// WHY: The accrual engine trusts the timeline to arrive sorted by effective
// date with insertion order on ties. The ordering contract lives in the
// repository query, so it is exercised through stored data here.
func TestRateChangeService(t *testing.T) {
	t.Run("timeline comes back ordered by effective date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRateChangeService(t, db)

		testutil.InsertRateChange(t, db, testutil.Date(2024, 3, 1), 16, testutil.Date(2024, 3, 1))
		testutil.InsertRateChange(t, db, testutil.Date(2024, 1, 1), 20, testutil.Date(2024, 3, 2))
		testutil.InsertRateChange(t, db, testutil.Date(2024, 2, 1), 18, testutil.Date(2024, 3, 3))

		changes, err := svc.GetRateChanges()
		if err != nil {
			t.Fatalf("GetRateChanges() returned unexpected error: %v", err)
		}

		if len(changes) != 3 {
			t.Fatalf("Expected 3 rate changes, got %d", len(changes))
		}
		for i := 1; i < len(changes); i++ {
			if changes[i].EffectiveDate.Before(changes[i-1].EffectiveDate) {
				t.Errorf("Timeline out of order at index %d", i)
			}
		}
	})

	t.Run("duplicate effective dates keep insertion order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRateChangeService(t, db)

		date := testutil.Date(2024, 1, 15)
		first := testutil.InsertRateChange(t, db, date, 16, testutil.Date(2024, 2, 1))
		second := testutil.InsertRateChange(t, db, date, 17, testutil.Date(2024, 2, 1).Add(1))

		changes, err := svc.GetRateChanges()
		if err != nil {
			t.Fatalf("GetRateChanges() returned unexpected error: %v", err)
		}

		if len(changes) != 2 {
			t.Fatalf("Expected 2 rate changes, got %d", len(changes))
		}
		if changes[0].ID != first.ID || changes[1].ID != second.ID {
			t.Error("Expected insertion order preserved for a shared effective date")
		}
	})

	t.Run("create parses the effective date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRateChangeService(t, db)

		change, err := svc.CreateRateChange(context.Background(), request.CreateRateChangeRequest{
			EffectiveDate: "2024-06-01",
			Rate:          18,
		})
		if err != nil {
			t.Fatalf("CreateRateChange() returned unexpected error: %v", err)
		}

		if change.EffectiveDate.Format("2006-01-02") != "2024-06-01" {
			t.Errorf("Expected effective date 2024-06-01, got %v", change.EffectiveDate)
		}
		testutil.AssertRowCount(t, db, "rate_change", 1)
	})

	t.Run("delete removes the event", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRateChangeService(t, db)

		change := testutil.InsertRateChange(t, db, testutil.Date(2024, 1, 1), 16, testutil.Date(2024, 1, 1))

		if err := svc.DeleteRateChange(context.Background(), change.ID); err != nil {
			t.Fatalf("DeleteRateChange() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "rate_change", 0)

		if err := svc.DeleteRateChange(context.Background(), change.ID); !errors.Is(err, apperrors.ErrRateChangeNotFound) {
			t.Errorf("Expected ErrRateChangeNotFound on double delete, got %v", err)
		}
	})
}
