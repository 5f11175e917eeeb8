package testutil_test

import (
	"testing"
	"time"

	"fintrack/internal/errors"
	"fintrack/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "expenses", "earnings", "monthly_incomes", "password_resets", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	expense := testutil.CreateTestExpense(t, db, user.ID, "food", 5000, time.Now())
	if expense.TotalValue != 5000 {
		t.Errorf("expected total value 5000, got %d", expense.TotalValue)
	}

	fixed := testutil.CreateTestFixedExpense(t, db, user.ID, "housing", 120000, 2024, time.March)
	if !fixed.IsFixed || fixed.TemplateID == nil {
		t.Error("fixed expense fixture should be fixed and carry a template ID")
	}
	if fixed.Date.Day() != 1 {
		t.Errorf("fixed expense should be dated the first of the month, got day %d", fixed.Date.Day())
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.ErrExpenseNotFound
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
}
