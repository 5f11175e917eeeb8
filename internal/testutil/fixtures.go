package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/uuid"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates a plain (non-fixed, single-installment) expense.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, category models.ExpenseCategory, totalValue int64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		Date:          date,
		Category:      category,
		Description:   fmt.Sprintf("Test Expense %d", nextID()),
		UnitValue:     totalValue,
		Quantity:      1,
		TotalValue:    totalValue,
		PaymentMethod: models.PaymentMethodCash,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestInstallmentExpense creates an expense paid in installments.
// totalValue is the full original purchase amount.
func CreateTestInstallmentExpense(t *testing.T, db *gorm.DB, userID uint, category models.ExpenseCategory, totalValue int64, installments int, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		Date:          date,
		Category:      category,
		Description:   fmt.Sprintf("Test Installment Purchase %d", nextID()),
		UnitValue:     totalValue,
		Quantity:      1,
		TotalValue:    totalValue,
		Installments:  &installments,
		PaymentMethod: models.PaymentMethodCreditCard,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test installment expense: %v", err)
	}
	return expense
}

// CreateTestFixedExpense creates a fixed (recurring) expense instance with a
// fresh template ID, dated the first day of the given month.
func CreateTestFixedExpense(t *testing.T, db *gorm.DB, userID uint, category models.ExpenseCategory, totalValue int64, year int, month time.Month) *models.Expense {
	t.Helper()

	templateID := uuid.New()
	expense := &models.Expense{
		UserID:        userID,
		Date:          time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		Category:      category,
		Description:   fmt.Sprintf("Test Fixed Expense %d", nextID()),
		UnitValue:     totalValue,
		Quantity:      1,
		TotalValue:    totalValue,
		IsFixed:       true,
		PaymentMethod: models.PaymentMethodBankTransfer,
		TemplateID:    &templateID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test fixed expense: %v", err)
	}
	return expense
}

// CreateTestEarning creates an earning for the user.
func CreateTestEarning(t *testing.T, db *gorm.DB, userID uint, value int64, date time.Time) *models.Earning {
	t.Helper()

	earning := &models.Earning{
		UserID:      userID,
		Date:        date,
		Description: fmt.Sprintf("Test Earning %d", nextID()),
		Category:    models.EarningCategoryOther,
		Value:       value,
	}
	if err := db.Create(earning).Error; err != nil {
		t.Fatalf("failed to create test earning: %v", err)
	}
	return earning
}
