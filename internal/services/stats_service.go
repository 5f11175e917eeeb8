package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/installments"
	"fintrack/internal/models"
)

// statsService aggregates a user's expense set into dashboard figures.
//
// It shares the installment arithmetic with the listing endpoint through the
// installments package: a parceled purchase contributes the installment due
// this cycle, never the full ticket price, and a completed plan contributes
// nothing.
type statsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB) StatsServicer {
	return &statsService{db: db}
}

// GetSummary computes total spend, current-month spend, fixed-expense total,
// count, and category totals over the user's (optionally filtered) expenses.
// The reference time is read once so every figure in one summary agrees on
// what "this month" means. An empty expense set yields all zeros.
func (s *statsService) GetSummary(userID uint, filter ExpenseFilter, now time.Time) (*Summary, error) {
	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	base = applyExpenseFilters(base, filter)

	var expenses []models.Expense
	if err := base.Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &Summary{
		Count:      len(expenses),
		ByCategory: make(map[string]int64),
	}

	// Same month window as the recurring materializer, pinned to UTC so
	// both agree on "this month" for any given instant.
	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	for i := range expenses {
		e := &expenses[i]

		count := e.InstallmentCount()
		value := e.TotalValue
		if count > 1 {
			value = installments.Resolve(e.Date, count, e.TotalValue, now).Value
		}

		summary.TotalSpent += value
		summary.ByCategory[string(e.Category)] += value
		if e.IsFixed {
			summary.FixedTotal += value
		}

		// An installment purchase from a prior month still has a payment due
		// this month; for everything else the effective date decides.
		if count > 1 {
			if installments.DueThisMonth(e.Date, count, now) {
				summary.MonthSpent += value
			}
		} else {
			effective := e.EffectiveDate()
			if !effective.Before(monthStart) && effective.Before(nextMonth) {
				summary.MonthSpent += value
			}
		}
	}

	return summary, nil
}
