package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// incomeService handles monthly income bookkeeping.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// SetMonthlyIncome declares or replaces the income for a calendar month.
func (s *incomeService) SetMonthlyIncome(userID uint, year, month int, value int64) (*models.MonthlyIncome, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidMonth
	}
	if value < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income must not be negative")
	}

	var income models.MonthlyIncome
	err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).First(&income).Error
	switch {
	case err == nil:
		income.Value = value
		if err := s.db.Save(&income).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &income, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		income = models.MonthlyIncome{UserID: userID, Year: year, Month: month, Value: value}
		if err := s.db.Create(&income).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &income, nil
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetMonthlyIncome retrieves the declared income for a calendar month.
func (s *incomeService) GetMonthlyIncome(userID uint, year, month int) (*models.MonthlyIncome, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidMonth
	}

	var income models.MonthlyIncome
	if err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}
