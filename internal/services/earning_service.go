package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// earningService handles earning-related business logic.
type earningService struct {
	db *gorm.DB
}

// NewEarningService creates a new EarningServicer.
func NewEarningService(db *gorm.DB) EarningServicer {
	return &earningService{db: db}
}

// CreateEarning records a new earning for a user
func (s *earningService) CreateEarning(userID uint, input EarningInput) (*models.Earning, error) {
	if err := validateEarningInput(&input); err != nil {
		return nil, err
	}

	earning := &models.Earning{
		UserID:      userID,
		Date:        input.Date,
		Description: input.Description,
		Category:    input.Category,
		Value:       input.Value,
	}
	if err := s.db.Create(earning).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return earning, nil
}

// GetUserEarnings retrieves a paginated, filtered list of earnings for a user.
func (s *earningService) GetUserEarnings(userID uint, page pagination.PageRequest, filter EarningFilter) (*pagination.PageResponse[models.Earning], error) {
	page.Defaults()

	base := s.db.Model(&models.Earning{}).Where("user_id = ?", userID)
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var earnings []models.Earning
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&earnings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(earnings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetEarningByID retrieves an earning by ID for a specific user
func (s *earningService) GetEarningByID(userID, earningID uint) (*models.Earning, error) {
	var earning models.Earning
	if err := s.db.Where("id = ? AND user_id = ?", earningID, userID).First(&earning).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEarningNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &earning, nil
}

// UpdateEarning updates an existing earning
func (s *earningService) UpdateEarning(userID, earningID uint, input EarningInput) (*models.Earning, error) {
	earning, err := s.GetEarningByID(userID, earningID)
	if err != nil {
		return nil, err
	}

	// An omitted date keeps the stored one rather than resetting to now.
	dateOmitted := input.Date.IsZero()
	if err := validateEarningInput(&input); err != nil {
		return nil, err
	}
	if dateOmitted {
		input.Date = earning.Date
	}

	earning.Date = input.Date
	earning.Description = input.Description
	earning.Category = input.Category
	earning.Value = input.Value

	if err := s.db.Save(earning).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return earning, nil
}

// DeleteEarning removes an earning
func (s *earningService) DeleteEarning(userID, earningID uint) error {
	earning, err := s.GetEarningByID(userID, earningID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(earning).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateEarningInput normalizes and validates writable earning fields.
// An absent category defaults to "other"; an absent date to now.
func validateEarningInput(input *EarningInput) error {
	if input.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if input.Category == "" {
		input.Category = models.EarningCategoryOther
	}
	if !input.Category.Valid() {
		return apperrors.ErrInvalidCategory
	}
	if input.Value <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "value must be greater than zero")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	return nil
}
