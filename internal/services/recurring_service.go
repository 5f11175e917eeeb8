package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// recurringService materializes monthly instances of fixed-expense templates.
//
// Templates are identified by the template ID assigned when recurrence was
// first enabled, so renaming or repricing an instance does not break the
// chain. Each run guarantees at most one instance per template in the
// current calendar month, which makes re-runs within a month no-ops.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

// Run materializes the current month's instances for every user's templates.
// Per-template failures are logged and counted; the batch never aborts early.
func (s *recurringService) Run(now time.Time) *RunReport {
	return s.run(nil, now)
}

// RunForUser materializes the current month's instances for one user.
func (s *recurringService) RunForUser(userID uint, now time.Time) *RunReport {
	return s.run(&userID, now)
}

func (s *recurringService) run(userID *uint, now time.Time) *RunReport {
	log := logger.Get()
	report := &RunReport{}

	templateIDs, err := s.fetchTemplateIDs(userID)
	if err != nil {
		log.Errorw("failed to load fixed expense templates", "error", err)
		report.Failed++
		return report
	}

	report.Templates = len(templateIDs)
	log.Infow("processing fixed expense templates",
		"templates", len(templateIDs),
		"month", now.Format("2006-01"),
	)

	for _, templateID := range templateIDs {
		created, err := s.materialize(templateID, now)
		if err != nil {
			log.Errorw("failed to process fixed expense template",
				"template_id", templateID,
				"error", err,
			)
			report.Failed++
			continue
		}
		if created {
			report.Created++
		} else {
			report.Skipped++
		}
	}

	log.Infow("fixed expense run complete",
		"templates", report.Templates,
		"created", report.Created,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report
}

// fetchTemplateIDs returns the distinct template IDs present on fixed
// expense rows, optionally scoped to one user.
func (s *recurringService) fetchTemplateIDs(userID *uint) ([]string, error) {
	q := s.db.Model(&models.Expense{}).
		Where("is_fixed = ? AND template_id IS NOT NULL", true).
		Distinct("template_id")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var ids []string
	if err := q.Pluck("template_id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

// materialize ensures exactly one instance of the template exists for the
// month of now. Returns true when a new row was inserted.
func (s *recurringService) materialize(templateID string, now time.Time) (bool, error) {
	latest, err := s.latestInstance(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Template IDs came from existing rows, so this should not
			// happen; skip rather than fail the batch.
			return false, nil
		}
		return false, err
	}

	// The user turned recurrence off on the latest instance: stop here.
	if !latest.IsFixed {
		return false, nil
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	exists, err := s.instanceExistsInRange(templateID, monthStart, nextMonth)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	instance := &models.Expense{
		UserID:        latest.UserID,
		Date:          monthStart,
		Category:      latest.Category,
		Description:   latest.Description,
		UnitValue:     latest.UnitValue,
		Quantity:      latest.Quantity,
		TotalValue:    latest.TotalValue,
		Installments:  latest.Installments,
		IsFixed:       true,
		IsPaid:        false, // payment status resets every cycle
		PaymentMethod: latest.PaymentMethod,
		Account:       latest.Account,
		Location:      latest.Location,
		Notes:         latest.Notes,
		TemplateID:    latest.TemplateID,
	}
	if err := s.db.Create(instance).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return true, nil
}

// latestInstance returns the most recently dated row of a template.
func (s *recurringService) latestInstance(templateID string) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.Where("template_id = ?", templateID).
		Order("date DESC, id DESC").
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// instanceExistsInRange reports whether the template already has a row dated
// within [from, to).
func (s *recurringService) instanceExistsInRange(templateID string, from, to time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Expense{}).
		Where("template_id = ? AND date >= ? AND date < ?", templateID, from, to).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
