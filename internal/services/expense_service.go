package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/uuid"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense creates a new expense for a user. For fixed expenses a fresh
// template ID is assigned; the materializer carries it forward unchanged on
// every monthly instance.
func (s *expenseService) CreateExpense(userID uint, input ExpenseInput) (*models.Expense, error) {
	if err := validateExpenseInput(&input); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:        userID,
		Date:          input.Date,
		Category:      input.Category,
		Description:   input.Description,
		UnitValue:     input.UnitValue,
		Quantity:      input.Quantity,
		TotalValue:    input.TotalValue,
		Installments:  input.Installments,
		IsFixed:       input.IsFixed,
		PaymentMethod: input.PaymentMethod,
		Account:       input.Account,
		Location:      input.Location,
		Notes:         input.Notes,
	}

	if expense.IsFixed {
		id := uuid.New()
		expense.TemplateID = &id
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetUserExpenses retrieves a paginated, filtered list of expenses for a user.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.IsFixed != nil {
		q = q.Where("is_fixed = ?", *f.IsFixed)
	}
	if f.IsPaid != nil {
		q = q.Where("is_paid = ?", *f.IsPaid)
	}
	if f.PaymentMethod != nil {
		q = q.Where("payment_method = ?", *f.PaymentMethod)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	return q
}

// GetExpenseByID retrieves an expense by ID for a specific user
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense updates the writable fields of an expense. The purchase date
// is immutable: installment numbering always derives from it, so edits never
// renumber a plan. Toggling IsFixed off on the latest instance stops the
// recurrence; toggling it on assigns a template ID if the row never had one.
func (s *expenseService) UpdateExpense(userID, expenseID uint, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	input.Date = expense.Date // date edits are ignored
	if err := validateExpenseInput(&input); err != nil {
		return nil, err
	}

	expense.Category = input.Category
	expense.Description = input.Description
	expense.UnitValue = input.UnitValue
	expense.Quantity = input.Quantity
	expense.TotalValue = input.TotalValue
	expense.Installments = input.Installments
	expense.IsFixed = input.IsFixed
	expense.PaymentMethod = input.PaymentMethod
	expense.Account = input.Account
	expense.Location = input.Location
	expense.Notes = input.Notes

	if expense.IsFixed && expense.TemplateID == nil {
		id := uuid.New()
		expense.TemplateID = &id
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// MarkPaid marks an expense as paid on the given date.
func (s *expenseService) MarkPaid(userID, expenseID uint, paymentDate time.Time) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.IsPaid {
		return nil, apperrors.ErrExpenseAlreadyPaid
	}

	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	expense.IsPaid = true
	expense.PaymentDate = &paymentDate
	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense removes an expense. No cascading side effects: deleting one
// instance of a recurring template leaves the other instances untouched.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateExpenseInput normalizes and validates writable expense fields.
// TotalValue defaults to UnitValue × Quantity when not provided.
func validateExpenseInput(input *ExpenseInput) error {
	if input.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if !input.Category.Valid() {
		return apperrors.ErrInvalidCategory
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}
	if input.UnitValue < 0 || input.TotalValue < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "monetary values must not be negative")
	}
	if input.TotalValue == 0 {
		input.TotalValue = int64(math.Round(float64(input.UnitValue) * input.Quantity))
	}
	if input.TotalValue == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "total value must be greater than zero")
	}
	if input.Installments != nil && *input.Installments < 1 {
		return apperrors.ErrInvalidInstallments
	}
	return nil
}
