package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	RecordLogin(userID uint) error
	UpdatePassword(userID uint, newPassword string) error
}

// PasswordResetServicer defines the contract for the password reset flow.
// Codes are persisted with an expiry so the flow survives restarts and
// multi-instance deployments.
type PasswordResetServicer interface {
	RequestReset(email string) error
	ResetPassword(code, newPassword string) error
}

// ExpenseInput carries the writable fields of an expense. Monetary values
// are in cents. TotalValue may be zero, in which case it is derived from
// UnitValue and Quantity.
type ExpenseInput struct {
	Date          time.Time
	Category      models.ExpenseCategory
	Description   string
	UnitValue     int64
	Quantity      float64
	TotalValue    int64
	Installments  *int
	IsFixed       bool
	PaymentMethod models.PaymentMethod
	Account       string
	Location      string
	Notes         string
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category      *models.ExpenseCategory
	IsFixed       *bool
	IsPaid        *bool
	PaymentMethod *models.PaymentMethod
	FromDate      *time.Time
	ToDate        *time.Time
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, input ExpenseInput) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, input ExpenseInput) (*models.Expense, error)
	MarkPaid(userID, expenseID uint, paymentDate time.Time) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// EarningInput carries the writable fields of an earning. Value is in cents.
type EarningInput struct {
	Date        time.Time
	Description string
	Category    models.EarningCategory
	Value       int64
}

// EarningFilter holds optional filter parameters for listing earnings.
type EarningFilter struct {
	Category *models.EarningCategory
	FromDate *time.Time
	ToDate   *time.Time
}

// EarningServicer defines the contract for earning-related business logic.
type EarningServicer interface {
	CreateEarning(userID uint, input EarningInput) (*models.Earning, error)
	GetUserEarnings(userID uint, page pagination.PageRequest, filter EarningFilter) (*pagination.PageResponse[models.Earning], error)
	GetEarningByID(userID, earningID uint) (*models.Earning, error)
	UpdateEarning(userID, earningID uint, input EarningInput) (*models.Earning, error)
	DeleteEarning(userID, earningID uint) error
}

// IncomeServicer defines the contract for monthly income bookkeeping.
type IncomeServicer interface {
	SetMonthlyIncome(userID uint, year, month int, value int64) (*models.MonthlyIncome, error)
	GetMonthlyIncome(userID uint, year, month int) (*models.MonthlyIncome, error)
}

// Summary aggregates a user's expense set. All values are in cents.
// Multi-installment purchases contribute their current installment value,
// never the full ticket price.
type Summary struct {
	TotalSpent int64            `json:"total_spent"`
	MonthSpent int64            `json:"month_spent"`
	FixedTotal int64            `json:"fixed_total"`
	Count      int              `json:"count"`
	ByCategory map[string]int64 `json:"by_category"`
}

// StatsServicer defines the contract for expense statistics aggregation.
type StatsServicer interface {
	GetSummary(userID uint, filter ExpenseFilter, now time.Time) (*Summary, error)
}

// RunReport summarizes one materializer run.
type RunReport struct {
	Templates int `json:"templates"`
	Created   int `json:"created"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// RecurringServicer defines the contract for the fixed-expense materializer.
type RecurringServicer interface {
	// Run materializes the current month's instance for every active fixed
	// expense template of every user. Per-template failures are logged and
	// counted, never fatal.
	Run(now time.Time) *RunReport
	// RunForUser does the same for a single user's templates.
	RunForUser(userID uint, now time.Time) *RunReport
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
