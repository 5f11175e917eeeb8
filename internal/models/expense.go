package models

import "time"

// ExpenseCategory represents the category of an expense
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryHousing       ExpenseCategory = "housing"
	CategoryUtilities     ExpenseCategory = "utilities"
	CategoryHealth        ExpenseCategory = "health"
	CategoryEducation     ExpenseCategory = "education"
	CategoryLeisure       ExpenseCategory = "leisure"
	CategoryClothing      ExpenseCategory = "clothing"
	CategorySubscriptions ExpenseCategory = "subscriptions"
	CategoryOther         ExpenseCategory = "other"
)

// Valid reports whether the category is one of the known expense categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryHousing, CategoryUtilities,
		CategoryHealth, CategoryEducation, CategoryLeisure, CategoryClothing,
		CategorySubscriptions, CategoryOther:
		return true
	}
	return false
}

// PaymentMethod represents how an expense was paid
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodPix          PaymentMethod = "pix"
	PaymentMethodOther        PaymentMethod = "other"
)

// Expense represents a single expense row. All monetary values are in cents.
//
// For multi-installment purchases (Installments > 1), TotalValue holds the
// FULL original purchase amount; the per-installment share is derived at
// read time from the purchase date and is never stored.
//
// Fixed expenses (IsFixed) act as recurring templates: each calendar month
// the materializer creates one instance per TemplateID, dated the first day
// of the month, with the paid flag reset. TemplateID is assigned once when
// recurrence is first enabled and carried forward unchanged.
type Expense struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Date          time.Time       `gorm:"not null" json:"date"`
	Category      ExpenseCategory `gorm:"not null" json:"category"`
	Description   string          `gorm:"not null" json:"description"`
	UnitValue     int64           `gorm:"type:bigint;not null" json:"unit_value"`
	Quantity      float64         `gorm:"not null;default:1" json:"quantity"`
	TotalValue    int64           `gorm:"type:bigint;not null" json:"total_value"`
	Installments  *int            `json:"installments,omitempty"`
	IsFixed       bool            `gorm:"default:false" json:"is_fixed"`
	IsPaid        bool            `gorm:"default:false" json:"is_paid"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Account       string          `json:"account"`
	Location      string          `json:"location"`
	Notes         string          `json:"notes"`
	TemplateID    *string         `gorm:"type:uuid;index" json:"template_id,omitempty"`
}

// InstallmentCount returns the number of installments, treating absent or
// non-positive values as a single-installment purchase.
func (e *Expense) InstallmentCount() int {
	if e.Installments == nil || *e.Installments < 1 {
		return 1
	}
	return *e.Installments
}

// EffectiveDate returns the date an expense counts against: the payment date
// for fixed expenses that have been paid this cycle, the purchase date
// otherwise.
func (e *Expense) EffectiveDate() time.Time {
	if e.IsFixed && e.IsPaid && e.PaymentDate != nil {
		return *e.PaymentDate
	}
	return e.Date
}
