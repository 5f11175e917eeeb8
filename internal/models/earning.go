package models

import "time"

// EarningCategory represents the source of a one-off earning
type EarningCategory string

const (
	EarningCategorySalary     EarningCategory = "salary"
	EarningCategoryFreelance  EarningCategory = "freelance"
	EarningCategoryInvestment EarningCategory = "investment"
	EarningCategoryGift       EarningCategory = "gift"
	EarningCategoryRefund     EarningCategory = "refund"
	EarningCategoryOther      EarningCategory = "other"
)

// Valid reports whether the category is one of the known earning sources.
func (c EarningCategory) Valid() bool {
	switch c {
	case EarningCategorySalary, EarningCategoryFreelance, EarningCategoryInvestment,
		EarningCategoryGift, EarningCategoryRefund, EarningCategoryOther:
		return true
	}
	return false
}

// Earning represents money received outside the regular monthly income,
// such as freelance work, refunds, or gifts. Value is in cents.
type Earning struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `gorm:"not null" json:"description"`
	Category    EarningCategory `gorm:"not null;default:'other'" json:"category"`
	Value       int64           `gorm:"type:bigint;not null" json:"value"`
}
