package models

// MonthlyIncome holds the declared income for one calendar month.
// Value is in cents. One row per (user, year, month).
type MonthlyIncome struct {
	Base
	UserID uint  `gorm:"not null;uniqueIndex:idx_income_user_month" json:"user_id"`
	Year   int   `gorm:"not null;uniqueIndex:idx_income_user_month" json:"year"`
	Month  int   `gorm:"not null;uniqueIndex:idx_income_user_month" json:"month"`
	Value  int64 `gorm:"type:bigint;not null" json:"value"`
}
