package models

import "time"

// PasswordReset stores a short-lived password reset code for a user.
// Codes live in the database rather than process memory so that resets
// survive restarts and multi-instance deployments. A code is single-use:
// UsedAt is set when the reset completes.
type PasswordReset struct {
	Base
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Code      string     `gorm:"not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// Valid reports whether the code can still be redeemed at the given time.
func (p *PasswordReset) Valid(now time.Time) bool {
	return p.UsedAt == nil && now.Before(p.ExpiresAt)
}
