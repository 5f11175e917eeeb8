package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/mailer"
	"fintrack/internal/models"
)

const resetCodeLength = 8

// passwordResetService handles the password reset flow. Reset codes are
// stored in their own table with an expiry, not in process memory.
type passwordResetService struct {
	db          *gorm.DB
	userService UserServicer
	mailer      mailer.Mailer
	codeTTL     time.Duration
}

// NewPasswordResetService creates a new PasswordResetServicer.
func NewPasswordResetService(db *gorm.DB, userService UserServicer, m mailer.Mailer, codeTTL time.Duration) PasswordResetServicer {
	return &passwordResetService{
		db:          db,
		userService: userService,
		mailer:      m,
		codeTTL:     codeTTL,
	}
}

// RequestReset generates a reset code for the account with the given email
// and mails it. It returns nil even when no such account exists, so the
// endpoint cannot be used to probe registered addresses.
func (s *passwordResetService) RequestReset(email string) error {
	user, err := s.userService.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Get().Infow("password reset requested for unknown email", "email", email)
			return nil
		}
		return err
	}

	code, err := generateRandomCode(resetCodeLength)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	reset := &models.PasswordReset{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}
	if err := s.db.Create(reset).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendPasswordResetCode(user.Email, code); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ResetPassword redeems a reset code and sets the new password. The code is
// single-use and must not be expired.
func (s *passwordResetService) ResetPassword(code, newPassword string) error {
	var reset models.PasswordReset
	if err := s.db.Where("code = ?", code).Order("id DESC").First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetCode
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	if reset.UsedAt != nil {
		return apperrors.ErrInvalidResetCode
	}
	if !now.Before(reset.ExpiresAt) {
		return apperrors.ErrResetCodeExpired
	}

	if err := s.userService.UpdatePassword(reset.UserID, newPassword); err != nil {
		return err
	}

	reset.UsedAt = &now
	if err := s.db.Save(&reset).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// generateRandomCode generates a random alphanumeric code of specified length
func generateRandomCode(length int) (string, error) {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	code := hex.EncodeToString(bytes)[:length]
	return code, nil
}
