// Package mailer delivers transactional email, currently only the password
// reset code message.
package mailer

import (
	"fmt"
	"net/smtp"

	"fintrack/internal/logger"
)

// Mailer sends transactional email.
type Mailer interface {
	SendPasswordResetCode(to, code string) error
}

// SMTPMailer sends mail through a plain SMTP relay using AUTH PLAIN.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// NewSMTPMailer creates a Mailer backed by the given SMTP relay.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, From: from}
}

// SendPasswordResetCode emails a password reset code to the given address.
func (m *SMTPMailer) SendPasswordResetCode(to, code string) error {
	subject := "Your password reset code"
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\n"+
			"Your reset code is: %s\r\n\r\n"+
			"If you did not request this, you can ignore this message.\r\n", code)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.From, to, subject, body)

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}

	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send reset email to %s: %w", to, err)
	}
	return nil
}

// LogMailer logs the reset code instead of sending mail. Used in development
// when no SMTP relay is configured.
type LogMailer struct{}

// SendPasswordResetCode logs the code at warn level so it stands out in dev output.
func (LogMailer) SendPasswordResetCode(to, code string) error {
	logger.Get().Warnw("SMTP not configured, logging password reset code instead",
		"to", to,
		"code", code,
	)
	return nil
}
