package mail

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPStatusOK is reported for messages the SMTP server accepted.
const SMTPStatusOK = 250

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(cfg SMTPConfig) *EmailSender {
	return &EmailSender{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// NewEmailSenderWithDialer is used where the SMTP transport is replaced, e.g. tests.
func NewEmailSenderWithDialer(cfg SMTPConfig, d Dialer) *EmailSender {
	return &EmailSender{config: cfg, dialer: d}
}

func (s *EmailSender) Send(ctx context.Context, templateID string, params TemplateParams) (int, string, error) {
	if err := ctx.Err(); err != nil {
		return 0, "", err
	}

	subject, body, err := render(templateID, params)
	if err != nil {
		return 0, "", err
	}

	messageID := uuid.New().String()

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", params.ToEmail)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", "<"+messageID+"@lead-magnet>")
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return 0, "", fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return SMTPStatusOK, messageID, nil
}
