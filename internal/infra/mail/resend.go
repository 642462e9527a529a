package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers the guide through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, templateID string, params TemplateParams) (int, string, error) {
	subject, body, err := render(templateID, params)
	if err != nil {
		return 0, "", err
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{params.ToEmail},
		Subject: subject,
		Html:    body,
	})
	if err != nil {
		return 0, "", fmt.Errorf("resend send failed: %w", err)
	}

	return http.StatusOK, sent.Id, nil
}
