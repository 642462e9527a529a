package mail

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/http/middleware"
)

const (
	ServiceSMTP   = "smtp"
	ServiceResend = "resend"
)

// Provider sends one rendered template and returns the provider status and message id.
type Provider interface {
	Send(ctx context.Context, templateID string, params TemplateParams) (status int, messageID string, err error)
}

// Gateway maps a submission onto the configured provider. Without real
// credentials it runs in demo mode and reports success without sending.
type Gateway struct {
	config    GatewayConfig
	providers map[string]Provider
}

func NewGateway(cfg GatewayConfig, providers map[string]Provider) *Gateway {
	return &Gateway{config: cfg, providers: providers}
}

// DemoMode reports whether the service or template id is unset or a placeholder.
func (g *Gateway) DemoMode() bool {
	return isPlaceholder(g.config.ServiceID) || isPlaceholder(g.config.TemplateID)
}

func isPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.HasPrefix(strings.ToUpper(v), "YOUR_")
}

// Send never returns an error: provider failures are folded into the result.
func (g *Gateway) Send(ctx context.Context, sub entity.Submission) (result entity.DeliveryResult) {
	if g.DemoMode() {
		log.Printf("🧪 Email: demo mode, skipping delivery to %s", sub.Email)
		middleware.RecordDelivery("demo")
		return entity.DeliveryResult{Success: true, MessageID: entity.DemoMessageID}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Email: provider panicked: %v", r)
			middleware.RecordDelivery("failed")
			result = entity.DeliveryResult{Success: false, Error: fmt.Sprint(r)}
		}
	}()

	provider, ok := g.providers[g.config.ServiceID]
	if !ok {
		middleware.RecordDelivery("failed")
		return entity.DeliveryResult{Success: false, Error: fmt.Sprintf("unknown email service %q", g.config.ServiceID)}
	}

	params := TemplateParams{
		ToEmail:   sub.Email,
		UserName:  sub.FirstName,
		Country:   sub.CountryOrDefault(),
		Language:  sub.Language,
		GuideLink: g.config.GuideLink,
		Timestamp: sub.Timestamp.UTC().Format(time.RFC3339),
	}

	status, messageID, err := provider.Send(ctx, g.config.TemplateID, params)
	if err != nil {
		log.Printf("❌ Email: delivery to %s failed: %v", sub.Email, err)
		middleware.RecordDelivery("failed")
		return entity.DeliveryResult{Success: false, Error: err.Error()}
	}

	log.Printf("✅ Email: guide sent to %s (status %d, id %s)", sub.Email, status, messageID)
	middleware.RecordDelivery("sent")
	return entity.DeliveryResult{Success: true, MessageID: messageID}
}
