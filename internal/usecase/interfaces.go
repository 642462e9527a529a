package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/clock"
	"github.com/xavierca1/lead-magnet/internal/infra/i18n"
)

const (
	DefaultOpenDelay      = 30 * time.Second
	DefaultAutoCloseDelay = 3 * time.Second
)

type DeliveryGateway interface {
	Send(ctx context.Context, sub entity.Submission) entity.DeliveryResult
}

type AnalyticsTracker interface {
	Track(ctx context.Context, name string, props map[string]string)
}

// WidgetDeps are the collaborators shared by every widget session.
type WidgetDeps struct {
	Gateway        DeliveryGateway
	Tracker        AnalyticsTracker
	Clock          clock.Clock
	Translator     i18n.Translator
	OpenDelay      time.Duration
	AutoCloseDelay time.Duration
}

func (d WidgetDeps) withDefaults() WidgetDeps {
	if d.Clock == nil {
		d.Clock = clock.System()
	}
	if d.Translator == nil {
		d.Translator = i18n.Default()
	}
	if d.OpenDelay <= 0 {
		d.OpenDelay = DefaultOpenDelay
	}
	if d.AutoCloseDelay <= 0 {
		d.AutoCloseDelay = DefaultAutoCloseDelay
	}
	return d
}

func (d WidgetDeps) track(ctx context.Context, name string, props map[string]string) {
	if d.Tracker != nil {
		d.Tracker.Track(ctx, name, props)
	}
}
