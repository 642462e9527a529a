package entity

import (
	"context"
	"time"
)

// ShownWindow is how long a displayed modal keeps the prompt closed for the visitor.
const ShownWindow = 24 * time.Hour

// Lead is a captured email. It is never updated nor removed once recorded.
type Lead struct {
	Email      string    `json:"email"`
	CapturedAt time.Time `json:"captured_at"`
}

// DisplayGate is the persisted state consulted before opening the modal.
type DisplayGate struct {
	LastShownAt *time.Time `json:"last_shown_at,omitempty"`
	Shown       bool       `json:"shown"`
}

// ShownRecently reports whether the modal was displayed within ShownWindow of now.
func (g DisplayGate) ShownRecently(now time.Time) bool {
	if g.LastShownAt == nil {
		return false
	}
	return now.Sub(*g.LastShownAt) <= ShownWindow
}

// LeadStoreInterface is the visitor-scoped persisted state used by the widget.
// Reads never fail: corrupt or unreachable storage reads as empty.
type LeadStoreInterface interface {
	HasLead(ctx context.Context, email string) bool
	HasAnyLead(ctx context.Context) bool
	RecordLead(ctx context.Context, email string) error

	WasShownRecently(ctx context.Context) bool
	MarkShown(ctx context.Context, now time.Time) error

	AppendEvent(ctx context.Context, name string, props map[string]string) error
	Events(ctx context.Context) []Event
}
