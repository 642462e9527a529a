package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/clock"
)

// CapturePolicy decides once per page load whether the modal is shown. The
// 24h gate is checked on mount; the captured-lead gate when the delay expires.
type CapturePolicy struct {
	deps  WidgetDeps
	store entity.LeadStoreInterface
	open  func(ctx context.Context) bool

	mu      sync.Mutex
	timer   clock.Timer
	stopped bool
}

func NewCapturePolicy(deps WidgetDeps, store entity.LeadStoreInterface, open func(ctx context.Context) bool) *CapturePolicy {
	return &CapturePolicy{
		deps:  deps.withDefaults(),
		store: store,
		open:  open,
	}
}

// Mount schedules the delayed open unless the modal was shown in the last 24h.
// It reports whether an open was scheduled.
func (p *CapturePolicy) Mount(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || p.timer != nil {
		return false
	}
	if p.store.WasShownRecently(ctx) {
		log.Println("⏸️ Capture policy: shown in the last 24h, not scheduling")
		return false
	}

	p.timer = p.deps.Clock.AfterFunc(p.deps.OpenDelay, func() { p.fire(ctx) })
	return true
}

func (p *CapturePolicy) fire(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || p.timer == nil {
		return
	}
	p.timer = nil

	if p.store.HasAnyLead(ctx) {
		log.Println("⏸️ Capture policy: lead already captured, suppressing modal")
		return
	}

	p.open(ctx)
	if err := p.store.MarkShown(ctx, p.deps.Clock.Now()); err != nil {
		log.Printf("⚠️ Capture policy: failed to mark modal as shown: %v", err)
	}
}

// Cancel drops a pending open without tearing the policy down.
func (p *CapturePolicy) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *CapturePolicy) Scheduled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timer != nil
}

// Teardown cancels the pending open. Once it returns the policy never opens
// the modal nor writes to the store.
func (p *CapturePolicy) Teardown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopped = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
