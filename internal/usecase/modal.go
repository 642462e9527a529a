package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/http/middleware"
)

// Modal presents a fresh FormController per open. When closed it holds no
// form and no timers.
type Modal struct {
	deps     WidgetDeps
	store    entity.LeadStoreInterface
	language string
	onClose  func()

	mu   sync.Mutex
	form *FormController
}

func NewModal(deps WidgetDeps, store entity.LeadStoreInterface, language string, onClose func()) *Modal {
	return &Modal{
		deps:     deps.withDefaults(),
		store:    store,
		language: language,
		onClose:  onClose,
	}
}

// Open shows the modal. Only the closed→open transition emits the viewed
// event; it reports whether that transition happened.
func (m *Modal) Open(ctx context.Context) bool {
	m.mu.Lock()
	if m.form != nil {
		m.mu.Unlock()
		return false
	}
	m.form = NewFormController(m.deps, m.store, m.language, m.Close)
	m.mu.Unlock()

	m.deps.track(ctx, entity.EventLeadMagnetViewed, map[string]string{
		"timestamp": m.deps.Clock.Now().UTC().Format(time.RFC3339),
		"language":  m.language,
	})
	middleware.RecordModalView()
	log.Printf("👀 Lead magnet opened (%s)", m.language)
	return true
}

// Close dismisses the modal and invokes the close callback. Closing a closed
// modal does nothing.
func (m *Modal) Close() {
	if !m.dismiss() {
		return
	}
	if m.onClose != nil {
		m.onClose()
	}
}

// Teardown drops the form without invoking the close callback.
func (m *Modal) Teardown() {
	m.dismiss()
}

func (m *Modal) dismiss() bool {
	m.mu.Lock()
	form := m.form
	m.form = nil
	m.mu.Unlock()

	if form == nil {
		return false
	}
	form.Teardown()
	return true
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form != nil
}

// Form returns the active controller, or nil when the modal is closed.
func (m *Modal) Form() *FormController {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}
