package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/clock"
	"github.com/xavierca1/lead-magnet/internal/infra/http/middleware"
	"github.com/xavierca1/lead-magnet/internal/infra/i18n"
)

// FormController owns one modal instance's form. Success is terminal; Error
// stays interactive. At most one delivery is in flight per controller.
type FormController struct {
	deps     WidgetDeps
	store    entity.LeadStoreInterface
	language string
	onClose  func()

	mu         sync.Mutex
	fields     FormFields
	state      FormState
	loading    bool
	message    string
	messageID  string
	closeTimer clock.Timer
	closed     bool
}

func NewFormController(deps WidgetDeps, store entity.LeadStoreInterface, language string, onClose func()) *FormController {
	return &FormController{
		deps:     deps.withDefaults(),
		store:    store,
		language: language,
		onClose:  onClose,
		state:    StateForm,
	}
}

func (f *FormController) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *FormController) viewLocked() FormView {
	return FormView{
		State:     f.state,
		Fields:    f.fields,
		Loading:   f.loading,
		Message:   f.message,
		MessageID: f.messageID,
	}
}

// Edit applies a field change. Any visible error is cleared right away.
func (f *FormController) Edit(patch FieldsPatch) (FormView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return f.viewLocked(), ErrFormClosed
	}
	if f.state == StateSuccess {
		return f.viewLocked(), ErrFormCompleted
	}

	f.fields = patch.apply(f.fields)
	if f.state == StateError || f.message != "" {
		f.state = StateForm
		f.message = ""
	}
	return f.viewLocked(), nil
}

// Submit validates the form and, when valid, delivers the guide. Validation
// failures are returned as *ValidationError with the message set on the view.
func (f *FormController) Submit(ctx context.Context) (FormView, error) {
	f.mu.Lock()
	if err := f.rejectLocked(); err != nil {
		view := f.viewLocked()
		f.mu.Unlock()
		return view, err
	}

	if verr := ValidateLeadForm(ctx, f.fields, f.store); verr != nil {
		verr.Message = f.t(verr.Code)
		f.state = StateForm
		f.message = verr.Message
		view := f.viewLocked()
		f.mu.Unlock()
		return view, verr
	}

	sub := entity.Submission{
		FirstName:         strings.TrimSpace(f.fields.FirstName),
		Email:             entity.NormalizeEmail(f.fields.Email),
		CountryOfInterest: f.fields.Country,
		Consent:           f.fields.Consent,
		Language:          f.language,
		Timestamp:         f.deps.Clock.Now().UTC(),
	}
	f.loading = true
	f.message = ""
	f.mu.Unlock()

	result, err := f.deliver(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false

	if f.closed {
		log.Printf("⚠️ Form: delivery for %s finished after the form was closed, ignoring", sub.Email)
		return f.viewLocked(), ErrFormClosed
	}

	if err != nil {
		log.Printf("❌ Form: unexpected failure delivering to %s: %v", sub.Email, err)
		f.state = StateError
		f.message = f.t(i18n.KeyGeneric)
		return f.viewLocked(), nil
	}
	if !result.Success {
		f.state = StateError
		f.message = result.Error
		if f.message == "" {
			f.message = f.t(i18n.KeyGeneric)
		}
		return f.viewLocked(), nil
	}

	f.captureLocked(context.WithoutCancel(ctx), sub)
	f.state = StateSuccess
	f.message = f.t(i18n.KeySuccess)
	f.messageID = result.MessageID
	f.closeTimer = f.deps.Clock.AfterFunc(f.deps.AutoCloseDelay, f.autoClose)

	return f.viewLocked(), nil
}

func (f *FormController) rejectLocked() error {
	switch {
	case f.closed:
		return ErrFormClosed
	case f.state == StateSuccess:
		return ErrFormCompleted
	case f.loading:
		return ErrSubmitInProgress
	}
	return nil
}

// deliver turns a panicking gateway into an error.
func (f *FormController) deliver(ctx context.Context, sub entity.Submission) (result entity.DeliveryResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delivery panicked: %v", r)
		}
	}()
	return f.deps.Gateway.Send(ctx, sub), nil
}

func (f *FormController) captureLocked(ctx context.Context, sub entity.Submission) {
	if err := f.store.RecordLead(ctx, sub.Email); err != nil {
		log.Printf("⚠️ Form: failed to record lead %s: %v", sub.Email, err)
	}

	props := map[string]string{
		"email":    sub.Email,
		"country":  sub.CountryOfInterest,
		"language": sub.Language,
	}
	if err := f.store.AppendEvent(ctx, entity.EventLeadCaptured, props); err != nil {
		log.Printf("⚠️ Form: failed to append %s event: %v", entity.EventLeadCaptured, err)
	}
	f.deps.track(ctx, entity.EventLeadCaptured, props)

	middleware.RecordLeadCaptured()
	log.Printf("🎯 Lead captured: %s (%s)", sub.Email, sub.Language)
}

func (f *FormController) autoClose() {
	f.mu.Lock()
	if f.closed || f.closeTimer == nil {
		f.mu.Unlock()
		return
	}
	f.closeTimer = nil
	f.closed = true
	onClose := f.onClose
	f.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// Teardown cancels the auto-close timer. After it returns the close callback
// is never invoked and in-flight delivery results are discarded.
func (f *FormController) Teardown() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	if f.closeTimer != nil {
		f.closeTimer.Stop()
		f.closeTimer = nil
	}
}

func (f *FormController) t(key string) string {
	return f.deps.Translator.T(f.language, i18n.Namespace, key)
}
