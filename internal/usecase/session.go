package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/lead-magnet/internal/entity"
)

// StoreFactory returns the persisted state of one visitor.
type StoreFactory func(visitorID string) entity.LeadStoreInterface

// Session is one page view of the widget: a capture policy plus a modal.
type Session struct {
	ID        string
	VisitorID string
	Language  string

	ctx    context.Context
	cancel context.CancelFunc
	deps   WidgetDeps
	store  entity.LeadStoreInterface
	policy *CapturePolicy
	modal  *Modal

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.deps.Clock.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) View() SessionView {
	view := SessionView{
		ID:            s.ID,
		VisitorID:     s.VisitorID,
		Language:      s.Language,
		ModalOpen:     s.modal.IsOpen(),
		OpenScheduled: s.policy.Scheduled(),
	}
	if form := s.modal.Form(); form != nil {
		fv := form.View()
		view.Form = &fv
	}
	return view
}

// Open shows the modal right away, replacing any pending delayed open.
func (s *Session) Open() SessionView {
	s.touch()
	s.policy.Cancel()
	if s.modal.Open(s.ctx) {
		if err := s.store.MarkShown(s.ctx, s.deps.Clock.Now()); err != nil {
			log.Printf("⚠️ Session %s: failed to mark modal as shown: %v", s.ID, err)
		}
	}
	return s.View()
}

func (s *Session) Close() SessionView {
	s.touch()
	s.modal.Close()
	return s.View()
}

func (s *Session) Edit(patch FieldsPatch) (SessionView, error) {
	s.touch()
	form := s.modal.Form()
	if form == nil {
		return s.View(), ErrModalNotOpen
	}
	if _, err := form.Edit(patch); err != nil {
		return s.View(), err
	}
	return s.View(), nil
}

func (s *Session) Submit(ctx context.Context) (SessionView, error) {
	s.touch()
	form := s.modal.Form()
	if form == nil {
		return s.View(), ErrModalNotOpen
	}
	_, err := form.Submit(ctx)
	return s.View(), err
}

// Events returns the visitor's persisted event log.
func (s *Session) Events() []entity.Event {
	return s.store.Events(s.ctx)
}

func (s *Session) teardown() {
	s.policy.Teardown()
	s.modal.Teardown()
	s.cancel()
}

// SessionManager tracks the live widget sessions.
type SessionManager struct {
	deps   WidgetDeps
	stores StoreFactory

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(deps WidgetDeps, stores StoreFactory) *SessionManager {
	return &SessionManager{
		deps:     deps.withDefaults(),
		stores:   stores,
		sessions: make(map[string]*Session),
	}
}

// Mount starts a session for a page load and runs the capture policy.
func (m *SessionManager) Mount(visitorID, locale string) (*Session, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return nil, ErrVisitorRequired
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:        uuid.New().String(),
		VisitorID: visitorID,
		Language:  m.deps.Translator.Match(locale),
		ctx:       ctx,
		cancel:    cancel,
		deps:      m.deps,
		store:     m.stores(visitorID),
		lastSeen:  m.deps.Clock.Now(),
	}
	s.modal = NewModal(m.deps, s.store, s.Language, func() {
		log.Printf("👋 Session %s: modal dismissed", s.ID)
	})
	s.policy = NewCapturePolicy(m.deps, s.store, s.modal.Open)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	s.policy.Mount(ctx)
	return s, nil
}

func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Teardown unmounts a session, cancelling both of its timers.
func (m *SessionManager) Teardown(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.teardown()
	return nil
}

// ExpireIdle tears down sessions not used for longer than ttl and returns how many.
func (m *SessionManager) ExpireIdle(ttl time.Duration) int {
	cutoff := m.deps.Clock.Now().Add(-ttl)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.teardown()
	}
	return len(expired)
}

func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown tears down every session.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.teardown()
	}
}
