package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/clock"
	"github.com/xavierca1/lead-magnet/internal/infra/i18n"
	"github.com/xavierca1/lead-magnet/internal/infra/storage"
	"github.com/xavierca1/lead-magnet/internal/usecase"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(ctx context.Context, sub entity.Submission) entity.DeliveryResult {
	args := m.Called(ctx, sub)
	return args.Get(0).(entity.DeliveryResult)
}

// recordingTracker keeps every tracked event in memory.
type recordingTracker struct {
	mu     sync.Mutex
	events []entity.Event
}

func (r *recordingTracker) Track(_ context.Context, name string, props map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, entity.Event{Name: name, Properties: props})
}

func (r *recordingTracker) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

type fixture struct {
	clock   *clock.Manual
	kv      *storage.MemoryKV
	store   *storage.LeadStore
	gateway *MockGateway
	tracker *recordingTracker
	deps    usecase.WidgetDeps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := clock.NewManual(time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC))
	kv := storage.NewMemoryKV()
	f := &fixture{
		clock:   clk,
		kv:      kv,
		store:   storage.NewLeadStore(kv, "visitor-1", clk),
		gateway: new(MockGateway),
		tracker: &recordingTracker{},
	}
	f.deps = usecase.WidgetDeps{
		Gateway:    f.gateway,
		Tracker:    f.tracker,
		Clock:      clk,
		Translator: i18n.Default(),
	}
	return f
}

// stores hands out visitor-scoped stores over the fixture's backend;
// "visitor-1" shares its state with f.store.
func (f *fixture) stores(visitorID string) entity.LeadStoreInterface {
	return storage.NewLeadStore(f.kv, visitorID, f.clock)
}

func ptr[T any](v T) *T {
	return &v
}

func validPatch() usecase.FieldsPatch {
	return usecase.FieldsPatch{
		FirstName: ptr("Ana"),
		Email:     ptr("ana@example.com"),
		Country:   ptr("Spain"),
		Consent:   ptr(true),
	}
}
