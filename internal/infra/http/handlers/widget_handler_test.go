package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/clock"
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

type testServer struct {
	router  http.Handler
	clock   *clock.Manual
	gateway *MockGateway
	kv      *storage.MemoryKV
}

func newTestServer(t *testing.T, limiter *RateLimiter) *testServer {
	t.Helper()

	clk := clock.NewManual(time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC))
	kv := storage.NewMemoryKV()
	gateway := new(MockGateway)

	sessions := usecase.NewSessionManager(usecase.WidgetDeps{
		Gateway: gateway,
		Clock:   clk,
	}, func(visitorID string) entity.LeadStoreInterface {
		return storage.NewLeadStore(kv, visitorID, clk)
	})
	t.Cleanup(sessions.Shutdown)

	r := chi.NewRouter()
	r.Route("/widget", NewWidgetHandler(sessions, limiter).Routes)

	return &testServer{router: r, clock: clk, gateway: gateway, kv: kv}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) mount(t *testing.T, visitorID string) usecase.SessionView {
	t.Helper()

	w := s.do(t, http.MethodPost, "/widget/sessions", MountSessionRequest{VisitorID: visitorID, Language: "en-US"})
	require.Equal(t, http.StatusCreated, w.Code)

	var view usecase.SessionView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	return view
}

var validForm = map[string]any{
	"first_name":          "Ana",
	"email":               "ana@example.com",
	"country_of_interest": "portugal",
	"consent":             true,
}

func TestMountSessionSchedulesOpen(t *testing.T) {
	srv := newTestServer(t, nil)

	view := srv.mount(t, "visitor-1")

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "en", view.Language)
	assert.True(t, view.OpenScheduled)
	assert.False(t, view.ModalOpen)
	assert.Nil(t, view.Form)
}

func TestMountSessionRequiresVisitor(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/widget/sessions", MountSessionRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "VISITOR_REQUIRED", resp.Error)

	req := httptest.NewRequest(http.MethodPost, "/widget/sessions", bytes.NewReader([]byte("invalid json")))
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.gateway.On("Send", mock.Anything, mock.Anything).Return(entity.DeliveryResult{Success: true, MessageID: "msg-1"}).Once()
	view := srv.mount(t, "visitor-1")
	base := "/widget/sessions/" + view.ID

	w := srv.do(t, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	srv.clock.Advance(30 * time.Second)

	w = srv.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	require.True(t, view.ModalOpen)

	w = srv.do(t, http.MethodPatch, base+"/form", validForm)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, usecase.StateSuccess, view.Form.State)
	assert.Equal(t, "msg-1", view.Form.MessageID)

	w = srv.do(t, http.MethodGet, base+"/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events struct {
		Events []entity.Event `json:"events"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&events))
	require.Len(t, events.Events, 1)
	assert.Equal(t, entity.EventLeadCaptured, events.Events[0].Name)

	srv.clock.Advance(3 * time.Second)
	w = srv.do(t, http.MethodGet, base, nil)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.False(t, view.ModalOpen)
}

func TestSubmitValidationError(t *testing.T) {
	srv := newTestServer(t, nil)
	view := srv.mount(t, "visitor-1")
	base := "/widget/sessions/" + view.ID

	srv.do(t, http.MethodPost, base+"/open", nil)
	srv.do(t, http.MethodPatch, base+"/form", map[string]any{"first_name": "A", "email": "ana@example.com", "consent": true})

	w := srv.do(t, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error)
	assert.Equal(t, "first_name", resp.Field)
	require.NotNil(t, resp.Session)
	assert.Equal(t, resp.Message, resp.Session.Form.Message)
	srv.gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitDeliveryFailure(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.gateway.On("Send", mock.Anything, mock.Anything).Return(entity.DeliveryResult{Success: false, Error: "provider rejected"}).Once()
	view := srv.mount(t, "visitor-1")
	base := "/widget/sessions/" + view.ID

	srv.do(t, http.MethodPost, base+"/open", nil)
	srv.do(t, http.MethodPatch, base+"/form", validForm)

	w := srv.do(t, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "DELIVERY_FAILED", resp.Error)
	assert.Equal(t, "provider rejected", resp.Message)
	assert.Equal(t, usecase.StateError, resp.Session.Form.State)
}

func TestSubmitIsRateLimited(t *testing.T) {
	srv := newTestServer(t, NewRateLimiter(1, time.Minute))
	view := srv.mount(t, "visitor-1")
	base := "/widget/sessions/" + view.ID

	w := srv.do(t, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(t, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestUnmountSession(t *testing.T) {
	srv := newTestServer(t, nil)
	view := srv.mount(t, "visitor-1")

	w := srv.do(t, http.MethodDelete, "/widget/sessions/"+view.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, srv.clock.Pending())

	w = srv.do(t, http.MethodGet, "/widget/sessions/"+view.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCountries(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/widget/countries", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Countries []string `json:"countries"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, entity.Countries, resp.Countries)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type connState bool

func (c connState) IsClosed() bool { return bool(c) }

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(pinger{}, connState(false), true, func() int { return 3 })
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 3, resp.ActiveSessions)
	assert.Equal(t, "demo mode", resp.Dependencies["email"])

	h = NewHealthHandler(pinger{err: errors.New("refused")}, nil, false, nil)
	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("1.1.1.1"))

	now = now.Add(3 * time.Minute)
	assert.Equal(t, 2, rl.cleanup())
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(req))
}
