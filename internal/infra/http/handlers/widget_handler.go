package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/usecase"
)

type WidgetHandler struct {
	Sessions    *usecase.SessionManager
	rateLimiter *RateLimiter
}

func NewWidgetHandler(sessions *usecase.SessionManager, rateLimiter *RateLimiter) *WidgetHandler {
	return &WidgetHandler{
		Sessions:    sessions,
		rateLimiter: rateLimiter,
	}
}

// Routes registers the widget endpoints on r.
func (h *WidgetHandler) Routes(r chi.Router) {
	r.Get("/countries", h.ListCountries)
	r.Post("/sessions", h.MountSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.UnmountSession)
		r.Post("/open", h.OpenModal)
		r.Post("/close", h.CloseModal)
		r.Patch("/form", h.EditForm)
		r.Post("/submit", h.SubmitForm)
		r.Get("/events", h.ListEvents)
	})
}

type MountSessionRequest struct {
	VisitorID string `json:"visitor_id"`
	Language  string `json:"language,omitempty"`
}

func (h *WidgetHandler) MountSession(w http.ResponseWriter, r *http.Request) {
	var req MountSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	language := req.Language
	if language == "" {
		language = r.Header.Get("Accept-Language")
	}

	session, err := h.Sessions.Mount(req.VisitorID, language)
	if err != nil {
		h.writeError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusCreated, session.View())
}

func (h *WidgetHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

func (h *WidgetHandler) UnmountSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Teardown(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WidgetHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Open())
}

func (h *WidgetHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Close())
}

func (h *WidgetHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var patch usecase.FieldsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	view, err := session.Edit(patch)
	if err != nil {
		h.writeError(w, err, &view)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *WidgetHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if h.rateLimiter != nil && !h.rateLimiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	view, err := session.Submit(r.Context())
	if err != nil {
		h.writeError(w, err, &view)
		return
	}

	if view.Form != nil && view.Form.State == usecase.StateError {
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   "DELIVERY_FAILED",
			Message: view.Form.Message,
			Session: &view,
		})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *WidgetHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	events := session.Events()
	if events == nil {
		events = []entity.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *WidgetHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"countries": entity.Countries})
}

func (h *WidgetHandler) session(w http.ResponseWriter, r *http.Request) (*usecase.Session, bool) {
	session, err := h.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err, nil)
		return nil, false
	}
	return session, true
}

func (h *WidgetHandler) writeError(w http.ResponseWriter, err error, view *usecase.SessionView) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: verr.Message,
			Field:   verr.Field,
			Session: view,
		})
		return
	}

	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusConflict
		switch de {
		case usecase.ErrSessionNotFound:
			status = http.StatusNotFound
		case usecase.ErrVisitorRequired:
			status = http.StatusBadRequest
		}
		writeJSON(w, status, ErrorResponse{Error: de.Code, Message: de.Message, Session: view})
		return
	}

	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}
