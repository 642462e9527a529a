package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/clock"
	"github.com/xavierca1/lead-magnet/internal/infra/http/middleware"
)

const (
	KeyModalShown    = "lead_magnet_shown"
	KeyLastShown     = "lead_magnet_last_shown"
	KeyCapturedLeads = "lead_magnet_captured_leads"
	KeyEvents        = "lead_magnet_events"
)

// LeadStore keeps one visitor's widget state in a KeyValue backend.
// Read failures of any kind degrade to the empty value.
type LeadStore struct {
	kv        KeyValue
	namespace string
	clock     clock.Clock
}

func NewLeadStore(kv KeyValue, visitorID string, clk clock.Clock) *LeadStore {
	return &LeadStore{
		kv:        kv,
		namespace: "visitor:" + visitorID + ":",
		clock:     clk,
	}
}

func (s *LeadStore) key(name string) string {
	return s.namespace + name
}

func (s *LeadStore) HasLead(ctx context.Context, email string) bool {
	email = entity.NormalizeEmail(email)
	for _, captured := range s.capturedLeads(ctx) {
		if captured == email {
			return true
		}
	}
	return false
}

func (s *LeadStore) HasAnyLead(ctx context.Context) bool {
	return len(s.capturedLeads(ctx)) > 0
}

func (s *LeadStore) RecordLead(ctx context.Context, email string) error {
	email = entity.NormalizeEmail(email)
	leads := s.capturedLeads(ctx)
	for _, captured := range leads {
		if captured == email {
			return nil
		}
	}
	return s.writeJSON(ctx, KeyCapturedLeads, append(leads, email))
}

func (s *LeadStore) WasShownRecently(ctx context.Context) bool {
	var lastShown time.Time
	if !s.readJSON(ctx, KeyLastShown, &lastShown) {
		return false
	}
	gate := entity.DisplayGate{LastShownAt: &lastShown, Shown: true}
	return gate.ShownRecently(s.clock.Now())
}

func (s *LeadStore) MarkShown(ctx context.Context, now time.Time) error {
	if err := s.writeJSON(ctx, KeyModalShown, true); err != nil {
		return err
	}
	return s.writeJSON(ctx, KeyLastShown, now.UTC())
}

func (s *LeadStore) AppendEvent(ctx context.Context, name string, props map[string]string) error {
	events := entity.AppendBounded(s.Events(ctx), entity.Event{
		Name:       name,
		Timestamp:  s.clock.Now().UTC(),
		Properties: props,
	}, entity.MaxEvents)
	return s.writeJSON(ctx, KeyEvents, events)
}

func (s *LeadStore) Events(ctx context.Context) []entity.Event {
	var events []entity.Event
	if !s.readJSON(ctx, KeyEvents, &events) {
		return nil
	}
	return events
}

func (s *LeadStore) capturedLeads(ctx context.Context) []string {
	var leads []string
	if !s.readJSON(ctx, KeyCapturedLeads, &leads) {
		return nil
	}
	return leads
}

// readJSON decodes the value under name into dst. It reports false when the key
// is missing or unreadable; dst must then be ignored.
func (s *LeadStore) readJSON(ctx context.Context, name string, dst any) bool {
	raw, found, err := s.kv.Get(ctx, s.key(name))
	if err != nil {
		log.Printf("⚠️ Storage: failed to read %s: %v", s.key(name), err)
		middleware.RecordStorageError("read")
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("⚠️ Storage: corrupt value under %s, treating as empty: %v", s.key(name), err)
		middleware.RecordStorageError("decode")
		return false
	}
	return true
}

func (s *LeadStore) writeJSON(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key(name), string(body)); err != nil {
		middleware.RecordStorageError("write")
		return err
	}
	return nil
}
