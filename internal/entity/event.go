package entity

import "time"

// MaxEvents bounds the persisted event log; the oldest entries are evicted first.
const MaxEvents = 100

const (
	EventLeadCaptured     = "lead_captured"
	EventLeadMagnetViewed = "lead_magnet_viewed"
)

type Event struct {
	Name       string            `json:"event"`
	Timestamp  time.Time         `json:"timestamp"`
	Properties map[string]string `json:"properties,omitempty"`
}

// AppendBounded appends e to log and keeps only the most recent limit entries.
func AppendBounded(log []Event, e Event, limit int) []Event {
	log = append(log, e)
	if over := len(log) - limit; over > 0 {
		log = append([]Event(nil), log[over:]...)
	}
	return log
}
