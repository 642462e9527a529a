package analytics

import (
	"context"
	"log"

	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/clock"
)

// Sink receives analytics events. Implementations may fail; Tracker hides that.
type Sink interface {
	Track(ctx context.Context, event entity.Event) error
}

type SinkFunc func(ctx context.Context, event entity.Event) error

func (f SinkFunc) Track(ctx context.Context, event entity.Event) error {
	return f(ctx, event)
}

// Tracker forwards each event once to an optional sink and swallows its failures.
type Tracker struct {
	sink  Sink
	clock clock.Clock
}

func NewTracker(sink Sink, clk clock.Clock) *Tracker {
	return &Tracker{sink: sink, clock: clk}
}

func (t *Tracker) Track(ctx context.Context, name string, props map[string]string) {
	if t == nil || t.sink == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ Analytics: sink panicked on %s: %v", name, r)
		}
	}()

	event := entity.Event{
		Name:       name,
		Timestamp:  t.clock.Now().UTC(),
		Properties: props,
	}
	if err := t.sink.Track(ctx, event); err != nil {
		log.Printf("⚠️ Analytics: failed to track %s: %v", name, err)
	}
}
