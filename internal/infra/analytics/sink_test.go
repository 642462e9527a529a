package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/infra/clock"
)

func TestTrackerForwardsEventOnce(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))

	var got []entity.Event
	tracker := NewTracker(SinkFunc(func(_ context.Context, e entity.Event) error {
		got = append(got, e)
		return nil
	}), clk)

	tracker.Track(context.Background(), entity.EventLeadMagnetViewed, map[string]string{"language": "en"})

	require.Len(t, got, 1)
	assert.Equal(t, entity.EventLeadMagnetViewed, got[0].Name)
	assert.Equal(t, clk.Now(), got[0].Timestamp)
	assert.Equal(t, "en", got[0].Properties["language"])
}

func TestTrackerSwallowsFailures(t *testing.T) {
	clk := clock.System()

	failing := NewTracker(SinkFunc(func(context.Context, entity.Event) error {
		return errors.New("broker down")
	}), clk)
	panicking := NewTracker(SinkFunc(func(context.Context, entity.Event) error {
		panic("boom")
	}), clk)

	assert.NotPanics(t, func() {
		failing.Track(context.Background(), "x", nil)
		panicking.Track(context.Background(), "x", nil)
		NewTracker(nil, clk).Track(context.Background(), "x", nil)
		(*Tracker)(nil).Track(context.Background(), "x", nil)
	})
}
