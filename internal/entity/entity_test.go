package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailShape(t *testing.T) {
	valid := []string{"ana@example.com", "a.b+c@sub.example.co.uk", "x@y.z"}
	invalid := []string{"", "ana", "ana@example", "@example.com", "ana@.com", "an a@example.com", "ana@exa mple.com", "ana@@example.com"}

	for _, e := range valid {
		assert.True(t, IsEmailShape(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsEmailShape(e), e)
	}
}

func TestAppendBoundedEvictsOldest(t *testing.T) {
	var log []Event
	for i := 0; i < 5; i++ {
		log = AppendBounded(log, Event{Name: string(rune('a' + i))}, 3)
	}

	assert.Len(t, log, 3)
	assert.Equal(t, "c", log[0].Name)
	assert.Equal(t, "e", log[2].Name)
}

func TestDisplayGateShownRecently(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.False(t, DisplayGate{}.ShownRecently(now))

	shown := now.Add(-ShownWindow)
	assert.True(t, DisplayGate{LastShownAt: &shown}.ShownRecently(now))

	shown = now.Add(-ShownWindow - time.Millisecond)
	assert.False(t, DisplayGate{LastShownAt: &shown}.ShownRecently(now))
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "spain", NormalizeCountry(" Spain "))
	assert.Equal(t, "", NormalizeCountry("Atlantis"))
	assert.Equal(t, CountryNotSpecified, Submission{}.CountryOrDefault())
	assert.Equal(t, "italy", Submission{CountryOfInterest: "italy"}.CountryOrDefault())
}
