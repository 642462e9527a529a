package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/lead-magnet/internal/entity"
	"github.com/xavierca1/lead-magnet/internal/usecase"
)

func TestModalEmitsViewedOncePerOpen(t *testing.T) {
	f := newFixture(t)
	closes := 0
	modal := usecase.NewModal(f.deps, f.store, "en", func() { closes++ })

	assert.Nil(t, modal.Form())

	assert.True(t, modal.Open(context.Background()))
	assert.False(t, modal.Open(context.Background()))
	assert.Equal(t, 1, f.tracker.count(entity.EventLeadMagnetViewed))

	modal.Close()
	modal.Close()
	assert.Equal(t, 1, closes)
	assert.False(t, modal.IsOpen())

	assert.True(t, modal.Open(context.Background()))
	assert.Equal(t, 2, f.tracker.count(entity.EventLeadMagnetViewed))
}

func TestModalReopenStartsFreshForm(t *testing.T) {
	f := newFixture(t)
	modal := usecase.NewModal(f.deps, f.store, "en", nil)

	modal.Open(context.Background())
	_, err := modal.Form().Edit(usecase.FieldsPatch{FirstName: ptr("Ana")})
	require.NoError(t, err)
	first := modal.Form()

	modal.Close()
	modal.Open(context.Background())

	assert.NotSame(t, first, modal.Form())
	assert.Equal(t, usecase.StateForm, modal.Form().View().State)
	assert.Empty(t, modal.Form().View().Fields.FirstName)

	_, err = first.Edit(usecase.FieldsPatch{FirstName: ptr("Bob")})
	assert.ErrorIs(t, err, usecase.ErrFormClosed)
}

func TestModalTeardownSkipsCloseCallback(t *testing.T) {
	f := newFixture(t)
	modal := usecase.NewModal(f.deps, f.store, "en", func() { t.Fatal("close callback on teardown") })

	modal.Open(context.Background())
	modal.Teardown()

	assert.False(t, modal.IsOpen())
}
