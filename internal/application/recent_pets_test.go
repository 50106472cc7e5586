package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/application"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/viewmodel"
)

func TestRecentPets_TakesFirstThreeInServerOrder(t *testing.T) {
	gw := newFakeGateway()
	gw.listItems = []mascota.Mascota{
		{ID: 9, Name: "Rex", Species: mascota.SpeciesDog},
		{ID: 8, Name: "Luna", Species: mascota.SpeciesCat},
		{ID: 7, Name: "Piolín", Species: mascota.SpeciesOther},
		{ID: 6, Name: "Toby", Species: mascota.SpeciesDog},
	}
	view := viewmodel.New()
	recent := application.NewRecentPets(gw, view, zap.NewNop())

	require.NoError(t, recent.Refresh(context.Background()))

	state := view.Snapshot().Recent
	require.Len(t, state.Items, 3)
	assert.Equal(t, []application.PetSummary{
		{ID: 9, Icon: "🐕", Name: "Rex", Species: "perro"},
		{ID: 8, Icon: "🐱", Name: "Luna", Species: "gato"},
		{ID: 7, Icon: "🐾", Name: "Piolín", Species: "otro"},
	}, state.Items)
	assert.Empty(t, state.Placeholder)
	assert.False(t, state.Failed)
}

func TestRecentPets_EmptyShowsPlaceholder(t *testing.T) {
	gw := newFakeGateway()
	view := viewmodel.New()
	recent := application.NewRecentPets(gw, view, zap.NewNop())

	require.NoError(t, recent.Refresh(context.Background()))

	state := view.Snapshot().Recent
	assert.Empty(t, state.Items)
	assert.Equal(t, application.MsgNoRecent, state.Placeholder)
	assert.False(t, state.Failed)
}

func TestRecentPets_FetchFailureShowsErrorPlaceholder(t *testing.T) {
	gw := newFakeGateway()
	gw.listErr = &mascota.FetchError{StatusCode: 500}
	view := viewmodel.New()
	recent := application.NewRecentPets(gw, view, zap.NewNop())

	err := recent.Refresh(context.Background())
	require.Error(t, err)

	state := view.Snapshot().Recent
	assert.True(t, state.Failed)
	assert.Equal(t, mascota.MsgRecentFetchFailed, state.Placeholder)
	assert.NotEqual(t, application.MsgNoRecent, state.Placeholder)
}

func TestRecentPets_RefreshIsIdempotent(t *testing.T) {
	gw := newFakeGateway()
	gw.listItems = []mascota.Mascota{{ID: 1, Name: "Rex", Species: mascota.SpeciesDog}}
	view := viewmodel.New()
	recent := application.NewRecentPets(gw, view, zap.NewNop())

	require.NoError(t, recent.Refresh(context.Background()))
	first := view.Snapshot().Recent
	require.NoError(t, recent.Refresh(context.Background()))

	assert.Equal(t, first, view.Snapshot().Recent)
	assert.Equal(t, 2, gw.listCalls)
}
