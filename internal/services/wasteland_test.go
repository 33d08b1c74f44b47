package services

import (
	"testing"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearWastelandNotifiesNearbySubscription(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")

	site, err := e.sites.CreateWasteland(CreateWastelandRequest{
		Place:       models.Place{Location: models.Coordinates{Latitude: 50.30, Longitude: 18.70}},
		Description: "tires by the river",
	})
	require.NoError(t, err)

	received, id := e.collect(models.Coordinates{Latitude: 50.30, Longitude: 18.70})

	_, err = e.sites.ClearWasteland(site.ID, nil, nil)
	require.NoError(t, err)

	cleared := 0
	for _, ev := range *received {
		if ev.Kind == models.ChangeSiteCleared {
			cleared++
			assert.Equal(t, models.EntityWasteland, ev.Entity)
			assert.Equal(t, site.ID, ev.EntityID)
		}
	}
	assert.Equal(t, 1, cleared, "exactly one site-cleared event within the geofence")

	// Move the subscription 10 km away and repeat: nothing arrives.
	far := offsetNorth(models.Coordinates{Latitude: 50.30, Longitude: 18.70}, 10000)
	require.NoError(t, e.hub.Update(id, models.AreaOfInterest{Center: far}))
	*received = nil

	_, err = e.sites.ClearWasteland(site.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, *received, "subscription 10 km away receives nothing")
}

func TestClearWastelandSetsRecordAndCounters(t *testing.T) {
	e := newTestEngine(t)
	bob := e.signUp(t, "bob", "b@x.com")
	alice := e.signUpAndLogin(t, "alice", "a@x.com")

	site, err := e.sites.CreateWasteland(CreateWastelandRequest{
		Place: models.Place{Location: models.Coordinates{Latitude: 50.30, Longitude: 18.70}},
	})
	require.NoError(t, err)
	assert.False(t, site.Cleaned())
	assert.Equal(t, alice.ID, site.ReporterID)

	cleaned, err := e.sites.ClearWasteland(site.ID, []int{bob.ID}, []string{"after.jpg"})
	require.NoError(t, err)
	require.True(t, cleaned.Cleaned())
	assert.Equal(t, []int{alice.ID, bob.ID}, cleaned.Cleanup.CleanerIDs)
	assert.Equal(t, []string{"after.jpg"}, cleaned.Cleanup.PhotoURLs)
	assert.False(t, cleaned.Cleanup.Date.Before(cleaned.CreatedAt), "creation date precedes cleanup date")

	aliceFresh, _ := e.store.GetUser(alice.ID)
	bobFresh, _ := e.store.GetUser(bob.ID)
	assert.Equal(t, 1, aliceFresh.ClearedSites)
	assert.Equal(t, 1, bobFresh.ClearedSites)
}

func TestReclearOverwritesRecord(t *testing.T) {
	e := newTestEngine(t)
	bob := e.signUp(t, "bob", "b@x.com")
	alice := e.signUpAndLogin(t, "alice", "a@x.com")

	site, err := e.sites.CreateWasteland(CreateWastelandRequest{
		Place: models.Place{Location: models.Coordinates{Latitude: 50.30, Longitude: 18.70}},
	})
	require.NoError(t, err)

	_, err = e.sites.ClearWasteland(site.ID, nil, nil)
	require.NoError(t, err)

	again, err := e.sites.ClearWasteland(site.ID, []int{bob.ID}, nil)
	require.NoError(t, err, "re-clearing an already-cleaned site is allowed")
	assert.Equal(t, []int{alice.ID, bob.ID}, again.Cleanup.CleanerIDs, "the prior record is overwritten")
}

func TestClearUnknownWasteland(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")

	_, err := e.sites.ClearWasteland(42, nil, nil)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestCreateWastelandPublishesAtPlace(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")

	received, _ := e.collect(models.Coordinates{Latitude: 50.30, Longitude: 18.70})

	site, err := e.sites.CreateWasteland(CreateWastelandRequest{
		Place: models.Place{Location: models.Coordinates{Latitude: 50.30, Longitude: 18.70}},
	})
	require.NoError(t, err)

	require.Len(t, *received, 1)
	assert.Equal(t, models.ChangeNewObject, (*received)[0].Kind)
	assert.Equal(t, site.ID, (*received)[0].EntityID)
}
