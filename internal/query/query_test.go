package query

import (
	"testing"
	"time"

	"cleanup-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name string
		r    *Range
		want []int
	}{
		{"nil range returns everything", nil, []int{0, 1, 2, 3, 4}},
		{"plain window", &Range{From: 1, To: 3}, []int{1, 2}},
		{"to clamps to length", &Range{From: 3, To: 10}, []int{3, 4}},
		{"from past the end is empty", &Range{From: 7, To: 9}, []int{}},
		{"negative from clamps to zero", &Range{From: -2, To: 2}, []int{0, 1}},
		{"empty window", &Range{From: 2, To: 2}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Page(items, tt.r))
		})
	}
}

func TestRegionContainsInclusiveEdges(t *testing.T) {
	region := Region{
		Center:         models.Coordinates{Latitude: 50.0, Longitude: 18.0},
		LatitudeDelta:  1.0,
		LongitudeDelta: 2.0,
	}

	assert.True(t, region.Contains(models.Coordinates{Latitude: 50.0, Longitude: 18.0}))
	assert.True(t, region.Contains(models.Coordinates{Latitude: 50.5, Longitude: 18.0}), "north edge is inclusive")
	assert.True(t, region.Contains(models.Coordinates{Latitude: 49.5, Longitude: 17.0}), "south-west corner is inclusive")
	assert.False(t, region.Contains(models.Coordinates{Latitude: 50.51, Longitude: 18.0}))
	assert.False(t, region.Contains(models.Coordinates{Latitude: 50.0, Longitude: 19.01}))
}

func TestWastelandsFilter(t *testing.T) {
	sites := []models.Wasteland{
		{ID: 0, Description: "tires by the river", Place: models.Place{Address: "Gliwice"}},
		{ID: 1, Description: "Riverbank dump", Place: models.Place{Address: "Zabrze"}},
		{ID: 2, Description: "glass", Place: models.Place{Address: "river street"}, Cleanup: &models.CleanupRecord{}},
	}

	t.Run("phrase is case-sensitive substring", func(t *testing.T) {
		got := Wastelands(sites, WastelandFilter{Phrase: "river"})
		require.Len(t, got, 2)
		assert.Equal(t, 0, got[0].ID)
		assert.Equal(t, 2, got[1].ID, "address text also matches")
	})

	t.Run("empty phrase matches all", func(t *testing.T) {
		assert.Len(t, Wastelands(sites, WastelandFilter{}), 3)
	})

	t.Run("only active excludes cleaned sites", func(t *testing.T) {
		got := Wastelands(sites, WastelandFilter{OnlyActive: true})
		require.Len(t, got, 2)
		for _, w := range got {
			assert.False(t, w.Cleaned())
		}
	})
}

func TestDumpstersRegionFilter(t *testing.T) {
	dumpsters := []models.Dumpster{
		{ID: 0, Place: models.Place{Location: models.Coordinates{Latitude: 50.0, Longitude: 18.0}}},
		{ID: 1, Place: models.Place{Location: models.Coordinates{Latitude: 52.0, Longitude: 21.0}}},
	}
	region := &Region{
		Center:         models.Coordinates{Latitude: 50.0, Longitude: 18.0},
		LatitudeDelta:  1,
		LongitudeDelta: 1,
	}

	got := Dumpsters(dumpsters, DumpsterFilter{Region: region})
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].ID)
}

func TestEventsFilter(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	events := []models.Event{
		{ID: 0, Name: "Spring cleanup", StartDate: now.Add(-10 * day), EndDate: now.Add(-5 * day)},
		{ID: 1, Name: "Autumn cleanup", StartDate: now.Add(1 * day), EndDate: now.Add(2 * day)},
		{ID: 2, Name: "picnic", StartDate: now.Add(3 * day), EndDate: now.Add(4 * day)},
	}

	t.Run("only active excludes ended events", func(t *testing.T) {
		got := Events(events, EventFilter{OnlyActive: true}, now)
		require.Len(t, got, 2)
		for _, e := range got {
			assert.False(t, e.EndDate.Before(now))
		}
	})

	t.Run("date range clips both ends", func(t *testing.T) {
		from := now
		to := now.Add(3 * day)
		got := Events(events, EventFilter{From: &from, To: &to}, now)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 2, got[1].ID)
	})

	t.Run("phrase matches name", func(t *testing.T) {
		got := Events(events, EventFilter{Phrase: "cleanup"}, now)
		assert.Len(t, got, 2)
	})
}

func TestEventOrderingUsesLegacyComparator(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	// b starts before a ends, so the comparator places b first even
	// though a starts earlier.
	a := models.Event{ID: 0, Name: "a", StartDate: now, EndDate: now.Add(10 * day)}
	b := models.Event{ID: 1, Name: "b", StartDate: now.Add(1 * day), EndDate: now.Add(2 * day)}

	got := Events([]models.Event{b, a}, EventFilter{}, now)
	require.Len(t, got, 2)
	assert.True(t, got[0].StartDate.Before(got[1].EndDate))
}

func TestUsersRankingAndRedaction(t *testing.T) {
	users := []models.User{
		{ID: 0, Handle: "alice", Email: "a@x.com", Password: "pw", ClearedSites: 1, AddedDumpsters: 1, DeletedDumpsters: 5},
		{ID: 1, Handle: "bob", Email: "b@x.com", Password: "pw", ClearedSites: 5},
		{ID: 2, Handle: "carol", Email: "c@x.com", Password: "pw"},
	}

	got := Users(users, UserFilter{})
	require.Len(t, got, 3)

	assert.Equal(t, "bob", got[0].Handle, "highest score first")
	assert.Equal(t, "alice", got[1].Handle, "deleted dumpsters carry no weight")
	assert.Equal(t, "carol", got[2].Handle)

	for _, u := range got {
		assert.Empty(t, u.Email, "listing must redact email")
		assert.Empty(t, u.Password, "listing must redact password")
	}
}

func TestMessagesDateClip(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		{Content: "early", SentAt: base},
		{Content: "mid", SentAt: base.Add(time.Hour)},
		{Content: "late", SentAt: base.Add(2 * time.Hour)},
	}

	from := base.Add(30 * time.Minute)
	to := base.Add(90 * time.Minute)
	got := Messages(msgs, &from, &to)
	require.Len(t, got, 1)
	assert.Equal(t, "mid", got[0].Content)

	assert.Len(t, Messages(msgs, nil, nil), 3)
}
