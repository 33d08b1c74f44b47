// Package query holds the stateless filtering, sorting, and pagination
// helpers applied to store snapshots.
package query

import (
	"sort"
	"strings"
	"time"

	"cleanup-backend/internal/models"
)

// Range is the half-open pagination window [From, To).
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Page slices items by the range with standard clamping. A nil range
// returns the whole set; a From past the end yields an empty slice.
func Page[T any](items []T, r *Range) []T {
	if r == nil {
		return items
	}
	from, to := r.From, r.To
	if from < 0 {
		from = 0
	}
	if to > len(items) {
		to = len(items)
	}
	if from >= to {
		return []T{}
	}
	return items[from:to]
}

// Region is a rectangular bounding box: center plus full lat/lon spans.
type Region struct {
	Center         models.Coordinates `json:"center"`
	LatitudeDelta  float64            `json:"latitude_delta"`
	LongitudeDelta float64            `json:"longitude_delta"`
}

// Contains reports whether the point lies within the region, bounds
// inclusive.
func (r Region) Contains(p models.Coordinates) bool {
	latHalf := r.LatitudeDelta / 2
	lonHalf := r.LongitudeDelta / 2
	return p.Latitude >= r.Center.Latitude-latHalf &&
		p.Latitude <= r.Center.Latitude+latHalf &&
		p.Longitude >= r.Center.Longitude-lonHalf &&
		p.Longitude <= r.Center.Longitude+lonHalf
}

// matchPhrase is a case-sensitive substring test against any of the
// given fields. An empty phrase matches everything.
func matchPhrase(phrase string, fields ...string) bool {
	if phrase == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(f, phrase) {
			return true
		}
	}
	return false
}

// WastelandFilter selects litter sites.
type WastelandFilter struct {
	Phrase     string  `json:"phrase,omitempty"`
	Region     *Region `json:"region,omitempty"`
	OnlyActive bool    `json:"only_active,omitempty"`
}

// Wastelands applies the filter to a snapshot.
func Wastelands(sites []models.Wasteland, f WastelandFilter) []models.Wasteland {
	out := make([]models.Wasteland, 0, len(sites))
	for _, w := range sites {
		if !matchPhrase(f.Phrase, w.Description, w.Place.Address) {
			continue
		}
		if f.Region != nil && !f.Region.Contains(w.Place.Location) {
			continue
		}
		if f.OnlyActive && w.Cleaned() {
			continue
		}
		out = append(out, w)
	}
	return out
}

// DumpsterFilter selects dumpsters.
type DumpsterFilter struct {
	Phrase string  `json:"phrase,omitempty"`
	Region *Region `json:"region,omitempty"`
}

// Dumpsters applies the filter to a snapshot.
func Dumpsters(dumpsters []models.Dumpster, f DumpsterFilter) []models.Dumpster {
	out := make([]models.Dumpster, 0, len(dumpsters))
	for _, d := range dumpsters {
		if !matchPhrase(f.Phrase, d.Description, d.Place.Address) {
			continue
		}
		if f.Region != nil && !f.Region.Contains(d.Place.Location) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// EventFilter selects events.
type EventFilter struct {
	Phrase     string     `json:"phrase,omitempty"`
	Region     *Region    `json:"region,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	OnlyActive bool       `json:"only_active,omitempty"`
}

// Events applies the filter to a snapshot and orders the result with the
// legacy comparator.
func Events(events []models.Event, f EventFilter, now time.Time) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !matchPhrase(f.Phrase, e.Name, e.Description, e.MeetPlace.Address) {
			continue
		}
		if f.Region != nil && !f.Region.Contains(e.MeetPlace.Location) {
			continue
		}
		if f.From != nil && e.EndDate.Before(*f.From) {
			continue
		}
		if f.To != nil && e.StartDate.After(*f.To) {
			continue
		}
		if f.OnlyActive && e.EndDate.Before(now) {
			continue
		}
		out = append(out, e)
	}
	// Legacy ordering: one event's start is compared against the other's
	// end, which is not a total order. Kept for parity with the data the
	// clients already expect.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].EndDate)
	})
	return out
}

// UserFilter selects users for the leaderboard.
type UserFilter struct {
	Phrase string `json:"phrase,omitempty"`
}

// Users applies the filter, ranks by score descending, and redacts
// private fields from the returned projections.
func Users(users []models.User, f UserFilter) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if !matchPhrase(f.Phrase, u.Handle) {
			continue
		}
		out = append(out, u.Redacted())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}

// Messages clips an event's message list to an optional date range.
func Messages(msgs []models.Message, from, to *time.Time) []models.Message {
	out := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		if from != nil && m.SentAt.Before(*from) {
			continue
		}
		if to != nil && m.SentAt.After(*to) {
			continue
		}
		out = append(out, m)
	}
	return out
}
