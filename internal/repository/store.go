package repository

import (
	"sort"
	"sync"

	"cleanup-backend/internal/models"
)

// Store owns the authoritative in-memory collections. A single mutex
// serializes every access, so id allocation and read-modify-write
// sequences are atomic with respect to each other.
type Store struct {
	mu          sync.RWMutex
	users       map[int]models.User
	dumpsters   map[int]models.Dumpster
	wastelands  map[int]models.Wasteland
	events      map[int]models.Event
	invitations []models.Invitation
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:      make(map[int]models.User),
		dumpsters:  make(map[int]models.Dumpster),
		wastelands: make(map[int]models.Wasteland),
		events:     make(map[int]models.Event),
	}
}

// nextID returns max existing id + 1, or 0 for an empty collection.
// Callers must hold the write lock.
func nextID[T any](m map[int]T) int {
	id := -1
	for k := range m {
		if k > id {
			id = k
		}
	}
	return id + 1
}

// sortedValues returns the collection's values ordered by ascending id,
// so listings and pagination are stable across calls.
func sortedValues[T any](m map[int]T) []T {
	ids := make([]int, 0, len(m))
	for k := range m {
		ids = append(ids, k)
	}
	sort.Ints(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
