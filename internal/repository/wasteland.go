package repository

import "cleanup-backend/internal/models"

// CreateWasteland assigns the next id and stores the site.
func (s *Store) CreateWasteland(w models.Wasteland) models.Wasteland {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.ID = nextID(s.wastelands)
	s.wastelands[w.ID] = w.Clone()
	return w
}

// GetWasteland retrieves a wasteland snapshot by id
func (s *Store) GetWasteland(id int) (models.Wasteland, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wastelands[id]
	if !ok {
		return models.Wasteland{}, false
	}
	return w.Clone(), true
}

// UpdateWasteland replaces the full record by id, a no-op when absent.
func (s *Store) UpdateWasteland(w models.Wasteland) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wastelands[w.ID]; !ok {
		return
	}
	s.wastelands[w.ID] = w.Clone()
}

// DeleteWasteland removes a wasteland by id, a no-op when absent.
func (s *Store) DeleteWasteland(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.wastelands, id)
}

// ListWastelands returns wasteland snapshots ordered by id
func (s *Store) ListWastelands() []models.Wasteland {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := sortedValues(s.wastelands)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// MutateWasteland applies fn to the stored record under the write lock,
// keeping the reported -> cleaned transition atomic. Returns false when
// the id is absent.
func (s *Store) MutateWasteland(id int, fn func(*models.Wasteland)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wastelands[id]
	if !ok {
		return false
	}
	w = w.Clone()
	fn(&w)
	w.ID = id
	s.wastelands[id] = w
	return true
}
