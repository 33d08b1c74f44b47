package repository

import "cleanup-backend/internal/models"

// CreateDumpster assigns the next id and stores the dumpster.
func (s *Store) CreateDumpster(d models.Dumpster) models.Dumpster {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = nextID(s.dumpsters)
	s.dumpsters[d.ID] = d.Clone()
	return d
}

// GetDumpster retrieves a dumpster snapshot by id
func (s *Store) GetDumpster(id int) (models.Dumpster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dumpsters[id]
	if !ok {
		return models.Dumpster{}, false
	}
	return d.Clone(), true
}

// UpdateDumpster replaces the full record by id, a no-op when absent.
func (s *Store) UpdateDumpster(d models.Dumpster) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dumpsters[d.ID]; !ok {
		return
	}
	s.dumpsters[d.ID] = d.Clone()
}

// DeleteDumpster removes a dumpster by id, a no-op when absent.
func (s *Store) DeleteDumpster(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.dumpsters, id)
}

// ListDumpsters returns dumpster snapshots ordered by id
func (s *Store) ListDumpsters() []models.Dumpster {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := sortedValues(s.dumpsters)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}
