package repository

import "cleanup-backend/internal/models"

// CreateEvent assigns the next id and stores the event.
func (s *Store) CreateEvent(e models.Event) models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = nextID(s.events)
	s.events[e.ID] = e.Clone()
	return e
}

// GetEvent retrieves an event snapshot by id
func (s *Store) GetEvent(id int) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return models.Event{}, false
	}
	return e.Clone(), true
}

// UpdateEvent replaces the full record by id, a no-op when absent.
func (s *Store) UpdateEvent(e models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[e.ID]; !ok {
		return
	}
	s.events[e.ID] = e.Clone()
}

// DeleteEvent removes an event by id, a no-op when absent.
func (s *Store) DeleteEvent(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, id)
}

// ListEvents returns event snapshots ordered by id
func (s *Store) ListEvents() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := sortedValues(s.events)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// MutateEvent applies fn to the stored record under the write lock, so
// membership transitions stay atomic. fn may return an error to abort
// the mutation. Returns (false, nil) when the id is absent.
func (s *Store) MutateEvent(id int, fn func(*models.Event) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return false, nil
	}
	e = e.Clone()
	if err := fn(&e); err != nil {
		return true, err
	}
	e.ID = id
	s.events[id] = e
	return true, nil
}

// AddInvitation appends an invitation. Duplicates are allowed.
func (s *Store) AddInvitation(inv models.Invitation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invitations = append(s.invitations, inv)
}

// InvitationsFor returns all invitations addressed to a user
func (s *Store) InvitationsFor(userID int) []models.Invitation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Invitation
	for _, inv := range s.invitations {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out
}
