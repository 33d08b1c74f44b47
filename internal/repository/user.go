package repository

import (
	"strings"

	"cleanup-backend/internal/models"
)

// CreateUser assigns the next id and stores the user, returning the copy.
func (s *Store) CreateUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = nextID(s.users)
	s.users[u.ID] = u
	return u
}

// GetUser retrieves a user snapshot by id
func (s *Store) GetUser(id int) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

// UpdateUser replaces the full record by id, a no-op when absent.
func (s *Store) UpdateUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return
	}
	s.users[u.ID] = u
}

// DeleteUser removes a user by id, a no-op when absent.
func (s *Store) DeleteUser(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
}

// ListUsers returns all users ordered by id
func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.users)
}

// FindUserByEmail looks a user up by exact email match
func (s *Store) FindUserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// FindUserByHandle looks a user up by handle, case-insensitively.
func (s *Store) FindUserByHandle(handle string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Handle, handle) {
			return u, true
		}
	}
	return models.User{}, false
}

// MutateUser applies fn to the stored record under the write lock.
// Returns false when the id is absent.
func (s *Store) MutateUser(id int, fn func(*models.User)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return false
	}
	fn(&u)
	u.ID = id
	s.users[id] = u
	return true
}
