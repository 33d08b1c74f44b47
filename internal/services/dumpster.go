package services

import (
	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"
	"cleanup-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// DumpsterService handles dumpster CRUD and the owner counters.
type DumpsterService struct {
	store *repository.Store
	gate  *SessionGate
	hub   *NotificationHub
}

// NewDumpsterService creates a new dumpster service
func NewDumpsterService(store *repository.Store, gate *SessionGate, hub *NotificationHub) *DumpsterService {
	return &DumpsterService{
		store: store,
		gate:  gate,
		hub:   hub,
	}
}

// CreateDumpsterRequest carries the data for a new dumpster.
type CreateDumpsterRequest struct {
	Place       models.Place `json:"place"`
	Description string       `json:"description"`
	PhotoURLs   []string     `json:"photo_urls,omitempty"`
}

// GetDumpsters returns filtered, paginated dumpsters.
func (s *DumpsterService) GetDumpsters(filter query.DumpsterFilter, r *query.Range) ([]models.Dumpster, error) {
	dumpsters := query.Dumpsters(s.store.ListDumpsters(), filter)
	return query.Page(dumpsters, r), nil
}

// CreateDumpster adds a dumpster owned by the current user and bumps
// their added-dumpsters counter.
func (s *DumpsterService) CreateDumpster(req CreateDumpsterRequest) (models.Dumpster, error) {
	if err := s.gate.Authorize(); err != nil {
		return models.Dumpster{}, err
	}
	current, _ := s.gate.CurrentUser()

	dumpster := s.store.CreateDumpster(models.Dumpster{
		Place:       req.Place,
		Description: req.Description,
		PhotoURLs:   req.PhotoURLs,
		OwnerID:     current.ID,
	})

	s.store.MutateUser(current.ID, func(u *models.User) {
		u.AddedDumpsters++
	})

	log.Info().Int("dumpster_id", dumpster.ID).Int("owner_id", current.ID).Msg("Dumpster added")

	loc := dumpster.Place.Location
	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeNewObject,
		Entity:   models.EntityDumpster,
		EntityID: dumpster.ID,
	}, &loc)

	return dumpster, nil
}

// UpdateDumpster replaces the full record by id.
func (s *DumpsterService) UpdateDumpster(d models.Dumpster) (models.Dumpster, error) {
	if err := s.gate.Authorize(); err != nil {
		return models.Dumpster{}, err
	}

	if _, ok := s.store.GetDumpster(d.ID); !ok {
		return models.Dumpster{}, apperrors.NotFound("unknown dumpster id")
	}
	s.store.UpdateDumpster(d)

	loc := d.Place.Location
	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeObjectUpdated,
		Entity:   models.EntityDumpster,
		EntityID: d.ID,
	}, &loc)

	return d, nil
}

// DeleteDumpster removes a dumpster and bumps the current user's
// deleted-dumpsters counter.
func (s *DumpsterService) DeleteDumpster(id int) error {
	if err := s.gate.Authorize(); err != nil {
		return err
	}
	current, _ := s.gate.CurrentUser()

	stored, ok := s.store.GetDumpster(id)
	if !ok {
		return apperrors.NotFound("unknown dumpster id")
	}
	s.store.DeleteDumpster(id)

	s.store.MutateUser(current.ID, func(u *models.User) {
		u.DeletedDumpsters++
	})

	log.Info().Int("dumpster_id", id).Msg("Dumpster deleted")

	loc := stored.Place.Location
	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeObjectDeleted,
		Entity:   models.EntityDumpster,
		EntityID: id,
	}, &loc)

	return nil
}
