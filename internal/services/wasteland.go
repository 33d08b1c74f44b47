package services

import (
	"time"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"
	"cleanup-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// WastelandService handles litter-site reporting and cleanup.
type WastelandService struct {
	store *repository.Store
	gate  *SessionGate
	hub   *NotificationHub
	now   func() time.Time
}

// NewWastelandService creates a new wasteland service
func NewWastelandService(store *repository.Store, gate *SessionGate, hub *NotificationHub) *WastelandService {
	return &WastelandService{
		store: store,
		gate:  gate,
		hub:   hub,
		now:   time.Now,
	}
}

// CreateWastelandRequest carries the data for a newly reported site.
type CreateWastelandRequest struct {
	Place       models.Place `json:"place"`
	Description string       `json:"description"`
	PhotoURLs   []string     `json:"photo_urls,omitempty"`
}

// GetWastelands returns filtered, paginated litter sites.
func (s *WastelandService) GetWastelands(filter query.WastelandFilter, r *query.Range) ([]models.Wasteland, error) {
	sites := query.Wastelands(s.store.ListWastelands(), filter)
	return query.Page(sites, r), nil
}

// CreateWasteland reports a new litter site with the current user as
// reporter.
func (s *WastelandService) CreateWasteland(req CreateWastelandRequest) (models.Wasteland, error) {
	if err := s.gate.Authorize(); err != nil {
		return models.Wasteland{}, err
	}
	current, _ := s.gate.CurrentUser()

	site := s.store.CreateWasteland(models.Wasteland{
		Place:       req.Place,
		Description: req.Description,
		PhotoURLs:   req.PhotoURLs,
		CreatedAt:   s.now(),
		ReporterID:  current.ID,
	})

	log.Info().Int("wasteland_id", site.ID).Msg("Wasteland reported")

	loc := site.Place.Location
	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeNewObject,
		Entity:   models.EntityWasteland,
		EntityID: site.ID,
	}, &loc)

	return site, nil
}

// ClearWasteland marks a site as cleaned, attaching the cleaner list,
// the cleanup date, and after-photos. Clearing an already-cleaned site
// overwrites the previous record. Every cleaner's cleared-sites counter
// is bumped.
func (s *WastelandService) ClearWasteland(id int, otherCleanerIDs []int, photoURLs []string) (models.Wasteland, error) {
	if err := s.gate.Authorize(); err != nil {
		return models.Wasteland{}, err
	}
	current, _ := s.gate.CurrentUser()

	cleanerIDs := append([]int{current.ID}, otherCleanerIDs...)

	var loc models.Coordinates
	ok := s.store.MutateWasteland(id, func(w *models.Wasteland) {
		w.Cleanup = &models.CleanupRecord{
			CleanerIDs: cleanerIDs,
			Date:       s.now(),
			PhotoURLs:  photoURLs,
		}
		loc = w.Place.Location
	})
	if !ok {
		return models.Wasteland{}, apperrors.NotFound("unknown wasteland id")
	}

	for _, cleanerID := range cleanerIDs {
		s.store.MutateUser(cleanerID, func(u *models.User) {
			u.ClearedSites++
		})
	}

	log.Info().Int("wasteland_id", id).Ints("cleaner_ids", cleanerIDs).Msg("Wasteland cleared")

	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeSiteCleared,
		Entity:   models.EntityWasteland,
		EntityID: id,
	}, &loc)

	site, _ := s.store.GetWasteland(id)
	return site, nil
}
