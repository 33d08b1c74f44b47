package services

import (
	"sync"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/geo"
	"cleanup-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultNotificationRadiusM is the geofence radius used when the
// config does not override it.
const DefaultNotificationRadiusM = 5000.0

// NotificationHub is the subscription registry and the broker fanning
// change events out to subscriptions near the mutation's location.
type NotificationHub struct {
	mu      sync.RWMutex
	subs    map[int]*subscription
	radiusM float64
}

type subscription struct {
	area    models.AreaOfInterest
	deliver func(models.ChangeEvent)
}

// NewNotificationHub creates a hub with the given geofence radius in
// meters; non-positive values fall back to the default.
func NewNotificationHub(radiusM float64) *NotificationHub {
	if radiusM <= 0 {
		radiusM = DefaultNotificationRadiusM
	}
	return &NotificationHub{
		subs:    make(map[int]*subscription),
		radiusM: radiusM,
	}
}

// Register adds a subscription and returns its id: max existing id + 1,
// 0 for an empty registry.
func (h *NotificationHub) Register(area models.AreaOfInterest, deliver func(models.ChangeEvent)) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := -1
	for k := range h.subs {
		if k > id {
			id = k
		}
	}
	id++
	h.subs[id] = &subscription{area: area, deliver: deliver}

	log.Info().Int("subscription_id", id).
		Float64("lat", area.Center.Latitude).
		Float64("lon", area.Center.Longitude).
		Msg("Listener registered")
	return id
}

// Update moves a subscription's area of interest in place.
func (h *NotificationHub) Update(id int, area models.AreaOfInterest) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subs[id]
	if !ok {
		return apperrors.NotFound("unknown subscription id")
	}
	sub.area = area
	return nil
}

// Remove drops a subscription.
func (h *NotificationHub) Remove(id int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[id]; !ok {
		return apperrors.NotFound("unknown subscription id")
	}
	delete(h.subs, id)

	log.Info().Int("subscription_id", id).Msg("Listener removed")
	return nil
}

// Publish fans the event out to every subscription whose area of
// interest lies within the geofence radius of the location. Events
// without a location are never delivered to anyone.
func (h *NotificationHub) Publish(ev models.ChangeEvent, loc *models.Coordinates) {
	if loc == nil {
		return
	}

	h.mu.RLock()
	targets := make([]func(models.ChangeEvent), 0, len(h.subs))
	for _, sub := range h.subs {
		if geo.Distance(sub.area.Center, *loc) <= h.radiusM {
			targets = append(targets, sub.deliver)
		}
	}
	h.mu.RUnlock()

	// Callbacks run outside the lock so a slow subscriber cannot block
	// registry mutations.
	for _, deliver := range targets {
		deliver(ev)
	}

	log.Debug().
		Str("kind", string(ev.Kind)).
		Str("entity", string(ev.Entity)).
		Int("entity_id", ev.EntityID).
		Int("delivered", len(targets)).
		Msg("Change event published")
}
