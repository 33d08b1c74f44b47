package handlers

import (
	"encoding/json"
	"net/http"

	"cleanup-backend/internal/models"
	"cleanup-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// ListenerHandler manages notification subscriptions over HTTP. The
// push variant delivers matching change events via APNs.
type ListenerHandler struct {
	hub    *services.NotificationHub
	pusher *services.PushSender
}

// NewListenerHandler creates a new listener handler. pusher may be nil
// when APNs is not configured.
func NewListenerHandler(hub *services.NotificationHub, pusher *services.PushSender) *ListenerHandler {
	return &ListenerHandler{hub: hub, pusher: pusher}
}

// RegisterPushBody registers a push-backed listener
type RegisterPushBody struct {
	DeviceToken string  `json:"device_token"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// RegisterPush handles POST /api/v1/listeners/push
func (h *ListenerHandler) RegisterPush(w http.ResponseWriter, r *http.Request) {
	if h.pusher == nil {
		respondError(w, "Push notifications are not configured", http.StatusServiceUnavailable)
		return
	}

	var body RegisterPushBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.DeviceToken == "" {
		respondError(w, "device_token is required", http.StatusBadRequest)
		return
	}

	area := models.AreaOfInterest{
		Center: models.Coordinates{Latitude: body.Latitude, Longitude: body.Longitude},
	}
	id := h.hub.Register(area, h.pusher.Callback(body.DeviceToken))

	respondJSON(w, http.StatusCreated, map[string]int{"listener_id": id})
}

// UpdateListenerBody moves a listener's area of interest
type UpdateListenerBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateListener handles PUT /api/v1/listeners/{listener_id}
func (h *ListenerHandler) UpdateListener(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "listener_id"))
	if err != nil {
		respondError(w, "Invalid listener id", http.StatusBadRequest)
		return
	}

	var body UpdateListenerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	area := models.AreaOfInterest{
		Center: models.Coordinates{Latitude: body.Latitude, Longitude: body.Longitude},
	}
	if err := h.hub.Update(id, area); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveListener handles DELETE /api/v1/listeners/{listener_id}
func (h *ListenerHandler) RemoveListener(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "listener_id"))
	if err != nil {
		respondError(w, "Invalid listener id", http.StatusBadRequest)
		return
	}

	if err := h.hub.Remove(id); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
