package handlers

import (
	"encoding/json"
	"net/http"

	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"
	"cleanup-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// GetEvents handles GET /api/v1/events
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	filter := query.EventFilter{
		Phrase:     r.URL.Query().Get("phrase"),
		Region:     parseRegion(r),
		From:       parseTime(r, "date_from"),
		To:         parseTime(r, "date_to"),
		OnlyActive: r.URL.Query().Get("only_active") == "true",
	}
	withMembers := r.URL.Query().Get("with_members") == "true"

	events, err := h.eventService.GetEvents(filter, parseRange(r), withMembers)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/v1/events/{event_id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "event_id"))
	if err != nil {
		respondError(w, "Invalid event id", http.StatusBadRequest)
		return
	}
	withMembers := r.URL.Query().Get("with_members") == "true"

	event, err := h.eventService.GetEventByID(id, withMembers)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// CreateEventBody wraps the event data and the invitee list
type CreateEventBody struct {
	services.CreateEventRequest
	InviteeIDs []int `json:"invitee_ids,omitempty"`
}

// CreateEvent handles POST /api/v1/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var body CreateEventBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.CreateEvent(body.CreateEventRequest, body.InviteeIDs)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// UpdateEvent handles PUT /api/v1/events/{event_id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "event_id"))
	if err != nil {
		respondError(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	event.ID = id

	updated, err := h.eventService.UpdateEvent(event)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteEvent handles DELETE /api/v1/events/{event_id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "event_id"))
	if err != nil {
		respondError(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	if err := h.eventService.DeleteEvent(id); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// JoinEvent handles POST /api/v1/events/{event_id}/join
func (h *EventHandler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "event_id"))
	if err != nil {
		respondError(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	if err := h.eventService.JoinEvent(id); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LeaveEvent handles POST /api/v1/events/{event_id}/leave
func (h *EventHandler) LeaveEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "event_id"))
	if err != nil {
		respondError(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	if err := h.eventService.LeaveEvent(id); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMessages handles GET /api/v1/events/{event_id}/messages
func (h *EventHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "event_id"))
	if err != nil {
		respondError(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	messages, err := h.eventService.GetEventMessages(id, parseTime(r, "date_from"), parseTime(r, "date_to"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

// SendMessageBody carries a new event message
type SendMessageBody struct {
	Content   string   `json:"content"`
	PhotoURLs []string `json:"photo_urls,omitempty"`
}

// SendMessage handles POST /api/v1/events/{event_id}/messages
func (h *EventHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "event_id"))
	if err != nil {
		respondError(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	var body SendMessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.eventService.SendEventMessage(id, body.Content, body.PhotoURLs); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMyInvitations handles GET /api/v1/invitations
func (h *EventHandler) GetMyInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.eventService.MyInvitations()
	if err != nil {
		respondAppError(w, err)
		return
	}
	if invitations == nil {
		invitations = []models.Invitation{}
	}
	respondJSON(w, http.StatusOK, invitations)
}

// SendInvitation handles POST /api/v1/invitations
func (h *EventHandler) SendInvitation(w http.ResponseWriter, r *http.Request) {
	var inv models.Invitation
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sent, err := h.eventService.SendInvitation(inv)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sent)
}
