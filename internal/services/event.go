package services

import (
	"time"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"
	"cleanup-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// EventService handles cleanup events, their membership lifecycle,
// messages, and invitations.
type EventService struct {
	store *repository.Store
	gate  *SessionGate
	hub   *NotificationHub
	now   func() time.Time
}

// NewEventService creates a new event service
func NewEventService(store *repository.Store, gate *SessionGate, hub *NotificationHub) *EventService {
	return &EventService{
		store: store,
		gate:  gate,
		hub:   hub,
		now:   time.Now,
	}
}

// CreateEventRequest carries the data for a new event.
type CreateEventRequest struct {
	Name         string       `json:"name"`
	IconURL      string       `json:"icon_url,omitempty"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	MeetPlace    models.Place `json:"meet_place"`
	Description  string       `json:"description"`
	WastelandIDs []int        `json:"wasteland_ids,omitempty"`
}

// GetEvents returns filtered, sorted, paginated events. Membership sets
// are stripped unless withMembers is set.
func (s *EventService) GetEvents(filter query.EventFilter, r *query.Range, withMembers bool) ([]models.Event, error) {
	events := query.Events(s.store.ListEvents(), filter, s.now())
	events = query.Page(events, r)
	if !withMembers {
		for i := range events {
			events[i].MemberIDs = nil
			events[i].AdminIDs = nil
		}
	}
	return events, nil
}

// GetEventByID returns a single event snapshot.
func (s *EventService) GetEventByID(id int, withMembers bool) (models.Event, error) {
	e, ok := s.store.GetEvent(id)
	if !ok {
		return models.Event{}, apperrors.NotFound("unknown event id")
	}
	if !withMembers {
		e.MemberIDs = nil
		e.AdminIDs = nil
	}
	return e, nil
}

// CreateEvent creates an event with the current user as its first
// member and admin, and records an invitation per invitee.
func (s *EventService) CreateEvent(req CreateEventRequest, inviteeIDs []int) (models.Event, error) {
	if err := s.gate.Authorize(); err != nil {
		return models.Event{}, err
	}
	if req.Name == "" {
		return models.Event{}, apperrors.InvalidData("event name is required")
	}
	if req.EndDate.Before(req.StartDate) {
		return models.Event{}, apperrors.InvalidData("event ends before it starts")
	}
	current, _ := s.gate.CurrentUser()

	event := s.store.CreateEvent(models.Event{
		Name:         req.Name,
		IconURL:      req.IconURL,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		MeetPlace:    req.MeetPlace,
		Description:  req.Description,
		WastelandIDs: req.WastelandIDs,
		MemberIDs:    []int{current.ID},
		AdminIDs:     []int{current.ID},
	})

	log.Info().Int("event_id", event.ID).Str("name", event.Name).Msg("Event created")

	loc := event.MeetPlace.Location
	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeNewObject,
		Entity:   models.EntityEvent,
		EntityID: event.ID,
	}, &loc)

	for _, inviteeID := range inviteeIDs {
		if _, err := s.SendInvitation(models.Invitation{EventID: event.ID, UserID: inviteeID}); err != nil {
			log.Warn().Err(err).Int("user_id", inviteeID).Msg("Failed to invite user")
		}
	}

	return event, nil
}

// UpdateEvent replaces the full event record. Only admins may update.
func (s *EventService) UpdateEvent(e models.Event) (models.Event, error) {
	if err := s.gate.Authorize(); err != nil {
		return models.Event{}, err
	}
	if e.EndDate.Before(e.StartDate) {
		return models.Event{}, apperrors.InvalidData("event ends before it starts")
	}
	current, _ := s.gate.CurrentUser()

	stored, ok := s.store.GetEvent(e.ID)
	if !ok {
		return models.Event{}, apperrors.NotFound("unknown event id")
	}
	if !stored.IsAdmin(current.ID) {
		return models.Event{}, apperrors.InsufficientPrivilege("only event admins may update an event")
	}

	s.store.UpdateEvent(e)

	loc := e.MeetPlace.Location
	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeObjectUpdated,
		Entity:   models.EntityEvent,
		EntityID: e.ID,
	}, &loc)

	return e, nil
}

// DeleteEvent removes an event. Only admins may delete.
func (s *EventService) DeleteEvent(id int) error {
	if err := s.gate.Authorize(); err != nil {
		return err
	}
	current, _ := s.gate.CurrentUser()

	stored, ok := s.store.GetEvent(id)
	if !ok {
		return apperrors.NotFound("unknown event id")
	}
	if !stored.IsAdmin(current.ID) {
		return apperrors.InsufficientPrivilege("only event admins may delete an event")
	}

	s.store.DeleteEvent(id)

	log.Info().Int("event_id", id).Msg("Event deleted")

	loc := stored.MeetPlace.Location
	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeObjectDeleted,
		Entity:   models.EntityEvent,
		EntityID: id,
	}, &loc)

	return nil
}

// JoinEvent adds the current user to the members set. Joining twice is
// rejected.
func (s *EventService) JoinEvent(id int) error {
	if err := s.gate.Authorize(); err != nil {
		return err
	}
	current, _ := s.gate.CurrentUser()

	var loc models.Coordinates
	found, err := s.store.MutateEvent(id, func(e *models.Event) error {
		if e.IsMember(current.ID) {
			return apperrors.InvalidData("already a member of this event")
		}
		e.MemberIDs = append(e.MemberIDs, current.ID)
		loc = e.MeetPlace.Location
		return nil
	})
	if !found {
		return apperrors.NotFound("unknown event id")
	}
	if err != nil {
		return err
	}

	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeObjectUpdated,
		Entity:   models.EntityEvent,
		EntityID: id,
	}, &loc)

	return nil
}

// LeaveEvent removes the current user from both the members and admins
// sets in one step.
func (s *EventService) LeaveEvent(id int) error {
	if err := s.gate.Authorize(); err != nil {
		return err
	}
	current, _ := s.gate.CurrentUser()

	var loc models.Coordinates
	found, err := s.store.MutateEvent(id, func(e *models.Event) error {
		if !e.IsMember(current.ID) {
			return apperrors.InvalidData("not a member of this event")
		}
		e.MemberIDs = removeInt(e.MemberIDs, current.ID)
		e.AdminIDs = removeInt(e.AdminIDs, current.ID)
		loc = e.MeetPlace.Location
		return nil
	})
	if !found {
		return apperrors.NotFound("unknown event id")
	}
	if err != nil {
		return err
	}

	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeObjectUpdated,
		Entity:   models.EntityEvent,
		EntityID: id,
	}, &loc)

	return nil
}

// GetEventMessages returns the event's messages clipped to an optional
// date range.
func (s *EventService) GetEventMessages(id int, from, to *time.Time) ([]models.Message, error) {
	if err := s.gate.Authorize(); err != nil {
		return nil, err
	}

	e, ok := s.store.GetEvent(id)
	if !ok {
		return nil, apperrors.NotFound("unknown event id")
	}
	return query.Messages(e.Messages, from, to), nil
}

// SendEventMessage appends a message to the event. Only members may
// post. The resulting change event carries no location, so it is never
// fanned out under the geofence rule.
func (s *EventService) SendEventMessage(id int, content string, photoURLs []string) error {
	if err := s.gate.Authorize(); err != nil {
		return err
	}
	if content == "" && len(photoURLs) == 0 {
		return apperrors.InvalidData("message is empty")
	}
	current, _ := s.gate.CurrentUser()

	found, err := s.store.MutateEvent(id, func(e *models.Event) error {
		if !e.IsMember(current.ID) {
			return apperrors.InvalidData("only members may post messages")
		}
		e.Messages = append(e.Messages, models.Message{
			SenderID:  current.ID,
			Content:   content,
			PhotoURLs: photoURLs,
			SentAt:    s.now(),
		})
		return nil
	})
	if !found {
		return apperrors.NotFound("unknown event id")
	}
	if err != nil {
		return err
	}

	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeNewMessage,
		Entity:   models.EntityEvent,
		EntityID: id,
		SenderID: current.ID,
	}, nil)

	return nil
}

// MyInvitations returns the invitations addressed to the current user.
func (s *EventService) MyInvitations() ([]models.Invitation, error) {
	if err := s.gate.Authorize(); err != nil {
		return nil, err
	}
	current, _ := s.gate.CurrentUser()
	return s.store.InvitationsFor(current.ID), nil
}

// SendInvitation records an invitation. Duplicates are allowed. The
// change event carries no location, so it is never fanned out.
func (s *EventService) SendInvitation(inv models.Invitation) (models.Invitation, error) {
	if err := s.gate.Authorize(); err != nil {
		return models.Invitation{}, err
	}
	if _, ok := s.store.GetEvent(inv.EventID); !ok {
		return models.Invitation{}, apperrors.NotFound("unknown event id")
	}
	if _, ok := s.store.GetUser(inv.UserID); !ok {
		return models.Invitation{}, apperrors.NotFound("unknown user id")
	}

	s.store.AddInvitation(inv)

	s.hub.Publish(models.ChangeEvent{
		Kind:      models.ChangeNewInvitation,
		Entity:    models.EntityEvent,
		EntityID:  inv.EventID,
		InviteeID: inv.UserID,
	}, nil)

	return inv, nil
}

func removeInt(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
