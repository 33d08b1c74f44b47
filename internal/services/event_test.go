package services

import (
	"testing"
	"time"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEventRequest() CreateEventRequest {
	start := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	return CreateEventRequest{
		Name:        "Riverbank cleanup",
		StartDate:   start,
		EndDate:     start.Add(4 * time.Hour),
		MeetPlace:   models.Place{Location: models.Coordinates{Latitude: 50.30, Longitude: 18.70}, Address: "Gliwice"},
		Description: "gloves provided",
	}
}

func TestCreateEventCreatorIsMemberAndAdmin(t *testing.T) {
	e := newTestEngine(t)
	alice := e.signUpAndLogin(t, "alice", "a@x.com")

	event, err := e.events.CreateEvent(testEventRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, event.ID)
	assert.True(t, event.IsMember(alice.ID))
	assert.True(t, event.IsAdmin(alice.ID))
}

func TestCreateEventValidatesDates(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")

	req := testEventRequest()
	req.EndDate = req.StartDate.Add(-time.Hour)

	_, err := e.events.CreateEvent(req, nil)
	assert.Equal(t, apperrors.CodeInvalidData, apperrors.CodeOf(err))
}

func TestJoinEventTwiceIsRejected(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")
	event, err := e.events.CreateEvent(testEventRequest(), nil)
	require.NoError(t, err)

	bob := e.signUp(t, "bob", "b@x.com")
	_, err = e.gate.Login("b@x.com", "secret")
	require.NoError(t, err)

	require.NoError(t, e.events.JoinEvent(event.ID))

	err = e.events.JoinEvent(event.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidData, apperrors.CodeOf(err))

	fresh, err := e.events.GetEventByID(event.ID, true)
	require.NoError(t, err)
	assert.True(t, fresh.IsMember(bob.ID))
	assert.False(t, fresh.IsAdmin(bob.ID))
}

func TestLeaveEventClearsMembershipAndAdmin(t *testing.T) {
	e := newTestEngine(t)
	alice := e.signUpAndLogin(t, "alice", "a@x.com")
	event, err := e.events.CreateEvent(testEventRequest(), nil)
	require.NoError(t, err)

	require.NoError(t, e.events.LeaveEvent(event.ID))

	fresh, err := e.events.GetEventByID(event.ID, true)
	require.NoError(t, err)
	assert.False(t, fresh.IsMember(alice.ID), "leave removes from members")
	assert.False(t, fresh.IsAdmin(alice.ID), "leave removes from admins in the same step")

	err = e.events.LeaveEvent(event.ID)
	assert.Equal(t, apperrors.CodeInvalidData, apperrors.CodeOf(err))
}

func TestUpdateEventRequiresAdmin(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")
	event, err := e.events.CreateEvent(testEventRequest(), nil)
	require.NoError(t, err)

	// Bob joins but is not an admin.
	e.signUp(t, "bob", "b@x.com")
	_, err = e.gate.Login("b@x.com", "secret")
	require.NoError(t, err)
	require.NoError(t, e.events.JoinEvent(event.ID))

	event.Description = "moved to saturday"
	_, err = e.events.UpdateEvent(event)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUserNotAuthorized, apperrors.CodeOf(err))

	err = e.events.DeleteEvent(event.ID)
	assert.Equal(t, apperrors.CodeUserNotAuthorized, apperrors.CodeOf(err))

	// The admin can do both.
	_, err = e.gate.Login("a@x.com", "secret")
	require.NoError(t, err)
	updated, err := e.events.UpdateEvent(event)
	require.NoError(t, err)
	assert.Equal(t, "moved to saturday", updated.Description)

	require.NoError(t, e.events.DeleteEvent(event.ID))
	_, err = e.events.GetEventByID(event.ID, false)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestEventMessages(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")
	event, err := e.events.CreateEvent(testEventRequest(), nil)
	require.NoError(t, err)

	require.NoError(t, e.events.SendEventMessage(event.ID, "bring gloves", nil))
	require.NoError(t, e.events.SendEventMessage(event.ID, "and bags", nil))

	msgs, err := e.events.GetEventMessages(event.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "bring gloves", msgs[0].Content, "messages are append-only")

	// Non-members cannot post.
	e.signUp(t, "bob", "b@x.com")
	_, err = e.gate.Login("b@x.com", "secret")
	require.NoError(t, err)
	err = e.events.SendEventMessage(event.ID, "hi", nil)
	assert.Equal(t, apperrors.CodeInvalidData, apperrors.CodeOf(err))
}

func TestInvitations(t *testing.T) {
	e := newTestEngine(t)
	bob := e.signUp(t, "bob", "b@x.com")
	e.signUpAndLogin(t, "alice", "a@x.com")

	event, err := e.events.CreateEvent(testEventRequest(), []int{bob.ID})
	require.NoError(t, err)

	// Duplicates are allowed.
	_, err = e.events.SendInvitation(models.Invitation{EventID: event.ID, UserID: bob.ID})
	require.NoError(t, err)

	_, err = e.gate.Login("b@x.com", "secret")
	require.NoError(t, err)
	invs, err := e.events.MyInvitations()
	require.NoError(t, err)
	assert.Len(t, invs, 2)

	_, err = e.events.SendInvitation(models.Invitation{EventID: 999, UserID: bob.ID})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestGetEventsStripsMembersUnlessAsked(t *testing.T) {
	e := newTestEngine(t)
	e.signUpAndLogin(t, "alice", "a@x.com")
	_, err := e.events.CreateEvent(testEventRequest(), nil)
	require.NoError(t, err)

	bare, err := e.events.GetEvents(query.EventFilter{}, nil, false)
	require.NoError(t, err)
	require.Len(t, bare, 1)
	assert.Nil(t, bare[0].MemberIDs)
	assert.Nil(t, bare[0].AdminIDs)

	full, err := e.events.GetEvents(query.EventFilter{}, nil, true)
	require.NoError(t, err)
	require.Len(t, full, 1)
	assert.NotEmpty(t, full[0].MemberIDs)
}
