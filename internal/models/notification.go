package models

// ChangeKind identifies the type of a change event. The set is closed.
type ChangeKind string

const (
	ChangeNewObject     ChangeKind = "new_object"
	ChangeObjectUpdated ChangeKind = "object_updated"
	ChangeObjectDeleted ChangeKind = "object_deleted"
	ChangeSiteCleared   ChangeKind = "site_cleared"
	ChangeNewMessage    ChangeKind = "new_message"
	ChangeNewInvitation ChangeKind = "new_invitation"
)

// EntityKind discriminates the entity a change event refers to.
type EntityKind string

const (
	EntityUser      EntityKind = "user"
	EntityDumpster  EntityKind = "dumpster"
	EntityWasteland EntityKind = "wasteland"
	EntityEvent     EntityKind = "event"
)

// ChangeEvent is fanned out to subscriptions whose area of interest is
// close enough to the mutation's location.
type ChangeEvent struct {
	Kind     ChangeKind `json:"kind"`
	Entity   EntityKind `json:"entity"`
	EntityID int        `json:"entity_id"`
	// SenderID is set for new_message events, InviteeID for new_invitation.
	SenderID  int `json:"sender_id,omitempty"`
	InviteeID int `json:"invitee_id,omitempty"`
}

// AreaOfInterest is the point a subscription watches. The radius is fixed
// by the notification hub, not per subscription.
type AreaOfInterest struct {
	Center Coordinates `json:"center"`
}
