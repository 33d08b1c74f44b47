package models

import "time"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a point plus its human-readable address.
type Place struct {
	Location Coordinates `json:"location"`
	Address  string      `json:"address"`
}

// User represents a registered user in the system
type User struct {
	ID               int     `json:"id"`
	Email            string  `json:"email,omitempty"`
	Handle           string  `json:"handle"`
	Password         string  `json:"-"`
	PhotoURL         string  `json:"photo_url,omitempty"`
	ClearedSites     int     `json:"cleared_sites"`
	AddedDumpsters   int     `json:"added_dumpsters"`
	DeletedDumpsters int     `json:"deleted_dumpsters"`
	PushToken        *string `json:"push_token,omitempty"`
}

// Score is the leaderboard projection: cleared sites and added dumpsters
// count one point each, deleted dumpsters carry no weight.
func (u User) Score() int {
	return u.ClearedSites + u.AddedDumpsters
}

// Redacted returns a copy safe for public listings.
func (u User) Redacted() User {
	u.Email = ""
	u.Password = ""
	u.PushToken = nil
	return u
}

// Dumpster represents a shared trash container on the map
type Dumpster struct {
	ID          int      `json:"id"`
	Place       Place    `json:"place"`
	Description string   `json:"description"`
	PhotoURLs   []string `json:"photo_urls"`
	OwnerID     int      `json:"owner_id"`
}

// Clone returns a deep copy of the dumpster.
func (d Dumpster) Clone() Dumpster {
	d.PhotoURLs = append([]string(nil), d.PhotoURLs...)
	return d
}

// CleanupRecord captures how and when a wasteland was cleaned.
type CleanupRecord struct {
	CleanerIDs []int     `json:"cleaner_ids"`
	Date       time.Time `json:"date"`
	PhotoURLs  []string  `json:"photo_urls"`
}

// Wasteland represents a reported litter site. A nil Cleanup means the
// site is still in the reported state.
type Wasteland struct {
	ID          int            `json:"id"`
	Place       Place          `json:"place"`
	PhotoURLs   []string       `json:"photo_urls"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	ReporterID  int            `json:"reporter_id"`
	Cleanup     *CleanupRecord `json:"cleanup,omitempty"`
}

// Cleaned reports whether the site has a cleanup record.
func (w Wasteland) Cleaned() bool {
	return w.Cleanup != nil
}

// Clone returns a deep copy of the wasteland.
func (w Wasteland) Clone() Wasteland {
	w.PhotoURLs = append([]string(nil), w.PhotoURLs...)
	if w.Cleanup != nil {
		rec := *w.Cleanup
		rec.CleanerIDs = append([]int(nil), rec.CleanerIDs...)
		rec.PhotoURLs = append([]string(nil), rec.PhotoURLs...)
		w.Cleanup = &rec
	}
	return w
}

// Message belongs to exactly one event and is append-only.
type Message struct {
	SenderID  int       `json:"sender_id"`
	Content   string    `json:"content"`
	PhotoURLs []string  `json:"photo_urls"`
	SentAt    time.Time `json:"sent_at"`
}

// Event represents a cleanup event with its membership sets
type Event struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	IconURL      string    `json:"icon_url,omitempty"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	MeetPlace    Place     `json:"meet_place"`
	Description  string    `json:"description"`
	Messages     []Message `json:"messages,omitempty"`
	WastelandIDs []int     `json:"wasteland_ids"`
	MemberIDs    []int     `json:"member_ids,omitempty"`
	AdminIDs     []int     `json:"admin_ids,omitempty"`
}

// IsMember reports whether the user is in the members set.
func (e Event) IsMember(userID int) bool {
	return containsInt(e.MemberIDs, userID)
}

// IsAdmin reports whether the user is in the admins set.
func (e Event) IsAdmin(userID int) bool {
	return containsInt(e.AdminIDs, userID)
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	e.Messages = append([]Message(nil), e.Messages...)
	for i := range e.Messages {
		e.Messages[i].PhotoURLs = append([]string(nil), e.Messages[i].PhotoURLs...)
	}
	e.WastelandIDs = append([]int(nil), e.WastelandIDs...)
	e.MemberIDs = append([]int(nil), e.MemberIDs...)
	e.AdminIDs = append([]int(nil), e.AdminIDs...)
	return e
}

// Invitation invites a user to an event. Ephemeral, duplicates allowed.
type Invitation struct {
	EventID int `json:"event_id"`
	UserID  int `json:"user_id"`
}

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
