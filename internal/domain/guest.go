package domain

import (
	"context"
	"time"
)

// Response is a guest's answer to an invitation.
type Response string

const (
	ResponseYes   Response = "yes"
	ResponseNo    Response = "no"
	ResponseMaybe Response = "maybe"
)

// Valid reports whether r is one of yes, no, maybe.
func (r Response) Valid() bool {
	switch r {
	case ResponseYes, ResponseNo, ResponseMaybe:
		return true
	}
	return false
}

// Guest is a single RSVP scoped to one event.
// swagger:model Guest
type Guest struct {
	ID        string    `json:"id"`
	EventID   string    `json:"-"`
	Name      string    `json:"name"`
	Response  Response  `json:"response"`
	CreatedAt time.Time `json:"-"`
}

// NewGuest returns a new Guest. ID is assigned by the repository on create.
func NewGuest(eventID, name string, response Response, createdAt time.Time) *Guest {
	return &Guest{
		EventID:   eventID,
		Name:      name,
		Response:  response,
		CreatedAt: createdAt,
	}
}

// GuestFilter selects guests on the dashboard.
type GuestFilter string

const (
	FilterAll   GuestFilter = "all"
	FilterYes   GuestFilter = "yes"
	FilterNo    GuestFilter = "no"
	FilterMaybe GuestFilter = "maybe"
)

// ParseGuestFilter maps a query value to a filter. Unknown values mean all.
func ParseGuestFilter(s string) GuestFilter {
	switch f := GuestFilter(s); f {
	case FilterYes, FilterNo, FilterMaybe:
		return f
	}
	return FilterAll
}

// Apply returns the guests matching f, preserving order. It never returns nil.
func (f GuestFilter) Apply(guests []*Guest) []*Guest {
	out := make([]*Guest, 0, len(guests))
	for _, g := range guests {
		if f == FilterAll || string(g.Response) == string(f) {
			out = append(out, g)
		}
	}
	return out
}

// GuestRepository defines storage for an event's guest list.
type GuestRepository interface {
	// Create appends g to its event's list and sets g.ID.
	Create(ctx context.Context, g *Guest) error
	ListByEventID(ctx context.Context, eventID string) ([]*Guest, error)
	// Delete removes one guest of one event. Returns ErrNotFound if nothing was deleted.
	Delete(ctx context.Context, eventID, guestID string) error
}

// GuestFeed delivers live guest-list snapshots for an event.
type GuestFeed interface {
	// Subscribe returns a channel that receives the full current guest list,
	// first immediately and then after every change. The channel is closed
	// and the subscription released when ctx is done.
	Subscribe(ctx context.Context, eventID string) (<-chan []*Guest, error)
	// Notify signals that eventID's guest list changed.
	Notify(eventID string)
}

// RSVPPage is the public view of one event with its current guest list.
type RSVPPage struct {
	Event  PublicEvent `json:"event"`
	Guests []*Guest    `json:"guests"`
}

// RSVPService is the public RSVP flow.
type RSVPService interface {
	GetPage(ctx context.Context, eventID string) (*RSVPPage, error)
	// Watch verifies the event exists and subscribes to its guest list.
	Watch(ctx context.Context, eventID string) (<-chan []*Guest, error)
	// Submit appends a guest response. An empty response defaults to yes.
	Submit(ctx context.Context, eventID, name string, response Response) (*Guest, error)
}

// Dashboard is the organizer's snapshot of an event's guests. Guests is the
// whole list as fetched; Filtered is Filter applied to it, so a client can
// switch filters locally without loading the list again.
type Dashboard struct {
	Event    *Event              `json:"event"`
	Filter   GuestFilter         `json:"filter"`
	Guests   []*Guest            `json:"guests"`
	Filtered []*Guest            `json:"filtered"`
	Counts   map[GuestFilter]int `json:"counts"`
}

// DashboardService is the organizer dashboard flow. Both operations return
// ErrUnauthorized for a missing event and for a token mismatch alike.
type DashboardService interface {
	Load(ctx context.Context, eventID, token string, filter GuestFilter) (*Dashboard, error)
	DeleteGuest(ctx context.Context, eventID, token, guestID string) error
}
