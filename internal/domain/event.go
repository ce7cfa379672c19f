package domain

import (
	"context"
	"time"
)

// DateLayout is the calendar date format used for Event.Date.
const DateLayout = "2006-01-02"

// Event is an organizer-created event. Possession of Token (not OwnerID)
// authorizes dashboard access.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	Token       string    `json:"token"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEvent returns a new Event with the given fields.
func NewEvent(id, name, date, description, ownerID, token string, createdAt time.Time) *Event {
	return &Event{
		ID:          id,
		Name:        name,
		Date:        date,
		Description: description,
		OwnerID:     ownerID,
		Token:       token,
		CreatedAt:   createdAt,
	}
}

// PublicEvent is the subset of an Event shown on the public RSVP page.
// swagger:model PublicEvent
type PublicEvent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Public strips the owner and capability token.
func (e *Event) Public() PublicEvent {
	return PublicEvent{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Description: e.Description,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// Create inserts the event under e.ID. Returns ErrSlugTaken if the id already exists.
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// CreateEventInput is the organizer's event form.
type CreateEventInput struct {
	Name        string
	Date        string
	Description string
	Slug        string
}

// CreatedEvent is the result of a successful creation: the stored event and its two shareable links.
type CreatedEvent struct {
	Event         *Event `json:"event"`
	RSVPLink      string `json:"rsvp_link"`
	DashboardLink string `json:"dashboard_link"`
}

// EventService creates events.
type EventService interface {
	// CreateEvent validates in, allocates an id and token, and stores the event
	// owned by session. origin is the scheme+host the links are built from.
	CreateEvent(ctx context.Context, session *Session, in CreateEventInput, origin string) (*CreatedEvent, error)
}
