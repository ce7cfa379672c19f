package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rsvp/internal/domain"
)

const (
	msgGuestNameRequired = "Please enter your name."
	msgResponseInvalid   = "Response must be yes, no, or maybe."
)

type rsvpService struct {
	eventRepo      domain.EventRepository
	guestRepo      domain.GuestRepository
	feed           domain.GuestFeed
	contextTimeout time.Duration
	now            func() time.Time
}

// NewRSVPService returns the public RSVP flow. feed is notified after every write.
func NewRSVPService(eventRepo domain.EventRepository, guestRepo domain.GuestRepository, feed domain.GuestFeed, timeout time.Duration) domain.RSVPService {
	return &rsvpService{
		eventRepo:      eventRepo,
		guestRepo:      guestRepo,
		feed:           feed,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *rsvpService) GetPage(ctx context.Context, eventID string) (*domain.RSVPPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	guests, err := s.guestRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	return &domain.RSVPPage{Event: event.Public(), Guests: guests}, nil
}

// Watch outlives contextTimeout; only the existence check is bounded.
func (s *rsvpService) Watch(ctx context.Context, eventID string) (<-chan []*domain.Guest, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.feed.Subscribe(ctx, eventID)
}

func (s *rsvpService) Submit(ctx context.Context, eventID, name string, response domain.Response) (*domain.Guest, error) {
	if response == "" {
		response = domain.ResponseYes
	}

	fields := make(map[string]string)
	// the name is stored as typed; only blank names are rejected
	if strings.TrimSpace(name) == "" {
		fields["name"] = msgGuestNameRequired
	}
	if !response.Valid() {
		fields["response"] = msgResponseInvalid
	}
	if err := domain.NewValidationError(fields); err != nil {
		return nil, err
	}

	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	guest := domain.NewGuest(eventID, name, response, s.now().UTC())
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	s.feed.Notify(eventID)
	return guest, nil
}

func (s *rsvpService) requireEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	exists, err := s.eventRepo.Exists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}
