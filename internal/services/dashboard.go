package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"rsvp/internal/domain"
)

type dashboardService struct {
	eventRepo      domain.EventRepository
	guestRepo      domain.GuestRepository
	feed           domain.GuestFeed
	contextTimeout time.Duration
}

// NewDashboardService returns the organizer dashboard flow.
func NewDashboardService(eventRepo domain.EventRepository, guestRepo domain.GuestRepository, feed domain.GuestFeed, timeout time.Duration) domain.DashboardService {
	return &dashboardService{
		eventRepo:      eventRepo,
		guestRepo:      guestRepo,
		feed:           feed,
		contextTimeout: timeout,
	}
}

func (s *dashboardService) Load(ctx context.Context, eventID, token string, filter domain.GuestFilter) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.authorize(ctx, eventID, token)
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
	filter = domain.ParseGuestFilter(string(filter))
	return &domain.Dashboard{
		Event:    event,
		Filter:   filter,
		Guests:   guests,
		Filtered: filter.Apply(guests),
		Counts:   countResponses(guests),
	}, nil
}

func (s *dashboardService) DeleteGuest(ctx context.Context, eventID, token, guestID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.authorize(ctx, eventID, token); err != nil {
		return err
	}
	if err := s.guestRepo.Delete(ctx, eventID, guestID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete guest: %w", err)
	}
	s.feed.Notify(eventID)
	return nil
}

// authorize does not distinguish a missing event from a wrong token.
func (s *dashboardService) authorize(ctx context.Context, eventID, token string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(event.Token), []byte(token)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	return event, nil
}

func countResponses(guests []*domain.Guest) map[domain.GuestFilter]int {
	counts := map[domain.GuestFilter]int{
		domain.FilterAll:   len(guests),
		domain.FilterYes:   0,
		domain.FilterNo:    0,
		domain.FilterMaybe: 0,
	}
	for _, g := range guests {
		counts[domain.GuestFilter(g.Response)]++
	}
	return counts
}
