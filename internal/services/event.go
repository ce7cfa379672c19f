package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"strings"
	"time"

	"rsvp/internal/domain"
)

// Form messages shown next to the offending field.
const (
	msgNameRequired = "Event name is required."
	msgDateRequired = "Event date is required."
	msgDateInvalid  = "Event date must be a valid date (YYYY-MM-DD)."
	msgSlugInvalid  = "Slug can use letters, numbers, and hyphens only."
	msgSlugTaken    = "That slug is taken, try another."
)

const (
	eventIDLength    = 7
	eventTokenLength = 6
)

var (
	slugRegexp   = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	codeAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")
)

type eventService struct {
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns an EventService. emailService may be nil, in which case no links email is sent.
func NewEventService(eventRepo domain.EventRepository, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, session *domain.Session, in domain.CreateEventInput, origin string) (*domain.CreatedEvent, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	date := strings.TrimSpace(in.Date)
	slug := strings.TrimSpace(in.Slug)

	fields := make(map[string]string)
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = msgNameRequired
	}
	if date == "" {
		fields["date"] = msgDateRequired
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		fields["date"] = msgDateInvalid
	}
	if slug != "" {
		if !slugRegexp.MatchString(slug) {
			fields["slug"] = msgSlugInvalid
		} else {
			exists, err := s.eventRepo.Exists(ctx, slug)
			if err != nil {
				return nil, fmt.Errorf("check slug: %w", err)
			}
			if exists {
				fields["slug"] = msgSlugTaken
			}
		}
	}
	if err := domain.NewValidationError(fields); err != nil {
		return nil, err
	}

	id := slug
	if id == "" {
		code, err := generateCode(eventIDLength)
		if err != nil {
			return nil, fmt.Errorf("generate event id: %w", err)
		}
		id = code
	}
	token, err := generateCode(eventTokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate event token: %w", err)
	}

	event := domain.NewEvent(id, in.Name, date, in.Description, session.UserID, token, s.now().UTC())
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			// lost a race against a concurrent creation with the same slug
			return nil, domain.NewValidationError(map[string]string{"slug": msgSlugTaken})
		}
		return nil, fmt.Errorf("create event: %w", err)
	}

	base := strings.TrimRight(origin, "/")
	created := &domain.CreatedEvent{
		Event:         event,
		RSVPLink:      base + "/rsvp/" + event.ID,
		DashboardLink: base + "/dashboard/" + event.ID + "/" + event.Token,
	}
	s.sendLinks(ctx, session, created)
	return created, nil
}

func (s *eventService) sendLinks(ctx context.Context, session *domain.Session, created *domain.CreatedEvent) {
	if s.emailService == nil || session.Email == "" {
		return
	}
	data := &domain.EventLinksEmailData{
		Email:         session.Email,
		EventName:     created.Event.Name,
		EventDate:     created.Event.Date,
		RSVPLink:      created.RSVPLink,
		DashboardLink: created.DashboardLink,
	}
	if err := s.emailService.SendEventLinks(ctx, data); err != nil {
		s.logger.Warn("send event links", "event_id", created.Event.ID, "error", err)
	}
}

// generateCode returns n random characters from [a-z0-9].
func generateCode(n int) (string, error) {
	b := make([]rune, n)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < n; i++ {
		r, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[r.Int64()]
	}
	return string(b), nil
}
