package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"rsvp/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventRepo is an in-memory EventRepository keyed by id. Create enforces
// id uniqueness the way the events primary key does.
type fakeEventRepo struct {
	mu          sync.Mutex
	byID        map[string]*domain.Event
	existsCalls int
	existsGate  *sync.WaitGroup // if set, Exists waits here after reading
	existsErr   error
	createErr   error
	getErr      error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event)}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byID[e.ID]; ok {
		return domain.ErrSlugTaken
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Exists(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	f.existsCalls++
	_, ok := f.byID[id]
	err := f.existsErr
	gate := f.existsGate
	f.mu.Unlock()
	if gate != nil {
		gate.Done()
		gate.Wait()
	}
	return ok, err
}

func (f *fakeEventRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// fakeGuestRepo is an in-memory GuestRepository preserving insertion order.
type fakeGuestRepo struct {
	mu        sync.Mutex
	guests    []*domain.Guest
	nextID    int
	createErr error
	listErr   error
	deleteErr error
}

func newFakeGuestRepo(guests ...*domain.Guest) *fakeGuestRepo {
	return &fakeGuestRepo{guests: guests, nextID: 1}
}

func (f *fakeGuestRepo) Create(ctx context.Context, g *domain.Guest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	g.ID = fmt.Sprintf("guest-%d", f.nextID)
	f.nextID++
	f.guests = append(f.guests, g)
	return nil
}

func (f *fakeGuestRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Guest
	for _, g := range f.guests {
		if g.EventID == eventID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGuestRepo) Delete(ctx context.Context, eventID, guestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, g := range f.guests {
		if g.ID == guestID && g.EventID == eventID {
			f.guests = append(f.guests[:i], f.guests[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeFeed records notifications and hands out a pre-built channel.
type fakeFeed struct {
	mu           sync.Mutex
	notified     []string
	subscribed   []string
	subscribeErr error
}

func (f *fakeFeed) Subscribe(ctx context.Context, eventID string) (<-chan []*domain.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	f.subscribed = append(f.subscribed, eventID)
	ch := make(chan []*domain.Guest, 1)
	ch <- []*domain.Guest{}
	return ch, nil
}

func (f *fakeFeed) Notify(eventID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, eventID)
}

// fakeEmailService records the last event-links email.
type fakeEmailService struct {
	mu    sync.Mutex
	last  *domain.EventLinksEmailData
	calls int
	err   error
}

func (f *fakeEmailService) SendEventLinks(ctx context.Context, data *domain.EventLinksEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = data
	return f.err
}

// fakeMailer implements domain.Mailer.
type fakeMailer struct {
	lastTo, lastSubject, lastHTML, lastText string
	err                                     error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	f.lastTo, f.lastSubject, f.lastHTML, f.lastText = to, subject, html, text
	return f.err
}

// fakeRenderer implements domain.EmailTemplateRenderer.
type fakeRenderer struct {
	lastName string
	err      error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.lastName = templateName
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	nextID    int
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// fakeSessionRepo is an in-memory SessionRepository.
type fakeSessionRepo struct {
	byID      map[string]*domain.Session
	nextID    int
	createErr error
	getErr    error

	// deadlines records, per call, whether ctx carried a deadline.
	deadlines []bool
}

func (f *fakeSessionRepo) record(ctx context.Context) {
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byID: make(map[string]*domain.Session), nextID: 1}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	f.record(ctx)
	if f.createErr != nil {
		return f.createErr
	}
	if s.ID == "" {
		s.ID = fmt.Sprintf("sess-%d", f.nextID)
		f.nextID++
	}
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	f.record(ctx)
	if f.getErr != nil {
		return nil, f.getErr
	}
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	f.record(ctx)
	delete(f.byID, id)
	return nil
}

// fakePasswordHasher implements domain.PasswordHasher with a reversible "hash".
type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}
func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+"-"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeTokens issues "tok|<sessionID>|<userID>" and verifies the same shape.
type fakeTokens struct {
	issueErr error
}

func (f *fakeTokens) Issue(sessionID, userID, email string, expiresAt time.Time) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "tok|" + sessionID + "|" + userID, nil
}

func (f *fakeTokens) Verify(token string) (*domain.SessionClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 || parts[0] != "tok" {
		return nil, errors.New("bad token")
	}
	return &domain.SessionClaims{SessionID: parts[1], UserID: parts[2]}, nil
}
