package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"rsvp/internal/delivery/http/helpers"
	"rsvp/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes an APIResponse, leaving data as raw JSON for the caller.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) (json.RawMessage, *helpers.APIError) {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env.Data, env.Error
}

// fakeIdentity implements domain.IdentityProvider.
type fakeIdentity struct {
	result         *domain.SignInResult
	createErr      error
	authErr        error
	signOutErr     error
	currentSession *domain.Session
	currentErr     error
	lastEmail      string
	lastPassword   string
	lastToken      string
	signedOut      *domain.Session
}

func (f *fakeIdentity) CreateAccount(_ context.Context, email, password string) (*domain.SignInResult, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.result, nil
}

func (f *fakeIdentity) Authenticate(_ context.Context, email, password string) (*domain.SignInResult, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.result, nil
}

func (f *fakeIdentity) SignOut(_ context.Context, s *domain.Session) error {
	f.signedOut = s
	return f.signOutErr
}

func (f *fakeIdentity) CurrentSession(_ context.Context, token string) (*domain.Session, error) {
	f.lastToken = token
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.currentSession, nil
}

// fakeEventService implements domain.EventService.
type fakeEventService struct {
	result      *domain.CreatedEvent
	err         error
	lastSession *domain.Session
	lastInput   domain.CreateEventInput
	lastOrigin  string
	calls       int
}

func (f *fakeEventService) CreateEvent(_ context.Context, s *domain.Session, in domain.CreateEventInput, origin string) (*domain.CreatedEvent, error) {
	f.calls++
	f.lastSession, f.lastInput, f.lastOrigin = s, in, origin
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeRSVPService implements domain.RSVPService.
type fakeRSVPService struct {
	page         *domain.RSVPPage
	pageErr      error
	snapshots    chan []*domain.Guest
	watchErr     error
	guest        *domain.Guest
	submitErr    error
	lastEventID  string
	lastName     string
	lastResponse domain.Response
}

func (f *fakeRSVPService) GetPage(_ context.Context, eventID string) (*domain.RSVPPage, error) {
	f.lastEventID = eventID
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.page, nil
}

func (f *fakeRSVPService) Watch(_ context.Context, eventID string) (<-chan []*domain.Guest, error) {
	f.lastEventID = eventID
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	return f.snapshots, nil
}

func (f *fakeRSVPService) Submit(_ context.Context, eventID, name string, response domain.Response) (*domain.Guest, error) {
	f.lastEventID, f.lastName, f.lastResponse = eventID, name, response
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.guest, nil
}

// fakeDashboardService implements domain.DashboardService.
type fakeDashboardService struct {
	dashboard   *domain.Dashboard
	loadErr     error
	deleteErr   error
	lastEventID string
	lastToken   string
	lastFilter  domain.GuestFilter
	lastGuestID string
}

func (f *fakeDashboardService) Load(_ context.Context, eventID, token string, filter domain.GuestFilter) (*domain.Dashboard, error) {
	f.lastEventID, f.lastToken, f.lastFilter = eventID, token, filter
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.dashboard, nil
}

func (f *fakeDashboardService) DeleteGuest(_ context.Context, eventID, token, guestID string) error {
	f.lastEventID, f.lastToken, f.lastGuestID = eventID, token, guestID
	return f.deleteErr
}
