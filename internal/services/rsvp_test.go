package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp/internal/domain"
)

func newRSVPFixture() (*rsvpService, *fakeGuestRepo, *fakeFeed) {
	event := domain.NewEvent("party", "Birthday", "2025-06-01", "cake", "user-1", "tok123", time.Now())
	guests := newFakeGuestRepo(
		&domain.Guest{ID: "g1", EventID: "party", Name: "Ann", Response: domain.ResponseYes},
		&domain.Guest{ID: "g9", EventID: "other", Name: "Zed", Response: domain.ResponseNo},
	)
	feed := &fakeFeed{}
	svc := NewRSVPService(newFakeEventRepo(event), guests, feed, 5*time.Second).(*rsvpService)
	return svc, guests, feed
}

func TestRSVPService_GetPage(t *testing.T) {
	svc, _, _ := newRSVPFixture()

	page, err := svc.GetPage(context.Background(), "party")
	require.NoError(t, err)
	assert.Equal(t, domain.PublicEvent{ID: "party", Name: "Birthday", Date: "2025-06-01", Description: "cake"}, page.Event)
	require.Len(t, page.Guests, 1)
	assert.Equal(t, "Ann", page.Guests[0].Name)

	_, err = svc.GetPage(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRSVPService_GetPage_EmptyGuestsNotNil(t *testing.T) {
	event := domain.NewEvent("quiet", "Quiet", "2025-06-01", "", "user-1", "tok123", time.Now())
	svc := NewRSVPService(newFakeEventRepo(event), newFakeGuestRepo(), &fakeFeed{}, time.Second)

	page, err := svc.GetPage(context.Background(), "quiet")
	require.NoError(t, err)
	assert.NotNil(t, page.Guests)
	assert.Empty(t, page.Guests)
}

func TestRSVPService_Submit(t *testing.T) {
	tests := []struct {
		name         string
		eventID      string
		guestName    string
		response     domain.Response
		wantErr      error
		wantField    string
		wantResponse domain.Response
	}{
		{name: "defaults to yes", eventID: "party", guestName: "Bob", wantResponse: domain.ResponseYes},
		{name: "maybe", eventID: "party", guestName: "Cy", response: domain.ResponseMaybe, wantResponse: domain.ResponseMaybe},
		{name: "name kept as typed", eventID: "party", guestName: "  Dee  ", response: domain.ResponseNo, wantResponse: domain.ResponseNo},
		{name: "blank name", eventID: "party", guestName: "   ", wantErr: domain.ErrInvalidInput, wantField: "name"},
		{name: "bad response", eventID: "party", guestName: "Eve", response: "perhaps", wantErr: domain.ErrInvalidInput, wantField: "response"},
		{name: "unknown event", eventID: "nope", guestName: "Fay", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, guests, feed := newRSVPFixture()
			before := len(guests.guests)

			g, err := svc.Submit(context.Background(), tt.eventID, tt.guestName, tt.response)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantField != "" {
					var verr *domain.ValidationError
					require.True(t, errors.As(err, &verr))
					assert.Contains(t, verr.Fields, tt.wantField)
				}
				assert.Len(t, guests.guests, before, "nothing written")
				assert.Empty(t, feed.notified)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, g.ID)
			assert.Equal(t, tt.wantResponse, g.Response)
			assert.Equal(t, tt.guestName, g.Name)
			assert.Equal(t, "party", g.EventID)
			assert.Len(t, guests.guests, before+1)
			assert.Equal(t, []string{"party"}, feed.notified)
		})
	}
}

func TestRSVPService_Submit_BlankNameMessage(t *testing.T) {
	svc, _, _ := newRSVPFixture()
	_, err := svc.Submit(context.Background(), "party", "", domain.ResponseYes)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Please enter your name.", verr.Fields["name"])
}

func TestRSVPService_Submit_DuplicateNamesAllowed(t *testing.T) {
	svc, guests, _ := newRSVPFixture()
	for i := 0; i < 2; i++ {
		_, err := svc.Submit(context.Background(), "party", "Ann", domain.ResponseYes)
		require.NoError(t, err)
	}
	list, err := guests.ListByEventID(context.Background(), "party")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestRSVPService_Submit_WriteError(t *testing.T) {
	svc, guests, feed := newRSVPFixture()
	guests.createErr = errors.New("boom")

	_, err := svc.Submit(context.Background(), "party", "Bob", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, feed.notified)
}

func TestRSVPService_Watch(t *testing.T) {
	svc, _, feed := newRSVPFixture()

	ch, err := svc.Watch(context.Background(), "party")
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, []string{"party"}, feed.subscribed)

	_, err = svc.Watch(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, feed.subscribed, 1)
}
