package realtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeGuestLister struct {
	mu     sync.Mutex
	guests map[string][]*domain.Guest
	calls  int
	err    error
}

func (f *fakeGuestLister) ListByEventID(_ context.Context, eventID string) ([]*domain.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]*domain.Guest(nil), f.guests[eventID]...), nil
}

func (f *fakeGuestLister) set(eventID string, guests ...*domain.Guest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guests[eventID] = guests
}

func recv(t *testing.T, ch <-chan []*domain.Guest) []*domain.Guest {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "channel closed")
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestHub_SubscribeSendsInitialSnapshot(t *testing.T) {
	lister := &fakeGuestLister{guests: map[string][]*domain.Guest{
		"party": {{ID: "g1", Name: "Ann", Response: domain.ResponseYes}},
	}}
	hub := NewHub(lister, testLogger, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := hub.Subscribe(ctx, "party")
	require.NoError(t, err)
	snap := recv(t, ch)
	require.Len(t, snap, 1)
	assert.Equal(t, "g1", snap[0].ID)
}

func TestHub_SubscribeEmptyListIsNotNil(t *testing.T) {
	hub := NewHub(&fakeGuestLister{guests: map[string][]*domain.Guest{}}, testLogger, 0)
	ch, err := hub.Subscribe(context.Background(), "empty")
	require.NoError(t, err)
	snap := recv(t, ch)
	assert.NotNil(t, snap)
	assert.Len(t, snap, 0)
}

func TestHub_NotifyPushesFullSnapshot(t *testing.T) {
	lister := &fakeGuestLister{guests: map[string][]*domain.Guest{}}
	hub := NewHub(lister, testLogger, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := hub.Subscribe(ctx, "party")
	require.NoError(t, err)
	assert.Len(t, recv(t, ch), 0)

	lister.set("party",
		&domain.Guest{ID: "g1", Name: "Ann", Response: domain.ResponseYes},
		&domain.Guest{ID: "g2", Name: "Bob", Response: domain.ResponseNo},
	)
	hub.Notify("party")
	snap := recv(t, ch)
	require.Len(t, snap, 2)
	assert.Equal(t, "g2", snap[1].ID)
}

func TestHub_SlowSubscriberGetsLatest(t *testing.T) {
	lister := &fakeGuestLister{guests: map[string][]*domain.Guest{}}
	hub := NewHub(lister, testLogger, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := hub.Subscribe(ctx, "party")
	require.NoError(t, err)

	lister.set("party", &domain.Guest{ID: "g1"})
	hub.Notify("party")
	lister.set("party", &domain.Guest{ID: "g1"}, &domain.Guest{ID: "g2"})
	hub.Notify("party")

	snap := recv(t, ch)
	assert.Len(t, snap, 2, "unread snapshots are replaced by newer ones")
	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra snapshot %v", extra)
	default:
	}
}

func TestHub_NotifyOtherEventOrNoSubscribers(t *testing.T) {
	lister := &fakeGuestLister{guests: map[string][]*domain.Guest{}}
	hub := NewHub(lister, testLogger, time.Second)

	hub.Notify("nobody-watching")
	assert.Equal(t, 0, lister.calls, "no reload without subscribers")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := hub.Subscribe(ctx, "party")
	require.NoError(t, err)
	recv(t, ch)

	hub.Notify("other")
	select {
	case s := <-ch:
		t.Fatalf("unexpected snapshot %v", s)
	default:
	}
}

func TestHub_UnsubscribeOnCancel(t *testing.T) {
	hub := NewHub(&fakeGuestLister{guests: map[string][]*domain.Guest{}}, testLogger, time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := hub.Subscribe(ctx, "party")
	require.NoError(t, err)
	recv(t, ch)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.subscriberCount("party"))

	// Notify after teardown must not panic on the closed channel.
	hub.Notify("party")
}

func TestHub_SubscribeLoadError(t *testing.T) {
	hub := NewHub(&fakeGuestLister{err: errors.New("db down")}, testLogger, time.Second)
	_, err := hub.Subscribe(context.Background(), "party")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Equal(t, 0, hub.subscriberCount("party"))
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	all    int
}

func (r *recordingNotifier) Notify(eventID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventID)
}

func (r *recordingNotifier) NotifyAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all++
}

func (r *recordingNotifier) snapshot() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...), r.all
}

func TestDispatch(t *testing.T) {
	notes := make(chan *pq.Notification, 3)
	rec := &recordingNotifier{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		dispatch(ctx, notes, func() error { return nil }, rec, testLogger)
		close(done)
	}()

	notes <- &pq.Notification{Channel: GuestChangesChannel, Extra: "party"}
	notes <- nil
	notes <- &pq.Notification{Channel: GuestChangesChannel, Extra: "wedding"}

	require.Eventually(t, func() bool {
		events, all := rec.snapshot()
		return len(events) == 2 && all == 1
	}, time.Second, 10*time.Millisecond)
	events, _ := rec.snapshot()
	assert.Equal(t, []string{"party", "wedding"}, events)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch did not stop on cancel")
	}
}

func TestDispatch_StopsWhenChannelClosed(t *testing.T) {
	notes := make(chan *pq.Notification)
	close(notes)
	done := make(chan struct{})
	go func() {
		dispatch(context.Background(), notes, func() error { return nil }, &recordingNotifier{}, testLogger)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch did not stop on closed channel")
	}
}
