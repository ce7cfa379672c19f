// Package realtime pushes live guest-list snapshots to subscribers.
package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rsvp/internal/domain"
)

// guestLister is the part of domain.GuestRepository the hub reads snapshots from.
type guestLister interface {
	ListByEventID(ctx context.Context, eventID string) ([]*domain.Guest, error)
}

type subscriber struct {
	ch chan []*domain.Guest
}

// Hub fans out full guest-list snapshots per event. Each subscriber holds at
// most one pending snapshot; a newer snapshot replaces an unread one, so a
// slow reader never blocks the hub and always ends on the latest state.
type Hub struct {
	guests  guestLister
	logger  *slog.Logger
	timeout time.Duration

	// refreshMu serializes snapshot loads so deliveries are never older than a previous one.
	refreshMu sync.Mutex

	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

var _ domain.GuestFeed = (*Hub)(nil)

// NewHub returns a Hub that loads snapshots from guests with the given per-load timeout.
func NewHub(guests guestLister, logger *slog.Logger, timeout time.Duration) *Hub {
	return &Hub{
		guests:  guests,
		logger:  logger,
		timeout: timeout,
		subs:    make(map[string]map[*subscriber]struct{}),
	}
}

func (h *Hub) Subscribe(ctx context.Context, eventID string) (<-chan []*domain.Guest, error) {
	sub := &subscriber{ch: make(chan []*domain.Guest, 1)}

	h.refreshMu.Lock()
	snapshot, err := h.load(ctx, eventID)
	if err != nil {
		h.refreshMu.Unlock()
		return nil, err
	}
	h.mu.Lock()
	if h.subs[eventID] == nil {
		h.subs[eventID] = make(map[*subscriber]struct{})
	}
	h.subs[eventID][sub] = struct{}{}
	sub.ch <- snapshot
	h.mu.Unlock()
	h.refreshMu.Unlock()

	go func() {
		<-ctx.Done()
		h.unsubscribe(eventID, sub)
	}()
	return sub.ch, nil
}

func (h *Hub) unsubscribe(eventID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[eventID]
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, eventID)
	}
	close(sub.ch)
}

// Notify reloads eventID's guest list and pushes it to its subscribers.
// It is a no-op when nobody is watching the event.
func (h *Hub) Notify(eventID string) {
	if h.subscriberCount(eventID) == 0 {
		return
	}
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	snapshot, err := h.load(context.Background(), eventID)
	if err != nil {
		h.logger.Warn("guest snapshot reload failed", "event_id", eventID, "err", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[eventID] {
		deliver(sub, snapshot)
	}
}

// NotifyAll refreshes every watched event. Used after the change feed reconnects
// and notifications may have been missed.
func (h *Hub) NotifyAll() {
	h.mu.Lock()
	ids := make([]string, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	for _, id := range ids {
		h.Notify(id)
	}
}

func (h *Hub) subscriberCount(eventID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[eventID])
}

func (h *Hub) load(ctx context.Context, eventID string) ([]*domain.Guest, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	guests, err := h.guests.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	return guests, nil
}

// deliver must be called with h.mu held; it is the only sender on sub.ch.
func deliver(sub *subscriber, snapshot []*domain.Guest) {
	select {
	case sub.ch <- snapshot:
		return
	default:
	}
	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- snapshot:
	default:
	}
}
