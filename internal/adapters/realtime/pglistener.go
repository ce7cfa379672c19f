package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// GuestChangesChannel is the Postgres NOTIFY channel the rsvps trigger publishes
// event ids on (see the repository migrations).
const GuestChangesChannel = "rsvps_changed"

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// notifier is what the change feed drives; *Hub implements it.
type notifier interface {
	Notify(eventID string)
	NotifyAll()
}

// ListenForGuestChanges opens a LISTEN connection on dsn and forwards every
// notification to n until ctx is done. Notifications from other server
// instances reach local subscribers this way.
func ListenForGuestChanges(ctx context.Context, dsn string, n notifier, logger *slog.Logger) error {
	listener := pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("guest change listener", "event", ev, "err", err)
		}
	})
	if err := listener.Listen(GuestChangesChannel); err != nil {
		_ = listener.Close()
		return fmt.Errorf("listen %s: %w", GuestChangesChannel, err)
	}
	logger.Info("listening for guest changes", "channel", GuestChangesChannel)

	go func() {
		defer listener.Close()
		dispatch(ctx, listener.Notify, listener.Ping, n, logger)
	}()
	return nil
}

// dispatch is the listener loop. A nil notification means the connection was
// re-established, so every watched event is refreshed.
func dispatch(ctx context.Context, notifications <-chan *pq.Notification, ping func() error, n notifier, logger *slog.Logger) {
	ticker := time.NewTicker(listenerPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case note, ok := <-notifications:
			if !ok {
				return
			}
			if note == nil {
				n.NotifyAll()
				continue
			}
			logger.Debug("guest change", "event_id", note.Extra)
			n.Notify(note.Extra)
		case <-ticker.C:
			if err := ping(); err != nil {
				logger.Warn("guest change listener ping failed", "err", err)
			}
		}
	}
}
