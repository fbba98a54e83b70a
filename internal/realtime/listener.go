package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"rz-parfum-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Postgres notification channels filled by the change triggers.
const (
	ChannelOrders  = "orders_changes"
	ChannelReviews = "reviews_changes"
)

var (
	ErrUnknownChannel = errors.New("unknown notification channel")
	ErrBadPayload     = errors.New("malformed notification payload")
)

const pingInterval = 90 * time.Second

// notificationSource is the subset of *pq.Listener the bridge relies on.
type notificationSource interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// PGListener republishes Postgres change notifications on the hub.
type PGListener struct {
	hub    *Hub
	source notificationSource
}

func NewPGListener(dsn string, hub *Hub) *PGListener {
	report := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.L().Warn("pg listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	}
	return newPGListener(pq.NewListener(dsn, 10*time.Second, time.Minute, report), hub)
}

func newPGListener(src notificationSource, hub *Hub) *PGListener {
	return &PGListener{hub: hub, source: src}
}

// Run blocks until ctx is cancelled or the source shuts down.
func (l *PGListener) Run(ctx context.Context) error {
	defer l.source.Close()

	for _, ch := range []string{ChannelOrders, ChannelReviews} {
		if err := l.source.Listen(ch); err != nil {
			return fmt.Errorf("listen %s: %w", ch, err)
		}
	}

	log := logger.FromCtx(ctx).With(zap.String("layer", "realtime"))
	log.Info("pg listener started")

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("pg listener stopped")
			return nil
		case n, ok := <-l.source.NotificationChannel():
			if !ok {
				return nil
			}
			if n == nil {
				// connection was re-established, notifications may have been missed
				log.Warn("pg listener reconnected")
				continue
			}
			l.dispatch(ctx, n)
		case <-ticker.C:
			if err := l.source.Ping(); err != nil {
				log.Warn("pg listener ping failed", zap.Error(err))
			}
		}
	}
}

func (l *PGListener) dispatch(ctx context.Context, n *pq.Notification) {
	event, err := decodeNotification(n)
	if err != nil {
		logger.FromCtx(ctx).Warn("skipping notification",
			zap.String("channel", n.Channel),
			zap.Error(err),
		)
		return
	}
	l.hub.Publish(ctx, event)
}

type notificationPayload struct {
	Op     string          `json:"op"`
	Record json.RawMessage `json:"record"`
}

func decodeNotification(n *pq.Notification) (Event, error) {
	var p notificationPayload
	if err := json.Unmarshal([]byte(n.Extra), &p); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	typ := EventType(strings.ToLower(p.Op))
	switch typ {
	case EventInsert, EventUpdate, EventDelete:
	default:
		return Event{}, fmt.Errorf("%w: op %q", ErrBadPayload, p.Op)
	}

	event := Event{Type: typ, Payload: p.Record, At: time.Now().UTC()}

	switch n.Channel {
	case ChannelOrders:
		event.Topic = TopicOrders
	case ChannelReviews:
		var rec struct {
			ProductID string `json:"product_id"`
		}
		if err := json.Unmarshal(p.Record, &rec); err != nil || rec.ProductID == "" {
			return Event{}, fmt.Errorf("%w: review without product_id", ErrBadPayload)
		}
		event.Topic = ReviewsTopic(rec.ProductID)
	default:
		return Event{}, fmt.Errorf("%w: %s", ErrUnknownChannel, n.Channel)
	}

	return event, nil
}
