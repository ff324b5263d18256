package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/event"

	"github.com/chiquitav2/user-console/internal/console/view"
	"github.com/chiquitav2/user-console/pkg/logger"
)

// EventNotification is fired for every notification shown to the operator
const EventNotification = "console.notification"

// Handler receives published notifications
type Handler func(n view.Notification)

// NotificationBus wraps the gookit event manager for console notifications
type NotificationBus struct {
	manager         *event.Manager
	logger          *logger.Logger
	defaultDuration time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewNotificationBus creates a bus. A non-positive duration falls back to
// view.DefaultDuration.
func NewNotificationBus(log *logger.Logger, defaultDuration time.Duration) *NotificationBus {
	if log == nil {
		log = logger.NewDiscard()
	}
	if defaultDuration <= 0 {
		defaultDuration = view.DefaultDuration
	}

	log.Debug("creating notification bus", slog.Duration("default_duration", defaultDuration))

	return &NotificationBus{
		manager:         event.NewManager("console"),
		logger:          log,
		defaultDuration: defaultDuration,
	}
}

// Publish stamps the notification with an id, creation time and duration,
// then fires it. Empty notifications are dropped.
func (b *NotificationBus) Publish(ctx context.Context, n view.Notification) (view.Notification, error) {
	if n.Empty() {
		return n, nil
	}

	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return n, fmt.Errorf("notification bus is closed")
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.Duration <= 0 {
		n.Duration = b.defaultDuration
	}
	if n.Level == "" {
		n.Level = view.LevelInfo
	}

	b.logger.WithContext(ctx).Debug("publishing notification",
		slog.String("id", n.ID),
		slog.String("level", string(n.Level)),
		slog.String("message", n.Message))

	err, _ := b.manager.Fire(EventNotification, event.M{"payload": n})
	if err != nil {
		b.logger.ErrorCtx(ctx, "failed to publish notification", err, slog.String("id", n.ID))
		return n, fmt.Errorf("failed to publish notification: %w", err)
	}
	return n, nil
}

// Subscribe registers a handler for all notifications
func (b *NotificationBus) Subscribe(handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return fmt.Errorf("notification bus is closed")
	}

	b.manager.On(EventNotification, event.ListenerFunc(func(e event.Event) error {
		n, ok := e.Get("payload").(view.Notification)
		if !ok {
			return fmt.Errorf("invalid notification payload: %T", e.Get("payload"))
		}
		handler(n)
		return nil
	}), event.Normal)

	return nil
}

// Close removes all subscribers; later publishes fail.
func (b *NotificationBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.manager.Clear()
	b.closed = true
	return nil
}
