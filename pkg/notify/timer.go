package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const eventBuffer = 16

// TimerNotifier is an in-process Notifier backed by one-shot timers.
// Permission is always granted and channels live in memory. A trigger
// whose timestamp has already elapsed fires immediately.
type TimerNotifier struct {
	events chan Event

	mu       sync.Mutex
	channels map[string]Channel
	timers   []*time.Timer
	closed   bool
}

// NewTimerNotifier creates a TimerNotifier ready to arm triggers.
func NewTimerNotifier() *TimerNotifier {
	return &TimerNotifier{
		events:   make(chan Event, eventBuffer),
		channels: map[string]Channel{},
	}
}

// RequestPermission always grants; there is no OS permission to ask for.
func (t *TimerNotifier) RequestPermission(ctx context.Context) (AuthorizationStatus, error) {
	return AuthorizationAuthorized, nil
}

// CreateChannel registers the channel and returns its id. Creating the
// same channel again is a no-op returning the same id.
func (t *TimerNotifier) CreateChannel(ctx context.Context, channel Channel) (string, error) {
	if channel.ID == "" {
		return "", fmt.Errorf("channel id must not be empty")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return "", fmt.Errorf("notifier is closed")
	}

	t.channels[channel.ID] = channel

	return channel.ID, nil
}

// ArmTimestampTrigger schedules a one-shot delivery of the notification
// at fireAt. An elapsed fireAt fires immediately; the channel must have
// been created first.
func (t *TimerNotifier) ArmTimestampTrigger(
	ctx context.Context,
	notification Notification,
	fireAt time.Time,
	channelID string,
) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("notifier is closed")
	}

	if _, ok := t.channels[channelID]; !ok {
		return fmt.Errorf("unknown channel %q", channelID)
	}

	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}

	timer := time.AfterFunc(delay, func() {
		t.emit(Event{Type: EventDelivered, Notification: notification})
	})

	t.timers = append(t.timers, timer)

	return nil
}

// Press reports that the user pressed the action with the given id on a
// delivered notification.
func (t *TimerNotifier) Press(actionID string) {
	t.emit(Event{Type: EventActionPress, ActionID: actionID})
}

// Events returns the foreground event stream.
func (t *TimerNotifier) Events() <-chan Event {
	return t.events
}

// Close stops all pending timers and closes the event stream.
func (t *TimerNotifier) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	t.closed = true

	for _, timer := range t.timers {
		timer.Stop()
	}

	close(t.events)
}

func (t *TimerNotifier) emit(event Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	select {
	case t.events <- event:
	default:
		log.Warn().Msg("dropping notifier event; stream is full")
	}
}
