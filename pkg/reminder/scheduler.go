// Package reminder validates requested reminder times, arms one-shot
// triggers with the notifier, and records the user's response in the
// reminder event log.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Nirav-vruttitech/taskreminder/pkg/events"
	"github.com/Nirav-vruttitech/taskreminder/pkg/notify"
	"github.com/rs/zerolog/log"
)

// ErrInvalidTime reports hour/minute input that cannot be scheduled.
var ErrInvalidTime = errors.New("invalid time")

// ErrSchedulingFailed reports that the notifier rejected the arm request.
var ErrSchedulingFailed = errors.New("scheduling failed")

const (
	maxHour   = 23
	maxMinute = 59
)

// Scheduler coordinates between the notifier and the reminder event log.
// It holds no persisted state of its own.
type Scheduler struct {
	notifier notify.Notifier
	eventLog *events.Log
	channel  notify.Channel

	onDelivered func(notify.Notification)
	onRecorded  func()

	now func() time.Time
}

// NewScheduler creates a Scheduler that arms triggers on the given
// channel and records responses in eventLog.
func NewScheduler(notifier notify.Notifier, eventLog *events.Log, channel notify.Channel) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		eventLog: eventLog,
		channel:  channel,
		now:      time.Now,
	}
}

// SetOnDelivered registers a hook invoked from Run whenever the notifier
// delivers a notification, so a UI can present its actions.
func (s *Scheduler) SetOnDelivered(hook func(notify.Notification)) {
	s.onDelivered = hook
}

// SetOnRecorded registers a hook invoked from Run after a response row
// has been written, so a UI can refresh its view of the log.
func (s *Scheduler) SetOnRecorded(hook func()) {
	s.onRecorded = hook
}

// ValidateAndArm parses the hour and minute strings, and on success arms
// exactly one trigger for today at hour:minute:00 local time, returning
// the absolute fire instant. A fire time already in the past is armed
// as-is and fires immediately; there is no rollover to the next day.
//
// Bad input yields ErrInvalidTime before anything reaches the notifier.
// The permission request is best-effort: a denial is logged and
// scheduling proceeds. A notifier failure yields ErrSchedulingFailed and
// nothing is written to the event log.
func (s *Scheduler) ValidateAndArm(ctx context.Context, hourStr, minuteStr string) (time.Time, error) {
	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: hour %q is not a number", ErrInvalidTime, hourStr)
	}

	minute, err := strconv.Atoi(strings.TrimSpace(minuteStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: minute %q is not a number", ErrInvalidTime, minuteStr)
	}

	if hour < 0 || hour > maxHour {
		return time.Time{}, fmt.Errorf("%w: hour %d out of range", ErrInvalidTime, hour)
	}

	if minute < 0 || minute > maxMinute {
		return time.Time{}, fmt.Errorf("%w: minute %d out of range", ErrInvalidTime, minute)
	}

	status, err := s.notifier.RequestPermission(ctx)
	if err != nil || status != notify.AuthorizationAuthorized {
		log.Warn().Err(err).Msg("notification permission not granted; scheduling anyway")
	}

	now := s.now()
	fireAt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	channelID, err := s.notifier.CreateChannel(ctx, s.channel)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: creating channel: %v", ErrSchedulingFailed, err)
	}

	notification := notify.Notification{
		Title: "Meeting Reminder",
		Body:  fmt.Sprintf("Scheduled for today at %d:%d", hour, minute),
		Actions: []notify.Action{
			{Title: "Yes", PressActionID: notify.ActionYes},
			{Title: "No", PressActionID: notify.ActionNo},
		},
	}

	if err := s.notifier.ArmTimestampTrigger(ctx, notification, fireAt, channelID); err != nil {
		return time.Time{}, fmt.Errorf("%w: arming trigger: %v", ErrSchedulingFailed, err)
	}

	log.Info().Time("fire_at", fireAt).Msg("reminder armed")

	return fireAt, nil
}

// Run consumes the notifier's event stream until ctx is done or the
// stream closes. Each action press appends exactly one row to the event
// log per delivery; a redelivered press appends again, with no
// deduplication. A notification whose actions are never pressed simply
// never produces a row.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-s.notifier.Events():
			if !ok {
				return nil
			}

			s.handle(ctx, event)
		}
	}
}

func (s *Scheduler) handle(ctx context.Context, event notify.Event) {
	switch event.Type {
	case notify.EventDelivered:
		log.Debug().Str("title", event.Notification.Title).Msg("notification delivered")

		if s.onDelivered != nil {
			s.onDelivered(event.Notification)
		}
	case notify.EventActionPress:
		switch event.ActionID {
		case notify.ActionYes:
			s.eventLog.Record(ctx, events.StatusAccepted, s.now())
		case notify.ActionNo:
			s.eventLog.Record(ctx, events.StatusDeclined, s.now())
		default:
			log.Debug().Str("action", event.ActionID).Msg("ignoring unknown action press")

			return
		}

		if s.onRecorded != nil {
			s.onRecorded()
		}
	}
}
