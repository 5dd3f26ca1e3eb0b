// Package notify defines the boundary to the subsystem that fires
// time-based notifications and reports user interaction, plus an
// in-process implementation backed by one-shot timers.
package notify

import (
	"context"
	"time"
)

// AuthorizationStatus reports the outcome of a permission request.
type AuthorizationStatus int

// Permission outcomes.
const (
	AuthorizationDenied AuthorizationStatus = iota
	AuthorizationAuthorized
)

// Action identifiers carried by a notification's response buttons.
const (
	ActionYes = "yes-action"
	ActionNo  = "no-action"
)

// EventType distinguishes entries on the foreground event stream.
type EventType int

const (
	// EventDelivered means a notification was displayed.
	EventDelivered EventType = iota
	// EventActionPress means the user pressed one of the actions.
	EventActionPress
)

// Channel groups notifications for the underlying platform.
type Channel struct {
	ID   string
	Name string
}

// Action is a user-selectable response attached to a notification.
type Action struct {
	Title         string
	PressActionID string
}

// Notification is the payload handed over when arming a trigger.
type Notification struct {
	Title   string
	Body    string
	Actions []Action
}

// Event is one entry on the foreground event stream. ActionID is set
// only for action presses.
type Event struct {
	Type         EventType
	ActionID     string
	Notification Notification
}

// Notifier is the external subsystem that arms one-shot timestamp
// triggers and reports deliveries and action presses. Events is a single
// stream consumed by one subscriber for the life of the process.
type Notifier interface {
	RequestPermission(ctx context.Context) (AuthorizationStatus, error)
	CreateChannel(ctx context.Context, channel Channel) (string, error)
	ArmTimestampTrigger(ctx context.Context, notification Notification, fireAt time.Time, channelID string) error
	Events() <-chan Event
}
