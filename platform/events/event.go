// Package events is the in-process publish/subscribe layer the bounded
// contexts use to react to each other's writes. Event definitions live in
// internal/events.
package events

import (
	"context"
	"time"
)

// Event is anything published on the bus. Subscriptions are keyed by
// EventName, so two event types must never share a name.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent carries the timestamp every event shares. Embed it.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps an event with the wall clock.
func NewBaseEvent() BaseEvent {
	return NewBaseEventAt(time.Now())
}

// NewBaseEventAt stamps an event with a caller-supplied clock reading, so
// services with an injected clock publish the same instant they classified at.
func NewBaseEventAt(t time.Time) BaseEvent {
	return BaseEvent{Timestamp: t}
}

type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus delivers events to the handlers subscribed to their name.
type Bus interface {
	// Publish runs each handler on its own goroutine; failures are logged
	// and reported, never returned.
	Publish(ctx context.Context, event Event)

	// PublishSync runs handlers in subscription order and returns the
	// first error once all of them ran.
	PublishSync(ctx context.Context, event Event) error

	Subscribe(eventName string, handler Handler)
}
