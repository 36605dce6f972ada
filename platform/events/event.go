// Package events is the in-process publish/subscribe plumbing modules use
// to react to each other without importing each other. Event types live
// with the domain in internal/events.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is anything published on a Bus. EventName is the routing key.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	EventID() uuid.UUID
}

// BaseEvent is embedded by every event to carry its id and time.
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

func (e BaseEvent) EventID() uuid.UUID { return e.ID }

// NewBaseEvent stamps a fresh id and the current UTC time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{ID: uuid.New(), Timestamp: time.Now().UTC()}
}

// Handler reacts to one event. Asynchronous handlers may run after the
// publishing request returned, so they get a context without its deadline.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes events to the handlers subscribed to their name.
type Bus interface {
	// Publish fans out without waiting; handler errors are logged.
	Publish(ctx context.Context, event Event)
	// PublishSync runs handlers in order and joins their errors.
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}

// On subscribes handle to events of type E, routed by the zero value's
// EventName.
func On[E Event](bus Bus, handle func(ctx context.Context, event E) error) {
	var zero E
	bus.Subscribe(zero.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		typed, ok := event.(E)
		if !ok {
			return fmt.Errorf("%s: unexpected payload %T", zero.EventName(), event)
		}
		return handle(ctx, typed)
	}))
}
