package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
)

type pingEvent struct {
	BaseEvent
}

func (pingEvent) EventName() string { return "test.ping" }

func TestPublishRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
			calls.Add(1)
			return nil
		}))
	}

	bus.Publish(context.Background(), pingEvent{BaseEvent: NewBaseEvent()})
	bus.Wait()

	if calls.Load() != 3 {
		t.Fatalf("expected 3 handler calls, got %d", calls.Load())
	}
}

func TestPublishSurvivesPanics(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var calls atomic.Int32

	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		panic("boom")
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		calls.Add(1)
		return nil
	}))

	bus.Publish(context.Background(), pingEvent{BaseEvent: NewBaseEvent()})
	bus.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected surviving handler to run")
	}
}

func TestPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	first := errors.New("first")
	second := errors.New("second")

	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error { return first }))
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error { return second }))

	err := bus.PublishSync(context.Background(), pingEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both errors to be joined, got %v", err)
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	if err := bus.PublishSync(context.Background(), pingEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewBaseEventStampsUniqueIDs(t *testing.T) {
	a, b := NewBaseEvent(), NewBaseEvent()
	if a.EventID() == b.EventID() {
		t.Fatalf("expected distinct event ids")
	}
	if a.OccurredAt().Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %s", a.OccurredAt().Location())
	}
}

type pongEvent struct {
	BaseEvent
	Reply string
}

func (pongEvent) EventName() string { return "test.pong" }

func TestOnDeliversTypedEvents(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())

	var got []string
	On(bus, func(_ context.Context, e pongEvent) error {
		got = append(got, e.Reply)
		return nil
	})

	if err := bus.PublishSync(context.Background(), pongEvent{BaseEvent: NewBaseEvent(), Reply: "pong"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bus.PublishSync(context.Background(), pingEvent{}); err != nil {
		t.Fatalf("other event names must not reach the handler: %v", err)
	}
	if len(got) != 1 || got[0] != "pong" {
		t.Fatalf("expected one typed delivery, got %v", got)
	}
}
