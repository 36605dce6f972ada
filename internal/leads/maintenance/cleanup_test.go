package maintenance

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/events"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
)

type stubReconciler struct {
	stats Stats
	err   error
	opts  Options
}

func (s *stubReconciler) Run(_ context.Context, opts Options) (Stats, error) {
	s.opts = opts
	return s.stats, s.err
}

type capturingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *capturingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *capturingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *capturingBus) Subscribe(string, events.Handler) {}

func TestCleanDuplicatesPublishesOutcome(t *testing.T) {
	rec := &stubReconciler{stats: Stats{TotalLeads: 9, DuplicateGroups: 2, DuplicatesFound: 3, LeadsMerged: 3, InteractionsMoved: 11, DryRun: true}}
	bus := &capturingBus{}

	stats, err := NewCleanupService(rec, bus, logger.Discard()).CleanDuplicates(context.Background(), "admin@collegesera.in", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.opts.DryRun {
		t.Fatalf("dry run flag not forwarded")
	}
	if stats.LeadsMerged != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.events))
	}
	evt, ok := bus.events[0].(events.LeadsDeduplicated)
	if !ok || evt.RequestedBy != "admin@collegesera.in" || evt.InteractionsMoved != 11 || !evt.DryRun {
		t.Fatalf("unexpected event %+v", bus.events[0])
	}
}

func TestCleanDuplicatesDoesNotPublishOnFailure(t *testing.T) {
	rec := &stubReconciler{err: errors.New("load leads: timeout")}
	bus := &capturingBus{}

	if _, err := NewCleanupService(rec, bus, logger.Discard()).CleanDuplicates(context.Background(), "scheduler", false); err == nil {
		t.Fatalf("expected error")
	}
	if len(bus.events) != 0 {
		t.Fatalf("no event expected, got %d", len(bus.events))
	}
}
