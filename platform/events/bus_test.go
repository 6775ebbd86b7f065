package events

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"followup_backend/platform/logger"
)

type pingEvent struct {
	BaseEvent
}

func (pingEvent) EventName() string { return "test.ping" }

func newTestBus() *InMemoryBus {
	return NewInMemoryBus(logger.NewWithWriter("production", io.Discard))
}

func TestPublishRunsEveryHandler(t *testing.T) {
	bus := newTestBus()
	var calls atomic.Int32
	for range 3 {
		bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
			calls.Add(1)
			return nil
		}))
	}

	bus.Publish(context.Background(), pingEvent{NewBaseEvent()})
	bus.Wait()

	if calls.Load() != 3 {
		t.Fatalf("expected 3 handler calls, got %d", calls.Load())
	}
}

func TestPublishSyncRecoversPanicsAndContinues(t *testing.T) {
	bus := newTestBus()
	var reached bool
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		panic("boom")
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		reached = true
		return errors.New("second")
	}))

	err := bus.PublishSync(context.Background(), pingEvent{NewBaseEvent()})
	if err == nil {
		t.Fatal("expected the panic to surface as an error")
	}
	if !reached {
		t.Fatal("expected the second handler to run after the first panicked")
	}
}

func TestPublishIgnoresOtherEventNames(t *testing.T) {
	bus := newTestBus()
	bus.Subscribe("other", HandlerFunc(func(context.Context, Event) error {
		t.Error("unexpected handler call")
		return nil
	}))

	if err := bus.PublishSync(context.Background(), pingEvent{NewBaseEvent()}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPublishDetachesCancellation(t *testing.T) {
	bus := newTestBus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var live atomic.Value
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, _ Event) error {
		live.Store(ctx.Err() == nil)
		return nil
	}))
	bus.Publish(ctx, pingEvent{NewBaseEvent()})
	bus.Wait()

	if ok, _ := live.Load().(bool); !ok {
		t.Fatal("expected handler context to ignore caller cancellation")
	}
}

type tagRecorder struct {
	mu   sync.Mutex
	tags []map[string]string
}

func (r *tagRecorder) Capture(_ error, tags map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = append(r.tags, tags)
}

func TestFailuresReachReporter(t *testing.T) {
	bus := newTestBus()
	reporter := &tagRecorder{}
	bus.SetReporter(reporter)
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		return errors.New("cache unavailable")
	}))

	bus.Publish(context.Background(), pingEvent{NewBaseEvent()})
	bus.Wait()

	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	if len(reporter.tags) != 1 || reporter.tags[0]["event"] != "test.ping" {
		t.Fatalf("unexpected reports %v", reporter.tags)
	}
}
