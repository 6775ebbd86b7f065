package events

import (
	"context"
	"fmt"
	"sync"

	"followup_backend/platform/logger"
)

// InMemoryBus is a process-local Bus. Subscriptions are expected to happen
// during module wiring, before traffic starts, but are safe at any time.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
	log      *logger.Logger
	reporter FailureReporter
}

// FailureReporter receives handler errors and panics for alerting.
type FailureReporter interface {
	Capture(err error, tags map[string]string)
}

// NewInMemoryBus creates an empty bus that logs handler failures to log.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// SetReporter forwards handler failures to r in addition to the log.
// Call it during wiring, before events are published.
func (b *InMemoryBus) SetReporter(r FailureReporter) {
	b.reporter = r
}

// Subscribe registers a handler for eventName.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish runs every handler for the event on its own goroutine.
// The handlers get a context detached from the caller's cancellation so a
// finished HTTP request does not cut them short.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	handlers := b.snapshot(event.EventName())
	if len(handlers) == 0 {
		return
	}

	detached := context.WithoutCancel(ctx)
	for _, h := range handlers {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			if err := b.invoke(detached, h, event); err != nil {
				b.logFailure(event, err)
			}
		}(h)
	}
}

// PublishSync runs handlers in subscription order and returns the first error.
// Later handlers still run after an earlier one fails.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	var firstErr error
	for _, h := range b.snapshot(event.EventName()) {
		if err := b.invoke(ctx, h, event); err != nil {
			b.logFailure(event, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Wait blocks until every in-flight async handler has returned.
func (b *InMemoryBus) Wait() {
	b.wg.Wait()
}

func (b *InMemoryBus) snapshot(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	handlers := b.handlers[eventName]
	out := make([]Handler, len(handlers))
	copy(out, handlers)
	return out
}

func (b *InMemoryBus) invoke(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panic: %v", r)
		}
	}()
	return h.Handle(ctx, event)
}

func (b *InMemoryBus) logFailure(event Event, err error) {
	if b.reporter != nil {
		b.reporter.Capture(err, map[string]string{"event": event.EventName()})
	}
	if b.log == nil {
		return
	}
	b.log.Error("event handler failed", "event", event.EventName(), "error", err)
}
