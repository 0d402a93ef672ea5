package events

import (
	"context"
	"sync"

	"shopwise_backend/platform/logger"
)

// InMemoryBus is a process-local Bus implementation. Handlers registered for
// an event name run in registration order; Publish runs them on a goroutine
// per event, PublishSync runs them inline and stops on the first error.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event asynchronously. Handler errors are logged,
// never propagated to the publisher.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	registered := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	if len(registered) == 0 {
		return
	}

	go func() {
		for _, h := range registered {
			if err := h.Handle(context.WithoutCancel(ctx), event); err != nil && b.log != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err)
			}
		}
	}()
}

// PublishSync dispatches the event inline and returns the first handler error.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	registered := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, h := range registered {
		if err := h.Handle(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// Compile-time check that InMemoryBus implements Bus.
var _ Bus = (*InMemoryBus)(nil)
