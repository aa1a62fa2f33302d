package event

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tradekart/backend/internal/domain/shared"
)

// BusOptions controls how the bus dispatches events to handlers.
type BusOptions struct {
	// AsyncHandlers dispatches each event to its handlers on a separate
	// goroutine instead of inline with Publish. Stop waits for in-flight
	// handlers to finish.
	AsyncHandlers bool
	// HandlerTimeout bounds a single handler invocation. Zero means no
	// timeout.
	HandlerTimeout time.Duration
}

// InMemoryEventBus implements shared.EventBus with in-process pub/sub.
// Handler failures are logged and never propagate to the publisher, so a
// broken projection cannot roll back the mutation that produced the event.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	opts     BusOptions

	// mu guards running together with wg.Add so a publish racing Stop can
	// never add in-flight work after Stop has started waiting.
	mu      sync.RWMutex
	running bool
	wg      sync.WaitGroup
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger, opts BusOptions) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
		opts:     opts,
	}
}

// Publish delivers events to all registered handlers
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		handlers := b.registry.GetHandlers(event.EventType())

		if b.opts.AsyncHandlers && b.addInFlight() {
			go func(event shared.DomainEvent, handlers []shared.EventHandler) {
				defer b.wg.Done()
				// Detach from the publisher's context so the mutation's
				// transaction lifetime does not cancel the handlers.
				b.dispatch(context.Background(), event, handlers)
			}(event, handlers)
			continue
		}

		b.dispatch(ctx, event, handlers)
	}
	return nil
}

// addInFlight registers one unit of async work. It fails once Stop has begun,
// in which case the caller dispatches inline instead.
func (b *InMemoryEventBus) addInFlight() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.running {
		return false
	}
	b.wg.Add(1)
	return true
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, event shared.DomainEvent, handlers []shared.EventHandler) {
	for _, handler := range handlers {
		if err := b.dispatchToHandler(ctx, handler, event); err != nil {
			b.logger.Error("handler failed to process event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	// If handler specifies its own event types, use those
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Start starts the event bus
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.mu.Lock()
	b.running = true
	b.mu.Unlock()
	b.logger.Info("event bus started",
		zap.Bool("async_handlers", b.opts.AsyncHandlers),
	)
	return nil
}

// Stop stops the event bus after in-flight async handlers finish. Publishes
// arriving after Stop dispatch inline and are not lost.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	b.running = false
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		b.logger.Warn("event bus stopped before all handlers finished")
		return ctx.Err()
	}

	b.logger.Info("event bus stopped")
	return nil
}

// dispatchToHandler invokes one handler, recovering panics and applying the
// configured per-handler timeout
func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	if b.opts.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.HandlerTimeout)
		defer cancel()
	}

	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
