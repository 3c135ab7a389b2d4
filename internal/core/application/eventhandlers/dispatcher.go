package eventhandlers

import (
	"context"
	"log/slog"

	"parcelhub/internal/core/events"
)

// Handler reacts to one delivered event envelope. Implementations must be
// idempotent: the bus delivers at least once.
type Handler interface {
	Handle(ctx context.Context, envelope events.Envelope) error
}

// Dispatcher routes envelopes to the handlers registered for their topic.
// Envelopes on topics without handlers are acknowledged and dropped.
type Dispatcher struct {
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher with no registrations.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		logger:   logger.With("component", "dispatcher"),
	}
}

// Register adds a handler for a topic. Multiple handlers per topic run in
// registration order.
func (d *Dispatcher) Register(topic string, handler Handler) {
	d.handlers[topic] = append(d.handlers[topic], handler)
}

// Dispatch runs every handler registered for the envelope's topic. The first
// handler error stops the chain and is returned so the bus can redeliver.
func (d *Dispatcher) Dispatch(ctx context.Context, envelope events.Envelope) error {
	handlers, ok := d.handlers[envelope.Topic]
	if !ok {
		d.logger.DebugContext(ctx, "No handlers for topic",
			"topic", envelope.Topic, "eventId", envelope.EventID)
		return nil
	}

	for _, handler := range handlers {
		if err := handler.Handle(ctx, envelope); err != nil {
			return err
		}
	}

	return nil
}
