// Package events fans committed domain events out to the message brokers.
package events

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
)

// Publisher streams every event, typically to Kafka.
type Publisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}

// Notifier delivers customer notifications, typically through RabbitMQ.
type Notifier interface {
	NotifyStatusChanged(ctx context.Context, e shipment.StatusChanged) error
}

// Dispatcher implements ports.EventDispatcher. Either sink may be nil. Broker
// failures are logged and never reach the caller, whose transaction has
// already committed.
type Dispatcher struct {
	publisher Publisher
	notifier  Notifier
	logger    *slog.Logger
}

var _ ports.EventDispatcher = (*Dispatcher)(nil)

func NewDispatcher(publisher Publisher, notifier Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{publisher: publisher, notifier: notifier, logger: logger}
}

func (d *Dispatcher) Dispatch(ctx context.Context, events []kernel.DomainEvent) {
	if len(events) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, events...); err != nil {
			d.logger.ErrorContext(ctx, "failed to publish domain events",
				"count", len(events), "first", events[0].EventName(), "error", err)
		}
	}

	if d.notifier == nil {
		return
	}
	for _, e := range events {
		changed, ok := e.(shipment.StatusChanged)
		if !ok || !changed.Terminal() {
			continue
		}
		if err := d.notifier.NotifyStatusChanged(ctx, changed); err != nil {
			d.logger.ErrorContext(ctx, "failed to send shipment notification",
				"shipment_id", changed.ShipmentID, "status", changed.To, "error", err)
		}
	}
}
