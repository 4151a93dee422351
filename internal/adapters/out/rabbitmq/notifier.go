// Package rabbitmq sends customer notifications for finished shipments.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/rabbitmq/amqp091-go"
)

const (
	NotificationsExchange = "shipment_notifications"
	NotificationsQueue    = "shipment_notifications_queue"
)

// Channel is the subset of *amqp091.Channel the notifier needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type notification struct {
	ShipmentID    string    `json:"shipment_id"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Notifier struct {
	ch Channel
}

func NewNotifier(ch Channel) (*Notifier, error) {
	if ch == nil {
		return nil, errs.NewValueIsRequiredError("channel")
	}
	return &Notifier{ch: ch}, nil
}

// Setup declares the notifications topic exchange and its durable queue.
func Setup(ch *amqp091.Channel) error {
	if err := ch.ExchangeDeclare(NotificationsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", NotificationsExchange, err)
	}
	if _, err := ch.QueueDeclare(NotificationsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", NotificationsQueue, err)
	}
	if err := ch.QueueBind(NotificationsQueue, "shipment.#", NotificationsExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", NotificationsQueue, err)
	}
	return nil
}

// NotifyStatusChanged publishes a customer notification for a terminal
// status change. Other changes are ignored.
func (n *Notifier) NotifyStatusChanged(ctx context.Context, e shipment.StatusChanged) error {
	if !e.Terminal() {
		return nil
	}

	body, err := json.Marshal(notification{
		ShipmentID:    e.ShipmentID,
		Status:        e.To,
		CustomerName:  e.CustomerName,
		CustomerPhone: e.CustomerPhone,
		Message:       fmt.Sprintf("Shipment %s is %s", e.ShipmentID, e.To),
		OccurredAt:    e.At,
	})
	if err != nil {
		return err
	}

	err = n.ch.PublishWithContext(ctx, NotificationsExchange, routingKey(e.To), false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    e.ShipmentID,
			Timestamp:    e.At,
			Body:         body,
		})
	if err != nil {
		return errs.NewDependencyError("rabbitmq", err)
	}
	return nil
}

func routingKey(status string) string {
	if status == shipment.Delivered.String() {
		return "shipment.delivered"
	}
	return "shipment.cancelled"
}
