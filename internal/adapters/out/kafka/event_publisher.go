// Package kafka publishes shipment domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// Writer is the subset of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type envelope struct {
	Name        string             `json:"name"`
	AggregateID string             `json:"aggregateId"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Payload     kernel.DomainEvent `json:"payload"`
}

type EventPublisher struct {
	writer Writer
}

// NewWriter returns a writer for topic on the given brokers.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func NewEventPublisher(writer Writer) (*EventPublisher, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	return &EventPublisher{writer: writer}, nil
}

// Publish writes all events in one batch keyed by aggregate id so events of
// one shipment stay ordered within a partition.
func (p *EventPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(envelope{
			Name:        e.EventName(),
			AggregateID: e.AggregateID(),
			OccurredAt:  e.OccurredAt(),
			Payload:     e,
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.AggregateID()),
			Value: value,
			Time:  e.OccurredAt(),
			Headers: []kafka.Header{
				{Key: "event", Value: []byte(e.EventName())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return errs.NewDependencyError("kafka", err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
