package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"logistics/internal/adapters/out/events"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, evs ...kernel.DomainEvent) error {
	return m.Called(ctx, evs).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyStatusChanged(ctx context.Context, e shipment.StatusChanged) error {
	return m.Called(ctx, e).Error(0)
}

func TestDispatcher_PublishesAllAndNotifiesTerminal(t *testing.T) {
	publisher := new(MockPublisher)
	notifier := new(MockNotifier)
	created := shipment.Created{ShipmentID: "SHP-1"}
	moving := shipment.StatusChanged{ShipmentID: "SHP-1", From: "Pending", To: "In Transit"}
	delivered := shipment.StatusChanged{ShipmentID: "SHP-1", From: "In Transit", To: "Delivered"}
	all := []kernel.DomainEvent{created, moving, delivered}

	publisher.On("Publish", mock.Anything, all).Return(nil).Once()
	notifier.On("NotifyStatusChanged", mock.Anything, delivered).Return(nil).Once()

	events.NewDispatcher(publisher, notifier, nil).Dispatch(context.Background(), all)

	publisher.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestDispatcher_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	publisher := new(MockPublisher)
	notifier := new(MockNotifier)
	cancelled := shipment.StatusChanged{ShipmentID: "SHP-2", From: "Pending", To: "Cancelled"}

	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("kafka down"))
	notifier.On("NotifyStatusChanged", mock.Anything, cancelled).Return(errors.New("amqp down"))

	events.NewDispatcher(publisher, notifier, logger).Dispatch(context.Background(), []kernel.DomainEvent{cancelled})

	assert.Contains(t, buf.String(), "failed to publish domain events")
	assert.Contains(t, buf.String(), "failed to send shipment notification")
	assert.Contains(t, buf.String(), "shipment_id=SHP-2")
}

func TestDispatcher_NilSinks(t *testing.T) {
	d := events.NewDispatcher(nil, nil, nil)

	require.NotPanics(t, func() {
		d.Dispatch(context.Background(), []kernel.DomainEvent{shipment.Deleted{ShipmentID: "SHP-3"}})
	})
}

func TestDispatcher_EmptyBatch(t *testing.T) {
	publisher := new(MockPublisher)

	events.NewDispatcher(publisher, nil, nil).Dispatch(context.Background(), nil)

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
