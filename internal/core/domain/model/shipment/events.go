package shipment

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

const (
	EventCreated       = "shipment.created"
	EventStatusChanged = "shipment.status_changed"
	EventDeleted       = "shipment.deleted"
)

// Created is raised by NewShipment.
type Created struct {
	ShipmentID   string    `json:"shipmentId"`
	Status       string    `json:"status"`
	FleetID      string    `json:"fleetId,omitempty"`
	CustomerName string    `json:"customerName"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	At           time.Time `json:"occurredAt"`
}

func (e Created) EventName() string     { return EventCreated }
func (e Created) AggregateID() string   { return e.ShipmentID }
func (e Created) OccurredAt() time.Time { return e.At }

// StatusChanged is raised whenever the status actually changes.
type StatusChanged struct {
	ShipmentID    string    `json:"shipmentId"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	FleetID       string    `json:"fleetId,omitempty"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	At            time.Time `json:"occurredAt"`
}

func (e StatusChanged) EventName() string     { return EventStatusChanged }
func (e StatusChanged) AggregateID() string   { return e.ShipmentID }
func (e StatusChanged) OccurredAt() time.Time { return e.At }

// Terminal reports whether the change ended the shipment lifecycle.
func (e StatusChanged) Terminal() bool {
	return e.To == Delivered.String() || e.To == Cancelled.String()
}

// Deleted is raised by MarkDeleted.
type Deleted struct {
	ShipmentID string    `json:"shipmentId"`
	Status     string    `json:"status"`
	FleetID    string    `json:"fleetId,omitempty"`
	At         time.Time `json:"occurredAt"`
}

func (e Deleted) EventName() string     { return EventDeleted }
func (e Deleted) AggregateID() string   { return e.ShipmentID }
func (e Deleted) OccurredAt() time.Time { return e.At }

var (
	_ kernel.DomainEvent = Created{}
	_ kernel.DomainEvent = StatusChanged{}
	_ kernel.DomainEvent = Deleted{}
)
