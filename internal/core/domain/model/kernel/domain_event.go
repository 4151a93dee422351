package kernel

import "time"

// DomainEvent is raised by an aggregate during a command and dispatched only
// after the surrounding transaction commits.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that raise domain events.
// PullEvents returns the pending events and clears them.
type EventSource interface {
	PullEvents() []DomainEvent
}
