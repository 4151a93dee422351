package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then dispatches the domain
	// events raised by tracked aggregates.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and discards tracked aggregates.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Repositories below are bound to the transaction started by Begin().
	ShipmentRepository() ShipmentRepository
	VehicleRepository() VehicleRepository
	CustomerRepository() CustomerRepository
	LocationRepository() LocationRepository
	UserRepository() UserRepository
}

// EventDispatcher receives domain events after a successful commit. Delivery is
// best-effort: implementations log failures instead of returning them.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events []kernel.DomainEvent)
}
