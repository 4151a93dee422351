// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence and, after commit, an activity log entry.
package commands

import (
	"context"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// UoW manages transactions across shipment and vehicle aggregates.
	// Every workflow command uses it, because a shipment write and the paired
	// vehicle write must commit together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   vehicle, err := uow.VehicleRepository().Get(ctx, id) // row locked
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipmentRepoFactory
		VehicleRepoFactory
	}

	// UoWFactory creates new unit of work instances for workflow commands.
	UoWFactory interface {
		Create() UoW
	}

	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	LocationUoW interface {
		TxManager
		LocationRepoFactory
	}

	LocationUoWFactory interface {
		Create() LocationUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}
)

// AuditRecorder receives an entry for every committed command. Implementations
// must not fail the caller.
type AuditRecorder interface {
	Record(ctx context.Context, actor access.Actor, action activity.Action, details string)
}
