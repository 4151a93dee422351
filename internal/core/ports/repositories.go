// Package ports defines the contracts between the application core and its
// infrastructure adapters: repositories, the unit of work, identity services and
// event publishing.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/user"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Shipments are addressed by their human-readable code.
type ShipmentRepository interface {
	// Add persists a new shipment. A second active shipment for the same vehicle
	// fails with a conflict error.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Delete removes the shipment row. The aggregate is tracked so its Deleted
	// event is published after commit.
	Delete(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment and locks its row until the transaction ends.
	Get(ctx context.Context, id kernel.Code) (*shipment.Shipment, error)

	// HasActiveForVehicle reports whether a Pending or In Transit shipment
	// references the vehicle.
	HasActiveForVehicle(ctx context.Context, vehicleID kernel.Code) (bool, error)

	// ActiveVehicleIDs returns the codes of all vehicles held by active shipments.
	ActiveVehicleIDs(ctx context.Context) (map[string]struct{}, error)
}

// VehicleRepository defines the persistence contract for fleet vehicles.
type VehicleRepository interface {
	Add(ctx context.Context, aggregate *fleet.Vehicle) error
	Update(ctx context.Context, aggregate *fleet.Vehicle) error
	Delete(ctx context.Context, id kernel.Code) error

	// Get retrieves a vehicle with SELECT ... FOR UPDATE so that concurrent
	// status writes on the same vehicle are serialized.
	Get(ctx context.Context, id kernel.Code) (*fleet.Vehicle, error)

	// GetAll retrieves every vehicle, locked for update.
	GetAll(ctx context.Context) ([]*fleet.Vehicle, error)
}

type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Update(ctx context.Context, aggregate *customer.Customer) error
	Delete(ctx context.Context, id kernel.Code) error
	Get(ctx context.Context, id kernel.Code) (*customer.Customer, error)
}

type LocationRepository interface {
	Add(ctx context.Context, aggregate *location.Location) error
	Update(ctx context.Context, aggregate *location.Location) error
	Delete(ctx context.Context, id kernel.Code) error
	Get(ctx context.Context, id kernel.Code) (*location.Location, error)
}

// UserRepository defines the persistence contract for users, keyed by UUID.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByUsername returns a not found error when no user has that username.
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// ActivityLog appends audit entries. It is used outside business transactions.
type ActivityLog interface {
	Append(ctx context.Context, entry *activity.Entry) error
}
