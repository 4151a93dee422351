// Package postgres provides the GORM-based Unit of Work and database bootstrap.
//
// The Unit of Work keeps one PostgreSQL transaction per business operation, so a
// shipment write and the paired vehicle write either both commit or both roll
// back. Repositories created by the unit of work run inside that transaction.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	vehicle, err := uow.VehicleRepository().Get(ctx, vehicleID) // SELECT ... FOR UPDATE
//	...
//	return uow.Commit(ctx)
//
// Domain events raised by tracked aggregates are handed to the EventDispatcher
// only after Commit succeeds. A rollback discards them.
package postgres

import (
	"context"

	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/adapters/out/postgres/fleetrepo"
	"logistics/internal/adapters/out/postgres/locationrepo"
	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/adapters/out/postgres/userrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	dispatcher ports.EventDispatcher
}

// NewGormUnitOfWorkFactory creates a factory. dispatcher may be nil, in which
// case domain events are dropped after commit.
func NewGormUnitOfWorkFactory(db *gorm.DB, dispatcher ports.EventDispatcher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, dispatcher: dispatcher}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		dispatcher:        f.dispatcher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	dispatcher        ports.EventDispatcher
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Calling Begin twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and dispatches the pulled domain events.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.dispatchEvents(ctx)
	return nil
}

// Rollback discards the transaction and the tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) VehicleRepository() ports.VehicleRepository {
	return fleetrepo.NewGormVehicleRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) LocationRepository() ports.LocationRepository {
	return locationrepo.NewGormLocationRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the ids of the aggregates tracked so far.
func (uow *GormUnitOfWork) TrackedAggregates() []string {
	ids := make([]string, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) dispatchEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	events := make([]kernel.DomainEvent, 0)
	for _, t := range tracked {
		if source, ok := t.Aggregate.(kernel.EventSource); ok {
			events = append(events, source.PullEvents()...)
		}
	}

	if len(events) == 0 || uow.dispatcher == nil {
		return
	}
	uow.dispatcher.Dispatch(context.WithoutCancel(ctx), events)
}
