package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []kernel.DomainEvent
}

func (d *recordingDispatcher) Dispatch(_ context.Context, events []kernel.DomainEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, events...)
}

func (d *recordingDispatcher) names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.events))
	for _, e := range d.events {
		names = append(names, e.EventName())
	}
	return names
}

func (d *recordingDispatcher) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = nil
}

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	dispatcher *recordingDispatcher
	factory    ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.dispatcher = &recordingDispatcher{}
	suite.factory = adapter.NewGormUnitOfWorkFactory(database.DB, suite.dispatcher)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.dispatcher.reset()
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Begin is idempotent")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBeginFails() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDispatchPersistsShipmentAndVehicleTogether() {
	ctx := context.Background()
	vehicle := suite.seedVehicle("FLT-002")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.VehicleRepository().Get(ctx, vehicle.ID())
	suite.Require().NoError(err)
	s := suite.newShipment(locked)
	suite.Require().NoError(uow.VehicleRepository().Update(ctx, locked))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	stored, err := reader.ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Pending, stored.Status())
	suite.Equal("FLT-002", stored.Fleet().VehicleID().String())
	suite.True(stored.Weight().Equal(decimal.RequireFromString("120.50")))

	storedVehicle, err := reader.VehicleRepository().Get(ctx, vehicle.ID())
	suite.Require().NoError(err)
	suite.Equal(fleet.OnRoute, storedVehicle.Status())

	suite.Equal([]string{shipment.EventCreated}, suite.dispatcher.names())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsBothWritesAndEvents() {
	ctx := context.Background()
	vehicle := suite.seedVehicle("FLT-003")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.VehicleRepository().Get(ctx, vehicle.ID())
	suite.Require().NoError(err)
	s := suite.newShipment(locked)
	suite.Require().NoError(uow.VehicleRepository().Update(ctx, locked))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.ShipmentRepository().Get(ctx, s.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	storedVehicle, err := reader.VehicleRepository().Get(ctx, vehicle.ID())
	suite.Require().NoError(err)
	suite.Equal(fleet.Available, storedVehicle.Status())
	suite.Empty(suite.dispatcher.names())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSecondActiveShipmentForVehicleIsConflict() {
	ctx := context.Background()
	vehicle := suite.seedVehicle("FLT-004")

	first := suite.newShipment(vehicle)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, first))
	suite.Require().NoError(uow.Commit(ctx))

	// The vehicle row is still Available, so only the partial unique index
	// stands between the two shipments.
	second := suite.newShipment(suite.seedVehicleState(vehicle.ID(), fleet.Available))
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err := uow.ShipmentRepository().Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveredShipmentFreesIndexSlot() {
	ctx := context.Background()
	vehicle := suite.seedVehicle("FLT-005")
	first := suite.newShipment(vehicle)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, first))
	_, err := first.ChangeStatus(shipment.Delivered, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ShipmentRepository().Update(ctx, first))
	suite.Require().NoError(uow.Commit(ctx))

	second := suite.newShipment(suite.seedVehicleState(vehicle.ID(), fleet.Available))
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, second))
	suite.Require().NoError(uow.Commit(ctx))

	held, err := suite.factory.Create().ShipmentRepository().ActiveVehicleIDs(ctx)
	suite.Require().NoError(err)
	suite.Contains(held, "FLT-005")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolationBetweenUnitsOfWork() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.NotSame(uow1, uow2)

	s1 := suite.newShipment(nil)
	s2 := suite.newShipment(nil)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.ShipmentRepository().Add(ctx, s1))
	suite.Require().NoError(uow2.ShipmentRepository().Add(ctx, s2))

	_, err := uow1.ShipmentRepository().Get(ctx, s2.ID())
	suite.Require().Error(err, "uncommitted shipment of another unit of work is invisible")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.ShipmentRepository().Get(ctx, s1.ID())
	suite.Require().NoError(err)
	_, err = reader.ShipmentRepository().Get(ctx, s2.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedVehicle(code string) *fleet.Vehicle {
	ctx := context.Background()
	v, err := fleet.NewVehicle(kernel.MustParseCode(kernel.VehiclePrefix, code), fleet.Spec{
		PlateNumber: "B " + code[len(code)-3:] + " UOW",
		Type:        fleet.Truck,
		Capacity:    decimal.NewFromInt(5000),
	}, fleet.Driver{Name: "Wahyu"}, fleet.Available, time.Now().UTC())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, v))
	suite.Require().NoError(uow.Commit(ctx))
	return v
}

// seedVehicleState forces the stored vehicle status, simulating a manual edit.
func (suite *UnitOfWorkIntegrationTestSuite) seedVehicleState(id kernel.Code, status fleet.Status) *fleet.Vehicle {
	err := suite.database.DB.Exec("UPDATE fleet SET status = ? WHERE id = ?", status.String(), id.String()).Error
	suite.Require().NoError(err)

	v, err := suite.factory.Create().VehicleRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return v
}

// newShipment dispatches v (when not nil) and returns a Pending shipment on it.
func (suite *UnitOfWorkIntegrationTestSuite) newShipment(v *fleet.Vehicle) *shipment.Shipment {
	now := time.Now().UTC()
	var assignment *shipment.FleetAssignment
	if v != nil {
		a, err := services.NewShipmentWorkflow().Dispatch(v, now)
		suite.Require().NoError(err)
		assignment = a
	}

	customer, err := shipment.NewCustomer("Toko Makmur", "0813", "Jl. Pahlawan 3")
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(kernel.NewCode(kernel.ShipmentPrefix), shipment.Details{
		Customer:    customer,
		Origin:      "Jakarta Hub",
		Destination: "Medan Branch",
		Weight:      decimal.RequireFromString("120.50"),
	}, assignment, shipment.Pending, now)
	suite.Require().NoError(err)
	return s
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
