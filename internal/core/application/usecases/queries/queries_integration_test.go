package queries_test

import (
	"context"
	"sync"
	"testing"
	"time"

	adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/activityrepo"
	"logistics/internal/adapters/out/postgres/locationrepo"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/application/access"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = adapter.NewGormUnitOfWorkFactory(database.DB, nil)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) TestListShipments_NewestFirstWithStatusFilter() {
	ctx := context.Background()
	older := suite.seedShipment(nil, shipment.Pending, time.Now().Add(-time.Hour))
	newer := suite.seedShipment(nil, shipment.InTransit, time.Now())
	handler := queries.NewShipmentQueryHandler(suite.database.DB)

	query, err := queries.NewListShipmentsQuery(staff(), "")
	suite.Require().NoError(err)
	all, err := handler.List(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal(newer.ID().String(), all[0].ID)
	suite.Equal(older.ID().String(), all[1].ID)

	query, err = queries.NewListShipmentsQuery(staff(), "in transit")
	suite.Require().NoError(err)
	filtered, err := handler.List(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(filtered, 1)
	suite.Equal("In Transit", filtered[0].Status)
}

func (suite *QueriesIntegrationTestSuite) TestListShipments_DriverSeesOwnVehicleOnly() {
	ctx := context.Background()
	driver := driverActor()
	mine := suite.seedVehicle("FLT-101", &driver.UserID)
	theirs := suite.seedVehicle("FLT-102", nil)
	own := suite.seedShipment(mine, shipment.Pending, time.Now())
	other := suite.seedShipment(theirs, shipment.Pending, time.Now())
	handler := queries.NewShipmentQueryHandler(suite.database.DB)

	query, err := queries.NewListShipmentsQuery(driver, "")
	suite.Require().NoError(err)
	result, err := handler.List(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(own.ID().String(), result[0].ID)
	suite.Equal("FLT-101", *result[0].VehicleID)

	get, err := queries.NewGetShipmentQuery(driver, other.ID().String())
	suite.Require().NoError(err)
	_, err = handler.Get(ctx, get)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestGetShipment_NotFound() {
	query, err := queries.NewGetShipmentQuery(staff(), "SHP-00000000")
	suite.Require().NoError(err)

	_, err = queries.NewShipmentQueryHandler(suite.database.DB).Get(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestTrackShipment_ResolvesCoordinates() {
	ctx := context.Background()
	suite.seedLocation("Jakarta Hub", -6.2, 106.8)
	v := suite.seedVehicle("FLT-110", nil)
	s := suite.seedShipment(v, shipment.InTransit, time.Now())

	query, err := queries.NewTrackShipmentQuery(staff(), s.ID().String())
	suite.Require().NoError(err)
	view, err := queries.NewShipmentQueryHandler(suite.database.DB).Track(ctx, query)

	suite.Require().NoError(err)
	suite.True(view.Origin.Known)
	suite.InDelta(-6.2, view.Origin.Lat, 1e-9)
	suite.False(view.Destination.Known)
	suite.Require().NotNil(view.VehicleStatus)
	suite.Equal("On Route", *view.VehicleStatus)
}

func (suite *QueriesIntegrationTestSuite) TestVehicles_DriverFilter() {
	ctx := context.Background()
	driver := driverActor()
	suite.seedVehicle("FLT-201", &driver.UserID)
	suite.seedVehicle("FLT-202", nil)
	handler := queries.NewVehicleQueryHandler(suite.database.DB)

	all, err := handler.List(ctx, queries.NewListVehiclesQuery(staff()))
	suite.Require().NoError(err)
	suite.Len(all, 2)

	own, err := handler.List(ctx, queries.NewListVehiclesQuery(driver))
	suite.Require().NoError(err)
	suite.Require().Len(own, 1)
	suite.Equal("FLT-201", own[0].ID)
	suite.Equal("Diesel", own[0].FuelType)

	get, err := queries.NewGetVehicleQuery(driver, "FLT-202")
	suite.Require().NoError(err)
	_, err = handler.Get(ctx, get)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestAvailableDrivers() {
	ctx := context.Background()
	assigned := suite.seedUser("andi", user.Driver)
	suite.seedUser("budi", user.Driver)
	suite.seedUser("citra", user.Staff)
	suite.seedVehicle("FLT-301", &assigned)

	drivers, err := queries.NewDirectoryQueryHandler(suite.database.DB).ListAvailableDrivers(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(drivers, 2)
	suite.Equal("andi", drivers[0].Username)
	suite.Require().NotNil(drivers[0].AssignedVehicle)
	suite.Equal("FLT-301", drivers[0].AssignedVehicle.ID)
	suite.Nil(drivers[1].AssignedVehicle)
}

func (suite *QueriesIntegrationTestSuite) TestActivityLog_JoinsUser() {
	ctx := context.Background()
	userID := suite.seedUser("andi", user.Manager)
	log := activityrepo.NewGormActivityLog(suite.database.DB)

	for i := range 3 {
		entry, err := activity.NewEntry(kernel.NewUUID(), userID, activity.Login, "User andi logged in", "10.0.0.1",
			time.Now().UTC().Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(err)
		suite.Require().NoError(log.Append(ctx, entry))
	}
	orphan, err := activity.NewEntry(kernel.NewUUID(), kernel.NewUUID(), activity.Logout, "gone", "", time.Now().UTC().Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(log.Append(ctx, orphan))

	entries, err := queries.NewActivityLogQueryHandler(suite.database.DB).Handle(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 4)
	suite.Nil(entries[0].User)
	suite.Require().NotNil(entries[1].User)
	suite.Equal("andi", entries[1].User.Username)
	suite.Equal("MANAGER", entries[1].User.Role)
}

func (suite *QueriesIntegrationTestSuite) TestDashboardStats() {
	ctx := context.Background()
	onRoute := suite.seedVehicle("FLT-401", nil)
	suite.seedVehicle("FLT-402", nil)
	suite.seedShipment(onRoute, shipment.InTransit, time.Now())
	suite.seedShipment(nil, shipment.Delivered, time.Now())
	suite.seedShipment(nil, shipment.Delivered, time.Now())
	suite.seedShipment(nil, shipment.Cancelled, time.Now())
	handler := queries.NewDashboardStatsQueryHandler(suite.database.DB)

	var wg sync.WaitGroup
	results := make([]queries.DashboardStats, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats, err := handler.Handle(ctx)
			suite.NoError(err)
			results[i] = stats
		}()
	}
	wg.Wait()

	for _, stats := range results {
		suite.EqualValues(4, stats.TotalShipments)
		suite.EqualValues(1, stats.InTransitShipments)
		suite.EqualValues(2, stats.DeliveredShipments)
		suite.EqualValues(2, stats.TotalVehicles)
		suite.EqualValues(1, stats.OnRouteVehicles)
		suite.InDelta(50.0, stats.CompletionRate, 1e-9)
		suite.InDelta(50.0, stats.FleetUtilization, 1e-9)
	}
}

func (suite *QueriesIntegrationTestSuite) seedVehicle(code string, driverID *kernel.UUID) *fleet.Vehicle {
	ctx := context.Background()
	v, err := fleet.NewVehicle(kernel.MustParseCode(kernel.VehiclePrefix, code), fleet.Spec{
		PlateNumber: "D " + code[len(code)-3:] + " QA",
		Type:        fleet.Van,
		Capacity:    decimal.NewFromInt(900),
	}, fleet.Driver{Name: "Driver " + code, UserID: driverID}, fleet.Available, time.Now().UTC())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, v))
	suite.Require().NoError(uow.Commit(ctx))
	return v
}

// seedShipment stores a shipment in status on v, persisting the vehicle's
// resulting status as the workflow would.
func (suite *QueriesIntegrationTestSuite) seedShipment(v *fleet.Vehicle, status shipment.Status, createdAt time.Time) *shipment.Shipment {
	ctx := context.Background()
	now := createdAt.UTC()
	workflow := services.NewShipmentWorkflow()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	var assignment *shipment.FleetAssignment
	if v != nil {
		a, err := workflow.Dispatch(v, now)
		suite.Require().NoError(err)
		assignment = a
		suite.Require().NoError(uow.VehicleRepository().Update(ctx, v))
	}

	customer, err := shipment.NewCustomer("PT Nusantara", "", "")
	suite.Require().NoError(err)
	initial := status
	if status.IsTerminal() {
		initial = shipment.Pending
	}
	s, err := shipment.NewShipment(kernel.NewCode(kernel.ShipmentPrefix), shipment.Details{
		Customer:    customer,
		Origin:      "Jakarta Hub",
		Destination: "Makassar Branch",
		Weight:      decimal.NewFromInt(10),
	}, assignment, initial, now)
	suite.Require().NoError(err)
	if status.IsTerminal() {
		_, err = s.ChangeStatus(status, now)
		suite.Require().NoError(err)
	}

	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.Commit(ctx))
	return s
}

func (suite *QueriesIntegrationTestSuite) seedLocation(name string, lat, lng float64) {
	point, err := kernel.NewGeoPoint(lat, lng)
	suite.Require().NoError(err)
	l, err := location.NewLocation(kernel.NewCode(kernel.LocationPrefix), location.Attributes{
		Name:        name,
		City:        "Jakarta",
		Type:        location.Warehouse,
		Address:     "Jl. Gudang 1",
		Coordinates: point,
		Active:      true,
	}, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(locationrepo.NewGormLocationRepository(suite.database.DB).Add(context.Background(), l))
}

func (suite *QueriesIntegrationTestSuite) seedUser(username string, role user.Role) kernel.UUID {
	ctx := context.Background()
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{
		Username: username,
		Email:    username + "@logistic.com",
		FullName: username,
	}, role, "$2a$10$seed", time.Now().UTC())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, u))
	suite.Require().NoError(uow.Commit(ctx))
	return u.ID()
}

func staff() access.Actor {
	return access.Actor{UserID: kernel.NewUUID(), Username: "staff", Role: user.Staff}
}

func driverActor() access.Actor {
	return access.Actor{UserID: kernel.NewUUID(), Username: "driver", Role: user.Driver}
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
