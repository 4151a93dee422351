package commands_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/core/application/access"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.Code) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) HasActiveForVehicle(ctx context.Context, vehicleID kernel.Code) (bool, error) {
	args := m.Called(ctx, vehicleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) ActiveVehicleIDs(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *fleet.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *fleet.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id kernel.Code) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.Code) (*fleet.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*fleet.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fleet.Vehicle), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id kernel.Code) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.Code) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockUoW implements every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCustomerUoWFactory struct{ mock.Mock }

func (m *MockCustomerUoWFactory) Create() commands.CustomerUoW {
	args := m.Called()
	return args.Get(0).(commands.CustomerUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) Record(ctx context.Context, actor access.Actor, action activity.Action, details string) {
	m.Called(ctx, actor, action, details)
}

type MockHasher struct{ mock.Mock }

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

type MockTokenService struct{ mock.Mock }

func (m *MockTokenService) Issue(u *user.User) (string, ports.Claims, error) {
	args := m.Called(u)
	return args.String(0), args.Get(1).(ports.Claims), args.Error(2)
}

func (m *MockTokenService) Verify(token string) (ports.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(ports.Claims), args.Error(1)
}

type MockRevocations struct{ mock.Mock }

func (m *MockRevocations) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

func (m *MockRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// workflowFixture wires a transactional unit of work around repository mocks.
type workflowFixture struct {
	shipments *MockShipmentRepository
	vehicles  *MockVehicleRepository
	uow       *MockUoW
	factory   *MockUoWFactory
	recorder  *MockRecorder
}

func newWorkflowFixture(ctx context.Context) *workflowFixture {
	f := &workflowFixture{
		shipments: new(MockShipmentRepository),
		vehicles:  new(MockVehicleRepository),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
		recorder:  new(MockRecorder),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", ctx).Return(nil)
	f.uow.On("Rollback", ctx).Return(nil).Maybe()
	f.uow.On("ShipmentRepository").Return(f.shipments).Maybe()
	f.uow.On("VehicleRepository").Return(f.vehicles).Maybe()
	return f
}

func (f *workflowFixture) assertExpectations(t *testing.T) {
	f.shipments.AssertExpectations(t)
	f.vehicles.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.recorder.AssertExpectations(t)
}

func staffActor() access.Actor {
	return access.Actor{UserID: kernel.NewUUID(), Username: "staff", Role: user.Staff, IPAddress: "127.0.0.1"}
}

func driverActor() access.Actor {
	return access.Actor{UserID: kernel.NewUUID(), Username: "driver", Role: user.Driver, IPAddress: "127.0.0.1"}
}

func testVehicle(t *testing.T, code string, status fleet.Status, driverID *kernel.UUID) *fleet.Vehicle {
	t.Helper()
	v, err := fleet.RestoreVehicle(fleet.State{
		ID: kernel.MustParseCode(kernel.VehiclePrefix, code),
		Spec: fleet.Spec{
			PlateNumber: "B " + code[len(code)-3:] + " XY",
			Type:        fleet.Truck,
			Capacity:    decimal.NewFromInt(8000),
			FuelType:    fleet.Diesel,
		},
		Driver: fleet.Driver{Name: "Slamet", UserID: driverID},
		Status: status,
	})
	require.NoError(t, err)
	return v
}

// testShipment builds a shipment in status carried by v (or without a vehicle
// when v is nil). The vehicle status is left as it was.
func testShipment(t *testing.T, v *fleet.Vehicle, status shipment.Status) *shipment.Shipment {
	t.Helper()
	c, err := shipment.NewCustomer("PT Sinar Jaya", "0812000111", "Jl. Merdeka 1")
	require.NoError(t, err)

	var assignment *shipment.FleetAssignment
	if v != nil {
		a, aErr := shipment.NewFleetAssignment(v.ID(), v.Spec().PlateNumber, v.Driver().Name)
		require.NoError(t, aErr)
		assignment = &a
	}

	state := shipment.State{
		ID: kernel.NewCode(kernel.ShipmentPrefix),
		Details: shipment.Details{
			Customer:    c,
			Origin:      "Jakarta Hub",
			Destination: "Surabaya Branch",
			Weight:      decimal.NewFromInt(250),
		},
		Status:    status,
		Fleet:     assignment,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if status == shipment.Delivered {
		delivered := time.Now().UTC()
		state.ActualDelivery = &delivered
	}

	s, err := shipment.RestoreShipment(state)
	require.NoError(t, err)
	return s
}
