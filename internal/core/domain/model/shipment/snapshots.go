package shipment

import (
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrCustomerIsNotConstructed   = errs.NewValueIsRequiredError("customer must be created via NewCustomer")
	ErrAssignmentIsNotConstructed = errs.NewValueIsRequiredError("fleet assignment must be created via NewFleetAssignment")
)

// Customer is the copy of the customer's contact data embedded into a shipment
// at creation time. Later edits of the customer record do not change it.
type Customer struct {
	name    string
	phone   string
	address string
	guard   guard.ConstructorGuard
}

func NewCustomer(name, phone, address string) (Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	return Customer{
		name:    name,
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c Customer) Name() string    { return c.name }
func (c Customer) Phone() string   { return c.phone }
func (c Customer) Address() string { return c.address }

func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// FleetAssignment is the snapshot of the vehicle carrying a shipment.
type FleetAssignment struct {
	vehicleID   kernel.Code
	plateNumber string
	driver      string
	guard       guard.ConstructorGuard
}

func NewFleetAssignment(vehicleID kernel.Code, plateNumber, driver string) (FleetAssignment, error) {
	if err := vehicleID.Validate(); err != nil {
		return FleetAssignment{}, err
	}
	return FleetAssignment{
		vehicleID:   vehicleID,
		plateNumber: plateNumber,
		driver:      driver,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (a FleetAssignment) VehicleID() kernel.Code { return a.vehicleID }
func (a FleetAssignment) PlateNumber() string    { return a.plateNumber }
func (a FleetAssignment) Driver() string         { return a.driver }

func (a FleetAssignment) Validate() error {
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}
