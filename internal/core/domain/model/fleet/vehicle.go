package fleet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	MinYear = 1950
	MaxYear = 2100
)

var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// Spec holds the descriptive attributes of a vehicle.
type Spec struct {
	PlateNumber     string
	Type            Type
	Capacity        decimal.Decimal
	FuelType        FuelType
	Year            int
	LastMaintenance *time.Time
	NextMaintenance *time.Time
}

// Driver identifies the user driving the vehicle. Name is shown in shipment
// snapshots; UserID scopes DRIVER access and may be nil for legacy records.
type Driver struct {
	Name   string
	UserID *kernel.UUID
}

// Vehicle is a fleet aggregate. Its On Route status is owned by the shipment
// workflow through Dispatch and Release; operators may set Available,
// Maintenance or Inactive manually.
type Vehicle struct {
	id            kernel.Code
	spec          Spec
	driver        Driver
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// NewVehicle creates a vehicle. A zero initial status means Available; On Route
// cannot be set at creation because no shipment holds the vehicle yet.
func NewVehicle(id kernel.Code, spec Spec, driver Driver, initial Status, now time.Time) (*Vehicle, error) {
	if initial == UnknownStatus {
		initial = Available
	}

	v := &Vehicle{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		v.setID(id),
		v.setSpec(spec),
		v.setDriver(driver),
		validateManualStatus(initial),
	); err != nil {
		return nil, err
	}
	v.status = initial

	return v, nil
}

// State is the persisted form of a vehicle.
type State struct {
	ID        kernel.Code
	Spec      Spec
	Driver    Driver
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func RestoreVehicle(state State) (*Vehicle, error) {
	v := &Vehicle{
		status:        state.Status,
		createdAt:     state.CreatedAt,
		updatedAt:     state.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		v.setID(state.ID),
		v.setSpec(state.Spec),
		v.setDriver(state.Driver),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

func (v *Vehicle) ID() kernel.Code      { return v.id }
func (v *Vehicle) Spec() Spec           { return v.spec }
func (v *Vehicle) Driver() Driver       { return v.driver }
func (v *Vehicle) Status() Status       { return v.status }
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }

// IsAssignedTo reports whether userID is the vehicle's assigned driver.
func (v *Vehicle) IsAssignedTo(userID kernel.UUID) bool {
	return v.driver.UserID != nil && v.driver.UserID.IsEqual(userID)
}

// Dispatch puts the vehicle On Route for a new active shipment.
//
// Business rules:
//   - only an Available vehicle can be dispatched
//   - an On Route vehicle already carries an active shipment (conflict)
//   - Maintenance and Inactive vehicles cannot be dispatched (conflict)
func (v *Vehicle) Dispatch(now time.Time) error {
	switch v.status {
	case Available:
		v.status = OnRoute
		v.updatedAt = now
		return nil
	case OnRoute:
		return errs.NewConflictError(fmt.Sprintf("vehicle %s is already assigned to an active shipment", v.id))
	default:
		return errs.NewConflictError(fmt.Sprintf("vehicle %s is %s and cannot be dispatched", v.id, v.status))
	}
}

// Release returns an On Route vehicle to Available. Releasing a vehicle in any
// other status changes nothing and is not an error, so manual Maintenance and
// Inactive overrides survive.
func (v *Vehicle) Release(now time.Time) (changed bool) {
	if v.status != OnRoute {
		return false
	}
	v.status = Available
	v.updatedAt = now
	return true
}

// Reconcile re-derives the availability status from whether an active shipment
// holds the vehicle. Maintenance and Inactive are left untouched.
func (v *Vehicle) Reconcile(hasActiveShipment bool, now time.Time) (changed bool) {
	switch {
	case v.status == OnRoute && !hasActiveShipment:
		v.status = Available
	case v.status == Available && hasActiveShipment:
		v.status = OnRoute
	default:
		return false
	}
	v.updatedAt = now
	return true
}

// SetStatus applies a manual status change from an operator.
//
// Business rules:
//   - On Route cannot be set manually (validation error)
//   - a vehicle held by an active shipment cannot leave On Route (conflict)
func (v *Vehicle) SetStatus(target Status, hasActiveShipment bool, now time.Time) error {
	if target == v.status {
		return nil
	}
	if err := validateManualStatus(target); err != nil {
		return err
	}
	if hasActiveShipment {
		return errs.NewConflictError(fmt.Sprintf("vehicle %s is held by an active shipment", v.id))
	}
	v.status = target
	v.updatedAt = now
	return nil
}

// Edit replaces the descriptive attributes.
func (v *Vehicle) Edit(spec Spec, now time.Time) error {
	if err := v.setSpec(spec); err != nil {
		return err
	}
	v.updatedAt = now
	return nil
}

// AssignDriver replaces the assigned driver.
func (v *Vehicle) AssignDriver(driver Driver, now time.Time) error {
	if err := v.setDriver(driver); err != nil {
		return err
	}
	v.updatedAt = now
	return nil
}

func (v *Vehicle) setID(id kernel.Code) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if id.Prefix() != kernel.VehiclePrefix {
		return errs.NewValueIsInvalidErrorWithCause("vehicle id", fmt.Errorf("%s is not a vehicle code", id))
	}
	v.id = id
	return nil
}

func (v *Vehicle) setSpec(spec Spec) error {
	spec.PlateNumber = strings.ToUpper(strings.TrimSpace(spec.PlateNumber))
	if spec.FuelType == UnknownFuel {
		spec.FuelType = Diesel
	}

	var err error
	if spec.PlateNumber == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("plate number"))
	}
	if tErr := spec.Type.Validate(); tErr != nil {
		err = errors.Join(err, tErr)
	}
	if !spec.Capacity.IsPositive() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%s is not greater than 0", spec.Capacity)))
	}
	if fErr := spec.FuelType.Validate(); fErr != nil {
		err = errors.Join(err, fErr)
	}
	if spec.Year != 0 && (spec.Year < MinYear || spec.Year > MaxYear) {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("year", spec.Year, MinYear, MaxYear))
	}
	if spec.LastMaintenance != nil && spec.NextMaintenance != nil && spec.NextMaintenance.Before(*spec.LastMaintenance) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("next maintenance",
			errors.New("is before the last maintenance")))
	}
	if err != nil {
		return err
	}

	v.spec = spec
	return nil
}

func (v *Vehicle) setDriver(driver Driver) error {
	driver.Name = strings.TrimSpace(driver.Name)
	if driver.UserID != nil {
		if err := driver.UserID.Validate(); err != nil {
			return err
		}
		id := *driver.UserID
		driver.UserID = &id
	}
	v.driver = driver
	return nil
}

func validateManualStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == OnRoute {
		return errs.NewValueIsInvalidErrorWithCause("vehicle status",
			errors.New("On Route is set by dispatching a shipment, not manually"))
	}
	return nil
}
