package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created through
	// NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Details holds the editable descriptive fields of a shipment.
type Details struct {
	Customer          Customer
	Origin            string
	Destination       string
	Weight            decimal.Decimal
	EstimatedDelivery *time.Time
	Notes             string
}

// Patch is a partial update of Details. Nil fields are left untouched.
// Status and fleet assignment are not patchable; they change only
// through ChangeStatus, ConfirmDelivery and NewShipment.
type Patch struct {
	Customer          *Customer
	Origin            *string
	Destination       *string
	Weight            *decimal.Decimal
	EstimatedDelivery *time.Time
	Notes             *string
}

// Confirmation records a driver's delivery confirmation.
type Confirmation struct {
	ConfirmedAt time.Time
	ConfirmedBy kernel.UUID
	Notes       string
}

// StatusChange describes the outcome of a status transition and the fleet side
// effect the caller must apply in the same transaction.
type StatusChange struct {
	From Status
	To   Status
	// Changed is false when the requested status equals the current one.
	Changed bool
	// ReleasesVehicle is true when the shipment left an active status while
	// holding a vehicle, so that vehicle must be released.
	ReleasesVehicle bool
}

// Shipment is the aggregate root of the status workflow. It moves a customer's
// cargo from an origin to a destination, optionally carried by a fleet vehicle.
//
// Invariants:
//   - id, customer name, origin, destination and a positive weight are always present
//   - actualDelivery is set if and only if status is Delivered
//   - Delivered and Cancelled are terminal
//   - the fleet assignment is fixed at creation
//
// Shipment never touches a Vehicle directly. Operations that require a fleet side
// effect report it through StatusChange and the command handler applies it.
type Shipment struct {
	id             kernel.Code
	details        Details
	status         Status
	fleet          *FleetAssignment
	actualDelivery *time.Time
	confirmation   *Confirmation
	createdAt      time.Time
	updatedAt      time.Time
	events         []kernel.DomainEvent
	isConstructed  bool
}

// NewShipment creates a shipment and raises a Created event.
//
// Parameters:
//   - id: generated shipment code (SHP-...)
//   - details: customer snapshot, route, weight and optional estimate and notes
//   - fleet: snapshot of the dispatched vehicle, or nil when no vehicle is assigned
//   - initial: the starting status; Unknown means Pending. Only active statuses are accepted
//   - now: creation timestamp
//
// Returns a joined validation error listing every invalid field.
//
// Example:
//
//	customer, _ := shipment.NewCustomer("PT Maju Jaya", "+62 21 555 0101", "Jl. Sudirman 1")
//	s, err := shipment.NewShipment(kernel.NewCode(kernel.ShipmentPrefix), shipment.Details{
//	    Customer: customer, Origin: "Jakarta Hub", Destination: "Bandung Branch",
//	    Weight: decimal.NewFromInt(120),
//	}, nil, shipment.Unknown, time.Now())
func NewShipment(id kernel.Code, details Details, fleet *FleetAssignment, initial Status, now time.Time) (*Shipment, error) {
	if initial == Unknown {
		initial = Pending
	}

	s := &Shipment{
		status:        initial,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setDetails(details),
		s.setFleet(fleet),
		validateInitialStatus(initial),
	); err != nil {
		return nil, err
	}

	s.raise(Created{
		ShipmentID:   s.id.String(),
		Status:       s.status.String(),
		FleetID:      s.fleetID(),
		CustomerName: s.details.Customer.Name(),
		Origin:       s.details.Origin,
		Destination:  s.details.Destination,
		At:           now,
	})

	return s, nil
}

// State is the persisted form of a shipment used by RestoreShipment.
type State struct {
	ID             kernel.Code
	Details        Details
	Status         Status
	Fleet          *FleetAssignment
	ActualDelivery *time.Time
	Confirmation   *Confirmation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreShipment rebuilds a shipment loaded from storage without raising events.
// It enforces the same invariants as NewShipment plus the actualDelivery rule.
func RestoreShipment(state State) (*Shipment, error) {
	s := &Shipment{
		status:         state.Status,
		actualDelivery: state.ActualDelivery,
		confirmation:   state.Confirmation,
		createdAt:      state.CreatedAt,
		updatedAt:      state.UpdatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		s.setID(state.ID),
		s.setDetails(state.Details),
		s.setFleet(state.Fleet),
		state.Status.Validate(),
		validateActualDelivery(state.Status, state.ActualDelivery),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment was built through NewShipment or RestoreShipment.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.Code               { return s.id }
func (s *Shipment) Customer() Customer            { return s.details.Customer }
func (s *Shipment) Origin() string                { return s.details.Origin }
func (s *Shipment) Destination() string           { return s.details.Destination }
func (s *Shipment) Weight() decimal.Decimal       { return s.details.Weight }
func (s *Shipment) EstimatedDelivery() *time.Time { return s.details.EstimatedDelivery }
func (s *Shipment) Notes() string                 { return s.details.Notes }
func (s *Shipment) Status() Status                { return s.status }
func (s *Shipment) ActualDelivery() *time.Time    { return s.actualDelivery }
func (s *Shipment) Confirmation() *Confirmation   { return s.confirmation }
func (s *Shipment) CreatedAt() time.Time          { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time          { return s.updatedAt }
func (s *Shipment) IsActive() bool                { return s.status.IsActive() }
func (s *Shipment) Fleet() *FleetAssignment       { return s.fleet }

// HoldsVehicle reports whether the shipment is active and assigned to vehicleID.
func (s *Shipment) HoldsVehicle(vehicleID kernel.Code) bool {
	return s.fleet != nil && s.status.IsActive() && s.fleet.VehicleID().IsEqual(vehicleID)
}

// ChangeStatus applies a requested status.
//
// Business rules:
//   - target must be a valid status (validation error otherwise)
//   - a terminal shipment cannot change (conflict error)
//   - requesting the current active status is a successful no-op
//   - moving to Delivered stamps actualDelivery with now
//   - leaving an active status with a vehicle reports ReleasesVehicle
//
// Example:
//
//	change, err := s.ChangeStatus(shipment.Delivered, time.Now())
//	if err != nil {
//	    return err
//	}
//	if change.ReleasesVehicle {
//	    vehicle.Release()
//	}
func (s *Shipment) ChangeStatus(target Status, now time.Time) (StatusChange, error) {
	next, err := s.status.TransitionTo(target)
	if err != nil {
		return StatusChange{}, err
	}

	change := StatusChange{From: s.status, To: next}
	if next == s.status {
		return change, nil
	}

	change.Changed = true
	change.ReleasesVehicle = s.fleet != nil && s.status.IsActive() && next.IsTerminal()

	s.status = next
	if next == Delivered {
		delivered := now
		s.actualDelivery = &delivered
	} else {
		s.actualDelivery = nil
	}
	s.updatedAt = now

	s.raise(StatusChanged{
		ShipmentID:    s.id.String(),
		From:          change.From.String(),
		To:            change.To.String(),
		FleetID:       s.fleetID(),
		CustomerName:  s.details.Customer.Name(),
		CustomerPhone: s.details.Customer.Phone(),
		At:            now,
	})

	return change, nil
}

// ConfirmDelivery records the driver's confirmation and moves the shipment to
// Delivered. Only an In Transit shipment with a vehicle can be confirmed, once.
func (s *Shipment) ConfirmDelivery(by kernel.UUID, notes string, now time.Time) (StatusChange, error) {
	if err := by.Validate(); err != nil {
		return StatusChange{}, err
	}
	if s.confirmation != nil {
		return StatusChange{}, errs.NewConflictError(fmt.Sprintf("shipment %s delivery is already confirmed", s.id))
	}
	if s.status != InTransit {
		return StatusChange{}, errs.NewConflictError(
			fmt.Sprintf("shipment %s is %s, only In Transit shipments can be confirmed", s.id, s.status))
	}
	if s.fleet == nil {
		return StatusChange{}, errs.NewConflictError(fmt.Sprintf("shipment %s has no vehicle assigned", s.id))
	}

	change, err := s.ChangeStatus(Delivered, now)
	if err != nil {
		return StatusChange{}, err
	}

	s.confirmation = &Confirmation{
		ConfirmedAt: now,
		ConfirmedBy: by,
		Notes:       strings.TrimSpace(notes),
	}
	return change, nil
}

// Edit applies a patch of descriptive fields. Status and vehicle are never affected.
func (s *Shipment) Edit(patch Patch, now time.Time) error {
	details := s.details
	if patch.Customer != nil {
		details.Customer = *patch.Customer
	}
	if patch.Origin != nil {
		details.Origin = *patch.Origin
	}
	if patch.Destination != nil {
		details.Destination = *patch.Destination
	}
	if patch.Weight != nil {
		details.Weight = *patch.Weight
	}
	if patch.EstimatedDelivery != nil {
		estimate := *patch.EstimatedDelivery
		details.EstimatedDelivery = &estimate
	}
	if patch.Notes != nil {
		details.Notes = *patch.Notes
	}

	if err := s.setDetails(details); err != nil {
		return err
	}
	s.updatedAt = now
	return nil
}

// MarkDeleted raises a Deleted event and reports whether the assigned vehicle
// must be released. A terminal shipment already released its vehicle.
func (s *Shipment) MarkDeleted(now time.Time) (releasesVehicle bool) {
	s.raise(Deleted{
		ShipmentID: s.id.String(),
		Status:     s.status.String(),
		FleetID:    s.fleetID(),
		At:         now,
	})
	return s.fleet != nil && s.status.IsActive()
}

// PullEvents returns the pending domain events and clears them.
func (s *Shipment) PullEvents() []kernel.DomainEvent {
	events := s.events
	s.events = nil
	return events
}

func (s *Shipment) raise(event kernel.DomainEvent) {
	s.events = append(s.events, event)
}

func (s *Shipment) fleetID() string {
	if s.fleet == nil {
		return ""
	}
	return s.fleet.VehicleID().String()
}

func (s *Shipment) setID(id kernel.Code) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if id.Prefix() != kernel.ShipmentPrefix {
		return errs.NewValueIsInvalidErrorWithCause("shipment id", fmt.Errorf("%s is not a shipment code", id))
	}
	s.id = id
	return nil
}

func (s *Shipment) setDetails(d Details) error {
	d.Origin = strings.TrimSpace(d.Origin)
	d.Destination = strings.TrimSpace(d.Destination)
	d.Notes = strings.TrimSpace(d.Notes)

	var err error
	if cErr := d.Customer.Validate(); cErr != nil {
		err = errors.Join(err, cErr)
	}
	if d.Origin == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("origin"))
	}
	if d.Destination == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("destination"))
	}
	if !d.Weight.IsPositive() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", d.Weight)))
	}
	if err != nil {
		return err
	}

	s.details = d
	return nil
}

func (s *Shipment) setFleet(fleet *FleetAssignment) error {
	if fleet == nil {
		s.fleet = nil
		return nil
	}
	if err := fleet.Validate(); err != nil {
		return err
	}
	assignment := *fleet
	s.fleet = &assignment
	return nil
}

func validateInitialStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if !status.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("a new shipment cannot start as %s", status))
	}
	return nil
}

func validateActualDelivery(status Status, actual *time.Time) error {
	if status == Delivered && actual == nil {
		return errs.NewValueIsRequiredError("actual delivery of a delivered shipment")
	}
	if status != Delivered && actual != nil {
		return errs.NewValueIsInvalidErrorWithCause("actual delivery", fmt.Errorf("set on a %s shipment", status))
	}
	return nil
}
