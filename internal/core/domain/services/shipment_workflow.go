package services

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

// ErrVehicleMismatch is returned when the vehicle passed to the workflow is not
// the one recorded in the shipment's fleet snapshot.
var ErrVehicleMismatch = errors.New("vehicle does not match the shipment assignment")

// ShipmentWorkflow is the domain service that couples shipment transitions with
// their fleet side effects. Every operation that can change whether a vehicle is
// held by an active shipment goes through it, so shipment and fleet views derive
// from the same step.
//
// Side effects:
//   - Dispatch: Available vehicle -> On Route, returns the fleet snapshot
//   - ChangeStatus / ConfirmDelivery: leaving an active status releases the vehicle
//   - Remove: deleting an active shipment releases the vehicle
//
// Release is idempotent: a vehicle that is already Available, or manually set to
// Maintenance or Inactive, keeps its status and no error is raised.
//
// Example usage:
//
//	workflow := services.NewShipmentWorkflow()
//	assignment, err := workflow.Dispatch(vehicle, time.Now())
//	if err != nil {
//	    return err
//	}
//	s, err := shipment.NewShipment(id, details, assignment, shipment.Pending, time.Now())
type ShipmentWorkflow struct{}

func NewShipmentWorkflow() ShipmentWorkflow {
	return ShipmentWorkflow{}
}

// Dispatch claims vehicle for a new active shipment and returns the snapshot to
// embed in it.
//
// Returns:
//   - a conflict error when the vehicle is On Route, Maintenance or Inactive
//   - a validation error when the vehicle is not constructed
func (w ShipmentWorkflow) Dispatch(vehicle *fleet.Vehicle, now time.Time) (*shipment.FleetAssignment, error) {
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	if err := vehicle.Dispatch(now); err != nil {
		return nil, err
	}

	assignment, err := shipment.NewFleetAssignment(vehicle.ID(), vehicle.Spec().PlateNumber, vehicle.Driver().Name)
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// ChangeStatus applies target to s and releases vehicle when the shipment leaves
// its active lifecycle.
//
// Parameters:
//   - s: the shipment to transition
//   - target: requested status
//   - vehicle: the assigned vehicle loaded for update, or nil when the shipment has
//     none or the vehicle record no longer exists
//   - now: transition timestamp
func (w ShipmentWorkflow) ChangeStatus(
	s *shipment.Shipment,
	target shipment.Status,
	vehicle *fleet.Vehicle,
	now time.Time,
) (shipment.StatusChange, error) {
	if err := w.validate(s, vehicle); err != nil {
		return shipment.StatusChange{}, err
	}

	change, err := s.ChangeStatus(target, now)
	if err != nil {
		return shipment.StatusChange{}, err
	}

	if change.ReleasesVehicle && vehicle != nil {
		vehicle.Release(now)
	}

	return change, nil
}

// ConfirmDelivery records a driver's confirmation, delivers s and releases vehicle.
func (w ShipmentWorkflow) ConfirmDelivery(
	s *shipment.Shipment,
	by kernel.UUID,
	notes string,
	vehicle *fleet.Vehicle,
	now time.Time,
) (shipment.StatusChange, error) {
	if err := w.validate(s, vehicle); err != nil {
		return shipment.StatusChange{}, err
	}

	change, err := s.ConfirmDelivery(by, notes, now)
	if err != nil {
		return shipment.StatusChange{}, err
	}

	if change.ReleasesVehicle && vehicle != nil {
		vehicle.Release(now)
	}

	return change, nil
}

// Remove marks s deleted and releases vehicle when s was still holding it.
// It reports whether the vehicle status changed.
func (w ShipmentWorkflow) Remove(s *shipment.Shipment, vehicle *fleet.Vehicle, now time.Time) (bool, error) {
	if err := w.validate(s, vehicle); err != nil {
		return false, err
	}

	if s.MarkDeleted(now) && vehicle != nil {
		return vehicle.Release(now), nil
	}

	return false, nil
}

func (w ShipmentWorkflow) validate(s *shipment.Shipment, vehicle *fleet.Vehicle) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if vehicle == nil {
		return nil
	}
	if err := vehicle.Validate(); err != nil {
		return err
	}

	assignment := s.Fleet()
	if assignment == nil || !assignment.VehicleID().IsEqual(vehicle.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("%w: shipment %s, vehicle %s", ErrVehicleMismatch, s.ID(), vehicle.ID()))
	}
	return nil
}
