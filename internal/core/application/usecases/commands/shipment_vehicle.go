package commands

import (
	"context"
	"errors"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// loadAssignedVehicle locks the vehicle recorded in the shipment's fleet
// snapshot. It returns nil when the shipment has no vehicle or the vehicle
// record was deleted.
func loadAssignedVehicle(
	ctx context.Context,
	repo ports.VehicleRepository,
	s *shipment.Shipment,
) (*fleet.Vehicle, error) {
	if s.Fleet() == nil {
		return nil, nil
	}

	vehicle, err := repo.Get(ctx, s.Fleet().VehicleID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return vehicle, nil
}

// ensureShipmentOwnership restricts a DRIVER to shipments carried by the
// vehicle assigned to them.
func ensureShipmentOwnership(actor access.Actor, vehicle *fleet.Vehicle) error {
	if err := access.EnsureVehicleOwnership(actor, vehicle); err != nil {
		return errs.NewForbiddenError("shipment is not carried by the current driver's vehicle")
	}
	return nil
}
