package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
)

// CreateShipmentCommandHandler persists a new shipment and, when a vehicle is
// requested, puts that vehicle On Route in the same transaction.
type CreateShipmentCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
}

func NewCreateShipmentCommandHandler(uowFactory UoWFactory, recorder AuditRecorder) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle returns the generated shipment code.
//
// Errors:
//   - not found when the requested vehicle does not exist
//   - conflict when the vehicle is On Route, in Maintenance or Inactive
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, command CreateShipmentCommand) (kernel.Code, error) {
	if err := command.Validate(); err != nil {
		return kernel.Code{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.Code{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	shipmentRepo := uow.ShipmentRepository()

	// Step 1: dispatch the requested vehicle.
	var assignment *shipment.FleetAssignment
	if command.VehicleID() != nil {
		vehicleRepo := uow.VehicleRepository()

		vehicle, err := vehicleRepo.Get(ctx, *command.VehicleID())
		if err != nil {
			return kernel.Code{}, err
		}

		assignment, err = services.NewShipmentWorkflow().Dispatch(vehicle, now)
		if err != nil {
			return kernel.Code{}, err
		}

		if err = vehicleRepo.Update(ctx, vehicle); err != nil {
			return kernel.Code{}, err
		}
	}

	// Step 2: persist the shipment.
	created, err := shipment.NewShipment(
		kernel.NewCode(kernel.ShipmentPrefix), command.Details(), assignment, command.Status(), now)
	if err != nil {
		return kernel.Code{}, err
	}

	if err = shipmentRepo.Add(ctx, created); err != nil {
		return kernel.Code{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.Code{}, err
	}

	h.recorder.Record(ctx, command.Actor(), activity.CreateShipment,
		fmt.Sprintf("Created shipment %s for %s", created.ID(), created.Customer().Name()))

	return created.ID(), nil
}
