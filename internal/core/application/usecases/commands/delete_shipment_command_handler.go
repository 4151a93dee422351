package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/services"
)

// DeleteShipmentCommandHandler removes a shipment. If the shipment was still
// active its vehicle is released in the same transaction. A vehicle referenced
// by a Delivered or Cancelled shipment is left alone, because it may already
// carry the next shipment.
type DeleteShipmentCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
}

func NewDeleteShipmentCommandHandler(uowFactory UoWFactory, recorder AuditRecorder) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h DeleteShipmentCommandHandler) Handle(ctx context.Context, command DeleteShipmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	vehicleRepo := uow.VehicleRepository()

	s, err := shipmentRepo.Get(ctx, command.ID())
	if err != nil {
		return err
	}

	vehicle, err := loadAssignedVehicle(ctx, vehicleRepo, s)
	if err != nil {
		return err
	}

	released, err := services.NewShipmentWorkflow().Remove(s, vehicle, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = shipmentRepo.Delete(ctx, s); err != nil {
		return err
	}

	if released {
		if err = vehicleRepo.Update(ctx, vehicle); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recorder.Record(ctx, command.Actor(), activity.DeleteShipment,
		fmt.Sprintf("Deleted shipment %s", s.ID()))

	return nil
}
