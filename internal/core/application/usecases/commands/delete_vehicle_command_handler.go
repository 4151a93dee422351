package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/activity"
	"logistics/internal/pkg/errs"
)

// DeleteVehicleCommandHandler removes a vehicle that no active shipment holds.
type DeleteVehicleCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
}

func NewDeleteVehicleCommandHandler(uowFactory UoWFactory, recorder AuditRecorder) DeleteVehicleCommandHandler {
	return DeleteVehicleCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h DeleteVehicleCommandHandler) Handle(ctx context.Context, command DeleteVehicleCommand) error {
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

	vehicleRepo := uow.VehicleRepository()

	vehicle, err := vehicleRepo.Get(ctx, command.ID())
	if err != nil {
		return err
	}

	held, err := uow.ShipmentRepository().HasActiveForVehicle(ctx, vehicle.ID())
	if err != nil {
		return err
	}
	if held {
		return errs.NewConflictError(fmt.Sprintf("vehicle %s is held by an active shipment", vehicle.ID()))
	}

	if err = vehicleRepo.Delete(ctx, vehicle.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recorder.Record(ctx, command.Actor(), activity.DeleteVehicle,
		fmt.Sprintf("Deleted vehicle %s (%s)", vehicle.ID(), vehicle.Spec().PlateNumber))

	return nil
}
