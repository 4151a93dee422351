package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/activity"
	"logistics/internal/pkg/errs"
)

// UpdateVehicleCommandHandler edits a vehicle under a row lock.
//
// Business rules:
//   - a DRIVER may only edit the vehicle assigned to them
//   - a DRIVER may not change who drives the vehicle
//   - a manual status change is refused while an active shipment holds the vehicle
//   - On Route cannot be set manually
type UpdateVehicleCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
}

func NewUpdateVehicleCommandHandler(uowFactory UoWFactory, recorder AuditRecorder) UpdateVehicleCommandHandler {
	return UpdateVehicleCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h UpdateVehicleCommandHandler) Handle(ctx context.Context, command UpdateVehicleCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	actor := command.Actor()
	patch := command.patch
	if actor.IsDriver() && patch.params.touchesDriver() {
		return errs.NewForbiddenError("drivers cannot reassign a vehicle")
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

	if err = access.EnsureVehicleOwnership(actor, vehicle); err != nil {
		return err
	}

	now := time.Now().UTC()

	if patch.params.touchesSpec() {
		if err = vehicle.Edit(patch.apply(vehicle.Spec()), now); err != nil {
			return err
		}
	}

	if patch.params.touchesDriver() {
		if err = vehicle.AssignDriver(patch.applyDriver(vehicle.Driver()), now); err != nil {
			return err
		}
	}

	if patch.status != nil && *patch.status != vehicle.Status() {
		held, heldErr := uow.ShipmentRepository().HasActiveForVehicle(ctx, vehicle.ID())
		if heldErr != nil {
			return heldErr
		}
		if err = vehicle.SetStatus(*patch.status, held, now); err != nil {
			return err
		}
	}

	if err = vehicleRepo.Update(ctx, vehicle); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recorder.Record(ctx, actor, activity.UpdateVehicle,
		fmt.Sprintf("Updated vehicle %s (%s)", vehicle.ID(), vehicle.Spec().PlateNumber))

	return nil
}
