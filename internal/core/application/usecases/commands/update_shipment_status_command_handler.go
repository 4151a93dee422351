package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/services"
)

// UpdateShipmentStatusCommandHandler applies a status transition and its fleet
// side effect in one transaction.
//
// Steps:
//  1. lock the shipment and its assigned vehicle
//  2. check DRIVER ownership
//  3. transition the shipment; Delivered stamps actualDelivery
//  4. release the vehicle when the shipment left an active status
//  5. commit both writes, then record UPDATE_STATUS
//
// Requesting the current status succeeds without writing anything.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
}

func NewUpdateShipmentStatusCommandHandler(
	uowFactory UoWFactory,
	recorder AuditRecorder,
) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h UpdateShipmentStatusCommandHandler) Handle(ctx context.Context, command UpdateShipmentStatusCommand) error {
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

	if command.Actor().IsDriver() {
		if err = ensureShipmentOwnership(command.Actor(), vehicle); err != nil {
			return err
		}
	}

	change, err := services.NewShipmentWorkflow().ChangeStatus(s, command.Status(), vehicle, time.Now().UTC())
	if err != nil {
		return err
	}
	if !change.Changed {
		return nil
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return err
	}

	if change.ReleasesVehicle && vehicle != nil {
		if err = vehicleRepo.Update(ctx, vehicle); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recorder.Record(ctx, command.Actor(), activity.UpdateStatus,
		fmt.Sprintf("Updated shipment %s status from %s to %s", s.ID(), change.From, change.To))

	return nil
}
