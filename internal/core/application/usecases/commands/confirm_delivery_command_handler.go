package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/services"
)

// ConfirmDeliveryCommandHandler delivers an In Transit shipment on behalf of
// its driver and releases the vehicle.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
}

func NewConfirmDeliveryCommandHandler(uowFactory UoWFactory, recorder AuditRecorder) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, command ConfirmDeliveryCommand) error {
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

	change, err := services.NewShipmentWorkflow().ConfirmDelivery(
		s, command.Actor().UserID, command.Notes(), vehicle, time.Now().UTC())
	if err != nil {
		return err
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

	h.recorder.Record(ctx, command.Actor(), activity.ConfirmDelivery,
		fmt.Sprintf("Confirmed delivery of shipment %s", s.ID()))

	return nil
}
