package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/activity"
)

// UpdateShipmentCommandHandler applies a descriptive patch. It never changes the
// shipment status or its vehicle, so no fleet write is involved.
type UpdateShipmentCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
}

func NewUpdateShipmentCommandHandler(uowFactory UoWFactory, recorder AuditRecorder) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h UpdateShipmentCommandHandler) Handle(ctx context.Context, command UpdateShipmentCommand) error {
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

	s, err := shipmentRepo.Get(ctx, command.ID())
	if err != nil {
		return err
	}

	patch, err := command.patchFor(s)
	if err != nil {
		return err
	}

	if err = s.Edit(patch, time.Now().UTC()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recorder.Record(ctx, command.Actor(), activity.UpdateShipment,
		fmt.Sprintf("Updated shipment %s details", s.ID()))

	return nil
}
