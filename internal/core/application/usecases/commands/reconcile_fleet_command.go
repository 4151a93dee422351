package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/guard"
)

var ErrReconcileFleetCommandIsNotConstructed = errors.New(
	"ReconcileFleetCommand must be created via NewReconcileFleetCommand constructor",
)

// ReconcileFleetCommand re-derives every vehicle's availability from the
// shipments that are still active.
type ReconcileFleetCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileFleetCommand() ReconcileFleetCommand {
	return ReconcileFleetCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileFleetCommand) Validate() error {
	return c.guard.Validate(ErrReconcileFleetCommandIsNotConstructed)
}

// ReconcileFleetCommandHandler locks the whole fleet, compares it with the set
// of vehicles held by active shipments and persists the vehicles it corrected.
type ReconcileFleetCommandHandler struct {
	uowFactory UoWFactory
}

func NewReconcileFleetCommandHandler(uowFactory UoWFactory) ReconcileFleetCommandHandler {
	return ReconcileFleetCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of vehicles whose status changed.
func (h ReconcileFleetCommandHandler) Handle(ctx context.Context, command ReconcileFleetCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vehicleRepo := uow.VehicleRepository()

	vehicles, err := vehicleRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	held, err := uow.ShipmentRepository().ActiveVehicleIDs(ctx)
	if err != nil {
		return 0, err
	}

	changed, err := services.NewFleetReconciler().Reconcile(vehicles, held, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if len(changed) == 0 {
		return 0, nil
	}

	for _, v := range changed {
		if err = vehicleRepo.Update(ctx, v); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(changed), nil
}
