package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
)

// CreateVehicleCommandHandler registers a vehicle. A duplicate plate number is
// reported by the repository as a conflict.
type CreateVehicleCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
}

func NewCreateVehicleCommandHandler(uowFactory UoWFactory, recorder AuditRecorder) CreateVehicleCommandHandler {
	return CreateVehicleCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h CreateVehicleCommandHandler) Handle(ctx context.Context, command CreateVehicleCommand) (kernel.Code, error) {
	if err := command.Validate(); err != nil {
		return kernel.Code{}, err
	}

	vehicle, err := fleet.NewVehicle(
		kernel.NewCode(kernel.VehiclePrefix),
		command.Spec(),
		command.Driver(),
		command.Status(),
		time.Now().UTC(),
	)
	if err != nil {
		return kernel.Code{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.Code{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.VehicleRepository().Add(ctx, vehicle); err != nil {
		return kernel.Code{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.Code{}, err
	}

	h.recorder.Record(ctx, command.Actor(), activity.CreateVehicle,
		fmt.Sprintf("Created vehicle %s (%s)", vehicle.ID(), vehicle.Spec().PlateNumber))

	return vehicle.ID(), nil
}
