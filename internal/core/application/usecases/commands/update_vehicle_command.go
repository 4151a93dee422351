package commands

import (
	"errors"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrUpdateVehicleCommandIsNotConstructed = errors.New(
	"UpdateVehicleCommand must be created via NewUpdateVehicleCommand constructor",
)

type UpdateVehicleCommand struct {
	actor access.Actor
	id    kernel.Code
	patch vehiclePatch
	guard guard.ConstructorGuard
}

func NewUpdateVehicleCommand(actor access.Actor, id string, params UpdateVehicleParams) (UpdateVehicleCommand, error) {
	code, err := kernel.ParseCode(kernel.VehiclePrefix, id)
	patch, patchErr := parseVehiclePatch(params)
	if err = errors.Join(err, patchErr); err != nil {
		return UpdateVehicleCommand{}, err
	}

	return UpdateVehicleCommand{
		actor: actor,
		id:    code,
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateVehicleCommand) Actor() access.Actor { return c.actor }
func (c UpdateVehicleCommand) ID() kernel.Code     { return c.id }

func (c UpdateVehicleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVehicleCommandIsNotConstructed)
}
