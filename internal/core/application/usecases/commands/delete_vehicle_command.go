package commands

import (
	"errors"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrDeleteVehicleCommandIsNotConstructed = errors.New(
	"DeleteVehicleCommand must be created via NewDeleteVehicleCommand constructor",
)

type DeleteVehicleCommand struct {
	actor access.Actor
	id    kernel.Code
	guard guard.ConstructorGuard
}

func NewDeleteVehicleCommand(actor access.Actor, id string) (DeleteVehicleCommand, error) {
	code, err := kernel.ParseCode(kernel.VehiclePrefix, id)
	if err != nil {
		return DeleteVehicleCommand{}, err
	}

	return DeleteVehicleCommand{actor: actor, id: code, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteVehicleCommand) Actor() access.Actor { return c.actor }
func (c DeleteVehicleCommand) ID() kernel.Code     { return c.id }

func (c DeleteVehicleCommand) Validate() error {
	return c.guard.Validate(ErrDeleteVehicleCommandIsNotConstructed)
}
