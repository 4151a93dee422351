package commands

import (
	"errors"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

type DeleteShipmentCommand struct {
	actor access.Actor
	id    kernel.Code
	guard guard.ConstructorGuard
}

func NewDeleteShipmentCommand(actor access.Actor, id string) (DeleteShipmentCommand, error) {
	code, err := kernel.ParseCode(kernel.ShipmentPrefix, id)
	if err != nil {
		return DeleteShipmentCommand{}, err
	}

	return DeleteShipmentCommand{actor: actor, id: code, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteShipmentCommand) Actor() access.Actor { return c.actor }
func (c DeleteShipmentCommand) ID() kernel.Code     { return c.id }

func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}
