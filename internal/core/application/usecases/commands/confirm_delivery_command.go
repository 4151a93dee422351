package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand records a driver's proof of delivery.
type ConfirmDeliveryCommand struct {
	actor access.Actor
	id    kernel.Code
	notes string
	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(actor access.Actor, id, notes string) (ConfirmDeliveryCommand, error) {
	code, err := kernel.ParseCode(kernel.ShipmentPrefix, id)
	if err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		actor: actor,
		id:    code,
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Actor() access.Actor { return c.actor }
func (c ConfirmDeliveryCommand) ID() kernel.Code     { return c.id }
func (c ConfirmDeliveryCommand) Notes() string       { return c.notes }

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}
