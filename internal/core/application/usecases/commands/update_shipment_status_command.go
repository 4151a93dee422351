package commands

import (
	"errors"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/guard"
)

var ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
	"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
)

// UpdateShipmentStatusCommand moves a shipment to a new status.
type UpdateShipmentStatusCommand struct {
	actor  access.Actor
	id     kernel.Code
	status shipment.Status
	guard  guard.ConstructorGuard
}

// NewUpdateShipmentStatusCommand parses the shipment code and the status name.
// An unknown status is a validation error.
func NewUpdateShipmentStatusCommand(actor access.Actor, id, status string) (UpdateShipmentStatusCommand, error) {
	code, idErr := kernel.ParseCode(kernel.ShipmentPrefix, id)
	target, statusErr := shipment.ParseStatus(status)
	if err := errors.Join(idErr, statusErr); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}

	return UpdateShipmentStatusCommand{
		actor:  actor,
		id:     code,
		status: target,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentStatusCommand) Actor() access.Actor     { return c.actor }
func (c UpdateShipmentStatusCommand) ID() kernel.Code         { return c.id }
func (c UpdateShipmentStatusCommand) Status() shipment.Status { return c.status }

func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}
