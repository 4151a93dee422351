package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// UpdateShipmentParams is the explicit patch schema of a shipment. Nil fields
// are left untouched. Status and vehicle are not part of it.
type UpdateShipmentParams struct {
	CustomerName      *string
	CustomerPhone     *string
	CustomerAddress   *string
	Origin            *string
	Destination       *string
	Weight            *decimal.Decimal
	EstimatedDelivery *time.Time
	Notes             *string
}

func (p UpdateShipmentParams) touchesCustomer() bool {
	return p.CustomerName != nil || p.CustomerPhone != nil || p.CustomerAddress != nil
}

// UpdateShipmentCommand edits the descriptive fields of a shipment.
type UpdateShipmentCommand struct {
	actor  access.Actor
	id     kernel.Code
	params UpdateShipmentParams
	guard  guard.ConstructorGuard
}

func NewUpdateShipmentCommand(actor access.Actor, id string, params UpdateShipmentParams) (UpdateShipmentCommand, error) {
	code, err := kernel.ParseCode(kernel.ShipmentPrefix, id)

	if params.CustomerName != nil && strings.TrimSpace(*params.CustomerName) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer name"))
	}
	if params.Origin != nil && strings.TrimSpace(*params.Origin) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("origin"))
	}
	if params.Destination != nil && strings.TrimSpace(*params.Destination) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("destination"))
	}
	if params.Weight != nil && !params.Weight.IsPositive() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%s is not greater than 0", params.Weight)))
	}

	if err != nil {
		return UpdateShipmentCommand{}, err
	}

	return UpdateShipmentCommand{
		actor:  actor,
		id:     code,
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentCommand) Actor() access.Actor          { return c.actor }
func (c UpdateShipmentCommand) ID() kernel.Code              { return c.id }
func (c UpdateShipmentCommand) Params() UpdateShipmentParams { return c.params }

func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

// patchFor merges the customer fields with the current snapshot of s.
func (c UpdateShipmentCommand) patchFor(s *shipment.Shipment) (shipment.Patch, error) {
	p := c.params
	patch := shipment.Patch{
		Origin:            p.Origin,
		Destination:       p.Destination,
		Weight:            p.Weight,
		EstimatedDelivery: p.EstimatedDelivery,
		Notes:             p.Notes,
	}

	if p.touchesCustomer() {
		current := s.Customer()
		name, phone, address := current.Name(), current.Phone(), current.Address()
		if p.CustomerName != nil {
			name = *p.CustomerName
		}
		if p.CustomerPhone != nil {
			phone = *p.CustomerPhone
		}
		if p.CustomerAddress != nil {
			address = *p.CustomerAddress
		}

		customer, err := shipment.NewCustomer(name, phone, address)
		if err != nil {
			return shipment.Patch{}, err
		}
		patch.Customer = &customer
	}

	return patch, nil
}
