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

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentParams is the explicit input schema of shipment creation.
type CreateShipmentParams struct {
	CustomerName      string
	CustomerPhone     string
	CustomerAddress   string
	Origin            string
	Destination       string
	Weight            decimal.Decimal
	EstimatedDelivery *time.Time
	Notes             string
	// VehicleID is optional. When set, the vehicle is dispatched with the shipment.
	VehicleID string
	// Status is optional and defaults to Pending. Only active statuses are accepted.
	Status string
}

// CreateShipmentCommand registers a new shipment, optionally dispatching a vehicle.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(actor, CreateShipmentParams{
//	    CustomerName: "PT Sinar Jaya",
//	    Origin:       "Jakarta Hub",
//	    Destination:  "Surabaya Branch",
//	    Weight:       decimal.NewFromInt(120),
//	    VehicleID:    "FLT-002",
//	})
//	if err != nil {
//	    return err
//	}
//	id, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct {
	actor     access.Actor
	details   shipment.Details
	vehicleID *kernel.Code
	status    shipment.Status
	guard     guard.ConstructorGuard
}

// NewCreateShipmentCommand validates params and returns every violation at once.
func NewCreateShipmentCommand(actor access.Actor, params CreateShipmentParams) (CreateShipmentCommand, error) {
	customer, err := shipment.NewCustomer(params.CustomerName, params.CustomerPhone, params.CustomerAddress)

	if strings.TrimSpace(params.Origin) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("origin"))
	}
	if strings.TrimSpace(params.Destination) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("destination"))
	}
	if !params.Weight.IsPositive() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", params.Weight)))
	}

	var vehicleID *kernel.Code
	if strings.TrimSpace(params.VehicleID) != "" {
		id, idErr := kernel.ParseCode(kernel.VehiclePrefix, params.VehicleID)
		err = errors.Join(err, idErr)
		vehicleID = &id
	}

	status := shipment.Pending
	if strings.TrimSpace(params.Status) != "" {
		parsed, statusErr := shipment.ParseStatus(params.Status)
		err = errors.Join(err, statusErr)
		status = parsed
	}

	if err != nil {
		return CreateShipmentCommand{}, err
	}

	return CreateShipmentCommand{
		actor: actor,
		details: shipment.Details{
			Customer:          customer,
			Origin:            strings.TrimSpace(params.Origin),
			Destination:       strings.TrimSpace(params.Destination),
			Weight:            params.Weight,
			EstimatedDelivery: params.EstimatedDelivery,
			Notes:             strings.TrimSpace(params.Notes),
		},
		vehicleID: vehicleID,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Actor() access.Actor       { return c.actor }
func (c CreateShipmentCommand) Details() shipment.Details { return c.details }
func (c CreateShipmentCommand) VehicleID() *kernel.Code   { return c.vehicleID }
func (c CreateShipmentCommand) Status() shipment.Status   { return c.status }

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}
