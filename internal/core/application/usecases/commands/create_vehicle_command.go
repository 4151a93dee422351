package commands

import (
	"errors"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/pkg/guard"
)

var ErrCreateVehicleCommandIsNotConstructed = errors.New(
	"CreateVehicleCommand must be created via NewCreateVehicleCommand constructor",
)

type CreateVehicleCommand struct {
	actor  access.Actor
	spec   fleet.Spec
	driver fleet.Driver
	status fleet.Status
	guard  guard.ConstructorGuard
}

func NewCreateVehicleCommand(actor access.Actor, params CreateVehicleParams) (CreateVehicleCommand, error) {
	vehicleType, err := fleet.ParseType(params.Type)

	fuelType, fuelErr := fleet.ParseFuelType(params.FuelType)
	err = errors.Join(err, fuelErr)

	status := fleet.Available
	if params.Status != "" {
		parsed, statusErr := fleet.ParseStatus(params.Status)
		err = errors.Join(err, statusErr)
		status = parsed
	}

	driverUserID, idErr := parseDriverUserID(params.DriverUserID)
	err = errors.Join(err, idErr)

	if err != nil {
		return CreateVehicleCommand{}, err
	}

	return CreateVehicleCommand{
		actor: actor,
		spec: fleet.Spec{
			PlateNumber:     params.PlateNumber,
			Type:            vehicleType,
			Capacity:        params.Capacity,
			FuelType:        fuelType,
			Year:            params.Year,
			LastMaintenance: params.LastMaintenance,
			NextMaintenance: params.NextMaintenance,
		},
		driver: fleet.Driver{Name: params.DriverName, UserID: driverUserID},
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateVehicleCommand) Actor() access.Actor  { return c.actor }
func (c CreateVehicleCommand) Spec() fleet.Spec     { return c.spec }
func (c CreateVehicleCommand) Driver() fleet.Driver { return c.driver }
func (c CreateVehicleCommand) Status() fleet.Status { return c.status }

func (c CreateVehicleCommand) Validate() error {
	return c.guard.Validate(ErrCreateVehicleCommandIsNotConstructed)
}
