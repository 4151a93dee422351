package commands

import (
	"errors"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateLocationCommandIsNotConstructed = errors.New(
		"CreateLocationCommand must be created via NewCreateLocationCommand constructor",
	)
	ErrUpdateLocationCommandIsNotConstructed = errors.New(
		"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
	)
	ErrDeleteLocationCommandIsNotConstructed = errors.New(
		"DeleteLocationCommand must be created via NewDeleteLocationCommand constructor",
	)
)

type CreateLocationParams struct {
	Name             string
	City             string
	Type             string
	Address          string
	Latitude         float64
	Longitude        float64
	Capacity         int
	CurrentOccupancy int
	Manager          string
	// Active defaults to true.
	Active *bool
}

type UpdateLocationParams struct {
	Name             *string
	City             *string
	Type             *string
	Address          *string
	Latitude         *float64
	Longitude        *float64
	Capacity         *int
	CurrentOccupancy *int
	Manager          *string
	Active           *bool
}

type CreateLocationCommand struct {
	actor access.Actor
	attrs location.Attributes
	guard guard.ConstructorGuard
}

func NewCreateLocationCommand(actor access.Actor, params CreateLocationParams) (CreateLocationCommand, error) {
	locationType, err := location.ParseType(params.Type)
	point, pointErr := kernel.NewGeoPoint(params.Latitude, params.Longitude)
	if err = errors.Join(err, pointErr); err != nil {
		return CreateLocationCommand{}, err
	}

	active := true
	if params.Active != nil {
		active = *params.Active
	}

	return CreateLocationCommand{
		actor: actor,
		attrs: location.Attributes{
			Name:             params.Name,
			City:             params.City,
			Type:             locationType,
			Address:          params.Address,
			Coordinates:      point,
			Capacity:         params.Capacity,
			CurrentOccupancy: params.CurrentOccupancy,
			Manager:          params.Manager,
			Active:           active,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateLocationCommand) Attributes() location.Attributes { return c.attrs }

func (c CreateLocationCommand) Validate() error {
	return c.guard.Validate(ErrCreateLocationCommandIsNotConstructed)
}

type UpdateLocationCommand struct {
	actor        access.Actor
	id           kernel.Code
	params       UpdateLocationParams
	locationType *location.Type
	guard        guard.ConstructorGuard
}

func NewUpdateLocationCommand(actor access.Actor, id string, params UpdateLocationParams) (UpdateLocationCommand, error) {
	code, err := kernel.ParseCode(kernel.LocationPrefix, id)

	var locationType *location.Type
	if params.Type != nil {
		t, tErr := location.ParseType(*params.Type)
		err = errors.Join(err, tErr)
		locationType = &t
	}

	if err != nil {
		return UpdateLocationCommand{}, err
	}

	return UpdateLocationCommand{
		actor:        actor,
		id:           code,
		params:       params,
		locationType: locationType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLocationCommand) ID() kernel.Code { return c.id }

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) apply(attrs location.Attributes) (location.Attributes, error) {
	p := c.params
	if p.Name != nil {
		attrs.Name = *p.Name
	}
	if p.City != nil {
		attrs.City = *p.City
	}
	if c.locationType != nil {
		attrs.Type = *c.locationType
	}
	if p.Address != nil {
		attrs.Address = *p.Address
	}
	if p.Latitude != nil || p.Longitude != nil {
		lat, lng := attrs.Coordinates.Lat(), attrs.Coordinates.Lng()
		if p.Latitude != nil {
			lat = *p.Latitude
		}
		if p.Longitude != nil {
			lng = *p.Longitude
		}
		point, err := kernel.NewGeoPoint(lat, lng)
		if err != nil {
			return location.Attributes{}, err
		}
		attrs.Coordinates = point
	}
	if p.Capacity != nil {
		attrs.Capacity = *p.Capacity
	}
	if p.CurrentOccupancy != nil {
		attrs.CurrentOccupancy = *p.CurrentOccupancy
	}
	if p.Manager != nil {
		attrs.Manager = *p.Manager
	}
	if p.Active != nil {
		attrs.Active = *p.Active
	}
	return attrs, nil
}

type DeleteLocationCommand struct {
	actor access.Actor
	id    kernel.Code
	guard guard.ConstructorGuard
}

func NewDeleteLocationCommand(actor access.Actor, id string) (DeleteLocationCommand, error) {
	code, err := kernel.ParseCode(kernel.LocationPrefix, id)
	if err != nil {
		return DeleteLocationCommand{}, err
	}
	return DeleteLocationCommand{actor: actor, id: code, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteLocationCommand) ID() kernel.Code { return c.id }

func (c DeleteLocationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLocationCommandIsNotConstructed)
}
