package queries

import (
	"context"
	"errors"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListVehiclesQueryIsNotConstructed = errors.New(
		"ListVehiclesQuery must be created via NewListVehiclesQuery constructor",
	)
	ErrGetVehicleQueryIsNotConstructed = errors.New(
		"GetVehicleQuery must be created via NewGetVehicleQuery constructor",
	)
)

// ListVehiclesQuery lists the fleet newest first. A DRIVER only sees the
// vehicles assigned to them.
type ListVehiclesQuery struct {
	actor access.Actor
	guard guard.ConstructorGuard
}

func NewListVehiclesQuery(actor access.Actor) ListVehiclesQuery {
	return ListVehiclesQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

func (q ListVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrListVehiclesQueryIsNotConstructed)
}

type GetVehicleQuery struct {
	actor access.Actor
	id    kernel.Code
	guard guard.ConstructorGuard
}

func NewGetVehicleQuery(actor access.Actor, id string) (GetVehicleQuery, error) {
	code, err := kernel.ParseCode(kernel.VehiclePrefix, id)
	if err != nil {
		return GetVehicleQuery{}, err
	}
	return GetVehicleQuery{actor: actor, id: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVehicleQuery) Validate() error {
	return q.guard.Validate(ErrGetVehicleQueryIsNotConstructed)
}

type VehicleQueryHandler struct {
	db *gorm.DB
}

func NewVehicleQueryHandler(db *gorm.DB) VehicleQueryHandler {
	return VehicleQueryHandler{db: db}
}

func (h VehicleQueryHandler) List(ctx context.Context, query ListVehiclesQuery) ([]VehicleView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	var rows *gorm.DB
	if query.actor.IsDriver() {
		rows = db.Raw(vehicleSelect+"\n\tWHERE driver_id = ?\n\tORDER BY created_at DESC, id", query.actor.UserID.String())
	} else {
		rows = db.Raw(vehicleSelect + "\n\tORDER BY created_at DESC, id")
	}

	result, err := rows.Rows()
	if err != nil {
		return nil, err
	}
	return scanVehicles(result)
}

func (h VehicleQueryHandler) Get(ctx context.Context, query GetVehicleQuery) (VehicleView, error) {
	if err := query.Validate(); err != nil {
		return VehicleView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(vehicleSelect+"\n\tWHERE id = ?", query.id.String()).Rows()
	if err != nil {
		return VehicleView{}, err
	}

	vehicles, err := scanVehicles(rows)
	if err != nil {
		return VehicleView{}, err
	}
	if len(vehicles) == 0 {
		return VehicleView{}, errs.NewObjectNotFoundError("vehicle", query.id.String())
	}

	v := vehicles[0]
	if query.actor.IsDriver() && (v.DriverUserID == nil || *v.DriverUserID != query.actor.UserID.String()) {
		return VehicleView{}, errs.NewForbiddenError("vehicle is not assigned to the current driver")
	}
	return v, nil
}
