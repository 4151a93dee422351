package queries

import (
	"errors"
	"strings"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/guard"
)

var (
	ErrListShipmentsQueryIsNotConstructed = errors.New(
		"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
	)
	ErrGetShipmentQueryIsNotConstructed = errors.New(
		"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
	)
	ErrTrackShipmentQueryIsNotConstructed = errors.New(
		"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
	)
)

// ListShipmentsQuery lists shipments newest first. A DRIVER only sees shipments
// carried by vehicles assigned to them.
//
// Example:
//
//	query, err := NewListShipmentsQuery(actor, "In Transit")
//	if err != nil {
//	    return err
//	}
//	shipments, err := handler.List(ctx, query)
type ListShipmentsQuery struct {
	actor  access.Actor
	status *shipment.Status
	guard  guard.ConstructorGuard
}

// NewListShipmentsQuery accepts an empty status for "all statuses".
func NewListShipmentsQuery(actor access.Actor, status string) (ListShipmentsQuery, error) {
	var filter *shipment.Status
	if strings.TrimSpace(status) != "" {
		parsed, err := shipment.ParseStatus(status)
		if err != nil {
			return ListShipmentsQuery{}, err
		}
		filter = &parsed
	}
	return ListShipmentsQuery{actor: actor, status: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

type GetShipmentQuery struct {
	actor access.Actor
	id    kernel.Code
	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(actor access.Actor, id string) (GetShipmentQuery, error) {
	code, err := kernel.ParseCode(kernel.ShipmentPrefix, id)
	if err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{actor: actor, id: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// TrackShipmentQuery resolves a shipment's route to coordinates from the
// locations table and reports its vehicle's current status.
type TrackShipmentQuery struct {
	actor access.Actor
	id    kernel.Code
	guard guard.ConstructorGuard
}

func NewTrackShipmentQuery(actor access.Actor, id string) (TrackShipmentQuery, error) {
	code, err := kernel.ParseCode(kernel.ShipmentPrefix, id)
	if err != nil {
		return TrackShipmentQuery{}, err
	}
	return TrackShipmentQuery{actor: actor, id: code, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

// Coordinates of a named location. Known is false when no location with the
// shipment's origin or destination name exists.
type Coordinates struct {
	Name  string
	Lat   float64
	Lng   float64
	Known bool
}

type TrackingView struct {
	Shipment      ShipmentView
	Origin        Coordinates
	Destination   Coordinates
	VehicleStatus *string
}
