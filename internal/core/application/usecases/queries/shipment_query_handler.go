package queries

import (
	"context"
	"strings"

	"logistics/internal/core/application/access"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// ShipmentQueryHandler serves the shipment list, detail and tracking views.
type ShipmentQueryHandler struct {
	db *gorm.DB
}

func NewShipmentQueryHandler(db *gorm.DB) ShipmentQueryHandler {
	return ShipmentQueryHandler{db: db}
}

func (h ShipmentQueryHandler) List(ctx context.Context, query ListShipmentsQuery) ([]ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if query.status != nil {
		conditions = append(conditions, "s.status = ?")
		args = append(args, query.status.String())
	}
	if query.actor.IsDriver() {
		conditions = append(conditions, "f.driver_id = ?")
		args = append(args, query.actor.UserID.String())
	}

	sql := shipmentSelect
	if len(conditions) > 0 {
		sql += "\n\tWHERE " + strings.Join(conditions, " AND ")
	}
	sql += "\n\tORDER BY s.created_at DESC, s.id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return scanShipments(rows)
}

func (h ShipmentQueryHandler) Get(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}
	return h.visible(ctx, query.actor, query.id.String())
}

func (h ShipmentQueryHandler) Track(ctx context.Context, query TrackShipmentQuery) (TrackingView, error) {
	if err := query.Validate(); err != nil {
		return TrackingView{}, err
	}

	s, err := h.visible(ctx, query.actor, query.id.String())
	if err != nil {
		return TrackingView{}, err
	}

	view := TrackingView{Shipment: s}
	if view.Origin, err = h.coordinates(ctx, s.Origin); err != nil {
		return TrackingView{}, err
	}
	if view.Destination, err = h.coordinates(ctx, s.Destination); err != nil {
		return TrackingView{}, err
	}

	if s.VehicleID != nil {
		var status string
		result := h.db.WithContext(ctx).Raw(`SELECT status FROM fleet WHERE id = ?`, *s.VehicleID).Scan(&status)
		if result.Error != nil {
			return TrackingView{}, result.Error
		}
		if result.RowsAffected > 0 {
			view.VehicleStatus = &status
		}
	}

	return view, nil
}

// visible loads one shipment and applies the DRIVER ownership rule.
func (h ShipmentQueryHandler) visible(ctx context.Context, actor access.Actor, id string) (ShipmentView, error) {
	rows, err := h.db.WithContext(ctx).Raw(shipmentSelect+"\n\tWHERE s.id = ?", id).Rows()
	if err != nil {
		return ShipmentView{}, err
	}

	shipments, err := scanShipments(rows)
	if err != nil {
		return ShipmentView{}, err
	}
	if len(shipments) == 0 {
		return ShipmentView{}, errs.NewObjectNotFoundError("shipment", id)
	}

	s := shipments[0]
	if actor.IsDriver() && (s.DriverUserID == nil || *s.DriverUserID != actor.UserID.String()) {
		return ShipmentView{}, errs.NewForbiddenError("shipment is not carried by the current driver's vehicle")
	}
	return s, nil
}

func (h ShipmentQueryHandler) coordinates(ctx context.Context, name string) (Coordinates, error) {
	c := Coordinates{Name: name}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT coordinates_lat, coordinates_lng
		FROM locations
		WHERE LOWER(name) = LOWER(?)
		ORDER BY is_active DESC, created_at
		LIMIT 1
	`, name).Rows()
	if err != nil {
		return c, err
	}
	defer rows.Close()

	if rows.Next() {
		if err = rows.Scan(&c.Lat, &c.Lng); err != nil {
			return c, err
		}
		c.Known = true
	}
	return c, rows.Err()
}
