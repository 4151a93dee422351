// Package queries contains the read side of the back office. Handlers run raw
// SQL through gorm and return flat read models; they never load aggregates and
// never take row locks.
package queries

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentView is the read model of a shipment. DriverUserID is the user
// currently assigned to the shipment's vehicle, if any.
type ShipmentView struct {
	ID                string
	CustomerName      string
	CustomerPhone     string
	CustomerAddress   string
	Origin            string
	Destination       string
	Weight            decimal.Decimal
	Status            string
	VehicleID         *string
	PlateNumber       string
	Driver            string
	DriverUserID      *string
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	Notes             string
	Confirmation      *ConfirmationView
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ConfirmationView struct {
	ConfirmedAt time.Time
	ConfirmedBy string
	Notes       string
}

type VehicleView struct {
	ID              string
	PlateNumber     string
	Type            string
	Capacity        decimal.Decimal
	FuelType        string
	Year            int
	LastMaintenance *time.Time
	NextMaintenance *time.Time
	Driver          string
	DriverUserID    *string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CustomerView struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Company   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LocationView struct {
	ID               string
	Name             string
	CityName         string
	Type             string
	Address          string
	Lat              float64
	Lng              float64
	Capacity         int
	CurrentOccupancy int
	Manager          string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserView never carries the password hash.
type UserView struct {
	ID        string
	Username  string
	Email     string
	FullName  string
	Phone     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

const shipmentSelect = `
	SELECT
		s.id,
		s.customer_name,
		COALESCE(s.customer_phone, ''),
		COALESCE(s.customer_address, ''),
		s.origin,
		s.destination,
		s.weight,
		s.status,
		s.fleet_id,
		COALESCE(s.fleet_plate_number, ''),
		COALESCE(s.fleet_driver, ''),
		f.driver_id,
		s.estimated_delivery,
		s.actual_delivery,
		COALESCE(s.notes, ''),
		s.confirmation_at,
		s.confirmation_by,
		COALESCE(s.confirmation_notes, ''),
		s.created_at,
		s.updated_at
	FROM shipments s
	LEFT JOIN fleet f ON f.id = s.fleet_id`

func scanShipments(rows *sql.Rows) ([]ShipmentView, error) {
	defer rows.Close()

	shipments := make([]ShipmentView, 0)
	for rows.Next() {
		var v ShipmentView
		var confirmedAt *time.Time
		var confirmedBy *string
		var confirmationNotes string

		err := rows.Scan(
			&v.ID,
			&v.CustomerName,
			&v.CustomerPhone,
			&v.CustomerAddress,
			&v.Origin,
			&v.Destination,
			&v.Weight,
			&v.Status,
			&v.VehicleID,
			&v.PlateNumber,
			&v.Driver,
			&v.DriverUserID,
			&v.EstimatedDelivery,
			&v.ActualDelivery,
			&v.Notes,
			&confirmedAt,
			&confirmedBy,
			&confirmationNotes,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if confirmedAt != nil && confirmedBy != nil {
			v.Confirmation = &ConfirmationView{
				ConfirmedAt: *confirmedAt,
				ConfirmedBy: *confirmedBy,
				Notes:       confirmationNotes,
			}
		}
		shipments = append(shipments, v)
	}
	return shipments, rows.Err()
}

const vehicleSelect = `
	SELECT
		id,
		plate_number,
		type,
		capacity,
		fuel_type,
		COALESCE(year, 0),
		last_maintenance,
		next_maintenance,
		COALESCE(driver, ''),
		driver_id,
		status,
		created_at,
		updated_at
	FROM fleet`

func scanVehicles(rows *sql.Rows) ([]VehicleView, error) {
	defer rows.Close()

	vehicles := make([]VehicleView, 0)
	for rows.Next() {
		var v VehicleView
		err := rows.Scan(
			&v.ID,
			&v.PlateNumber,
			&v.Type,
			&v.Capacity,
			&v.FuelType,
			&v.Year,
			&v.LastMaintenance,
			&v.NextMaintenance,
			&v.Driver,
			&v.DriverUserID,
			&v.Status,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
