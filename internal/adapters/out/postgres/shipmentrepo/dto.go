// Package shipmentrepo persists shipment aggregates. The customer, fleet and
// confirmation snapshots are embedded columns of the shipments table.
package shipmentrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
type ShipmentDTO struct {
	ID                string          `gorm:"type:varchar(32);primaryKey"`
	Customer          CustomerDTO     `gorm:"embedded;embeddedPrefix:customer_"`
	Origin            string          `gorm:"type:varchar(255);not null"`
	Destination       string          `gorm:"type:varchar(255);not null"`
	Weight            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status            string          `gorm:"type:varchar(16);not null;index"`
	Fleet             FleetDTO        `gorm:"embedded;embeddedPrefix:fleet_"`
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	Notes             string          `gorm:"type:text"`
	Confirmation      ConfirmationDTO `gorm:"embedded;embeddedPrefix:confirmation_"`
	CreatedAt         time.Time       `gorm:"index"`
	UpdatedAt         time.Time
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// CustomerDTO is the customer contact snapshot.
type CustomerDTO struct {
	Name    string `gorm:"type:varchar(255);not null"`
	Phone   string `gorm:"type:varchar(64)"`
	Address string `gorm:"type:text"`
}

// FleetDTO is the vehicle snapshot. ID is NULL when no vehicle is assigned.
type FleetDTO struct {
	ID          *string `gorm:"type:varchar(32);index"`
	PlateNumber string  `gorm:"type:varchar(32)"`
	Driver      string  `gorm:"type:varchar(255)"`
}

// ConfirmationDTO is the driver's delivery confirmation; At is NULL until confirmed.
type ConfirmationDTO struct {
	At    *time.Time
	By    *uuid.UUID `gorm:"type:uuid"`
	Notes string     `gorm:"type:text"`
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID: s.ID().String(),
		Customer: CustomerDTO{
			Name:    s.Customer().Name(),
			Phone:   s.Customer().Phone(),
			Address: s.Customer().Address(),
		},
		Origin:            s.Origin(),
		Destination:       s.Destination(),
		Weight:            s.Weight(),
		Status:            s.Status().String(),
		EstimatedDelivery: s.EstimatedDelivery(),
		ActualDelivery:    s.ActualDelivery(),
		Notes:             s.Notes(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
	}

	if a := s.Fleet(); a != nil {
		id := a.VehicleID().String()
		dto.Fleet = FleetDTO{ID: &id, PlateNumber: a.PlateNumber(), Driver: a.Driver()}
	}

	if c := s.Confirmation(); c != nil {
		at := c.ConfirmedAt
		by := c.ConfirmedBy.Bytes()
		dto.Confirmation = ConfirmationDTO{At: &at, By: &by, Notes: c.Notes}
	}

	return dto
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.ParseCode(kernel.ShipmentPrefix, dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	customer, err := shipment.NewCustomer(dto.Customer.Name, dto.Customer.Phone, dto.Customer.Address)
	if err != nil {
		return nil, err
	}

	var assignment *shipment.FleetAssignment
	if dto.Fleet.ID != nil {
		vehicleID, parseErr := kernel.ParseCode(kernel.VehiclePrefix, *dto.Fleet.ID)
		if parseErr != nil {
			return nil, parseErr
		}
		a, aErr := shipment.NewFleetAssignment(vehicleID, dto.Fleet.PlateNumber, dto.Fleet.Driver)
		if aErr != nil {
			return nil, aErr
		}
		assignment = &a
	}

	var confirmation *shipment.Confirmation
	if dto.Confirmation.At != nil && dto.Confirmation.By != nil {
		by, byErr := kernel.UUIDFromBytes(dto.Confirmation.By[:])
		if byErr != nil {
			return nil, byErr
		}
		confirmation = &shipment.Confirmation{
			ConfirmedAt: *dto.Confirmation.At,
			ConfirmedBy: by,
			Notes:       dto.Confirmation.Notes,
		}
	}

	return shipment.RestoreShipment(shipment.State{
		ID: id,
		Details: shipment.Details{
			Customer:          customer,
			Origin:            dto.Origin,
			Destination:       dto.Destination,
			Weight:            dto.Weight,
			EstimatedDelivery: dto.EstimatedDelivery,
			Notes:             dto.Notes,
		},
		Status:         status,
		Fleet:          assignment,
		ActualDelivery: dto.ActualDelivery,
		Confirmation:   confirmation,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	})
}
