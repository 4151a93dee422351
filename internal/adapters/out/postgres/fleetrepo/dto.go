// Package fleetrepo persists fleet vehicles in the "fleet" table.
package fleetrepo

import (
	"time"

	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VehicleDTO struct {
	ID              string          `gorm:"type:varchar(32);primaryKey"`
	PlateNumber     string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Type            string          `gorm:"type:varchar(16);not null"`
	Capacity        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Driver          string          `gorm:"type:varchar(255)"`
	DriverID        *uuid.UUID      `gorm:"type:uuid;index"`
	Status          string          `gorm:"type:varchar(16);not null;index"`
	FuelType        string          `gorm:"type:varchar(16);not null"`
	Year            int
	LastMaintenance *time.Time
	NextMaintenance *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (VehicleDTO) TableName() string {
	return "fleet"
}

func fromDomain(v *fleet.Vehicle) VehicleDTO {
	spec := v.Spec()
	dto := VehicleDTO{
		ID:              v.ID().String(),
		PlateNumber:     spec.PlateNumber,
		Type:            spec.Type.String(),
		Capacity:        spec.Capacity,
		Driver:          v.Driver().Name,
		Status:          v.Status().String(),
		FuelType:        spec.FuelType.String(),
		Year:            spec.Year,
		LastMaintenance: spec.LastMaintenance,
		NextMaintenance: spec.NextMaintenance,
		CreatedAt:       v.CreatedAt(),
		UpdatedAt:       v.UpdatedAt(),
	}
	if id := v.Driver().UserID; id != nil {
		raw := id.Bytes()
		dto.DriverID = &raw
	}
	return dto
}

func toDomain(dto VehicleDTO) (*fleet.Vehicle, error) {
	id, err := kernel.ParseCode(kernel.VehiclePrefix, dto.ID)
	if err != nil {
		return nil, err
	}
	vehicleType, err := fleet.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	status, err := fleet.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	fuel, err := fleet.ParseFuelType(dto.FuelType)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, dErr := kernel.UUIDFromBytes(dto.DriverID[:])
		if dErr != nil {
			return nil, dErr
		}
		driverID = &dID
	}

	return fleet.RestoreVehicle(fleet.State{
		ID: id,
		Spec: fleet.Spec{
			PlateNumber:     dto.PlateNumber,
			Type:            vehicleType,
			Capacity:        dto.Capacity,
			FuelType:        fuel,
			Year:            dto.Year,
			LastMaintenance: dto.LastMaintenance,
			NextMaintenance: dto.NextMaintenance,
		},
		Driver:    fleet.Driver{Name: dto.Driver, UserID: driverID},
		Status:    status,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
