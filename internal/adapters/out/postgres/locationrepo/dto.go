// Package locationrepo persists locations with their coordinates as embedded columns.
package locationrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
)

type LocationDTO struct {
	ID               string         `gorm:"type:varchar(32);primaryKey"`
	Name             string         `gorm:"type:varchar(255);not null"`
	CityName         string         `gorm:"type:varchar(255)"`
	Type             string         `gorm:"type:varchar(32);not null"`
	Address          string         `gorm:"type:text;not null"`
	Coordinates      CoordinatesDTO `gorm:"embedded;embeddedPrefix:coordinates_"`
	Capacity         int
	CurrentOccupancy int
	Manager          string `gorm:"type:varchar(255)"`
	IsActive         bool
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (LocationDTO) TableName() string {
	return "locations"
}

type CoordinatesDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

func fromDomain(l *location.Location) LocationDTO {
	a := l.Attributes()
	return LocationDTO{
		ID:               l.ID().String(),
		Name:             a.Name,
		CityName:         a.City,
		Type:             a.Type.String(),
		Address:          a.Address,
		Coordinates:      CoordinatesDTO{Lat: a.Coordinates.Lat(), Lng: a.Coordinates.Lng()},
		Capacity:         a.Capacity,
		CurrentOccupancy: a.CurrentOccupancy,
		Manager:          a.Manager,
		IsActive:         a.Active,
		CreatedAt:        l.CreatedAt(),
		UpdatedAt:        l.UpdatedAt(),
	}
}

func toDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.ParseCode(kernel.LocationPrefix, dto.ID)
	if err != nil {
		return nil, err
	}
	locationType, err := location.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	point, err := kernel.NewGeoPoint(dto.Coordinates.Lat, dto.Coordinates.Lng)
	if err != nil {
		return nil, err
	}

	return location.RestoreLocation(id, location.Attributes{
		Name:             dto.Name,
		City:             dto.CityName,
		Type:             locationType,
		Address:          dto.Address,
		Coordinates:      point,
		Capacity:         dto.Capacity,
		CurrentOccupancy: dto.CurrentOccupancy,
		Manager:          dto.Manager,
		Active:           dto.IsActive,
	}, dto.CreatedAt, dto.UpdatedAt)
}
