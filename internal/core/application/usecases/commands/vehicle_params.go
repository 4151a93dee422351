package commands

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CreateVehicleParams is the explicit input schema of vehicle registration.
type CreateVehicleParams struct {
	PlateNumber     string
	Type            string
	Capacity        decimal.Decimal
	FuelType        string
	Year            int
	LastMaintenance *time.Time
	NextMaintenance *time.Time
	DriverName      string
	// DriverUserID links the vehicle to a DRIVER account. Empty means none.
	DriverUserID string
	// Status defaults to Available. On Route cannot be requested.
	Status string
}

// UpdateVehicleParams is the explicit patch schema of a vehicle. Nil fields are
// left untouched; an empty DriverUserID unlinks the driver account.
type UpdateVehicleParams struct {
	PlateNumber     *string
	Type            *string
	Capacity        *decimal.Decimal
	FuelType        *string
	Year            *int
	LastMaintenance *time.Time
	NextMaintenance *time.Time
	DriverName      *string
	DriverUserID    *string
	Status          *string
}

func (p UpdateVehicleParams) touchesDriver() bool {
	return p.DriverName != nil || p.DriverUserID != nil
}

func (p UpdateVehicleParams) touchesSpec() bool {
	return p.PlateNumber != nil || p.Type != nil || p.Capacity != nil || p.FuelType != nil ||
		p.Year != nil || p.LastMaintenance != nil || p.NextMaintenance != nil
}

func parseDriverUserID(s string) (*kernel.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// vehiclePatch is an UpdateVehicleParams with every enum already parsed.
type vehiclePatch struct {
	params       UpdateVehicleParams
	vehicleType  *fleet.Type
	fuelType     *fleet.FuelType
	status       *fleet.Status
	driverUserID *kernel.UUID
}

func parseVehiclePatch(p UpdateVehicleParams) (vehiclePatch, error) {
	patch := vehiclePatch{params: p}

	var err error
	if p.Type != nil {
		t, tErr := fleet.ParseType(*p.Type)
		err = errors.Join(err, tErr)
		patch.vehicleType = &t
	}
	if p.FuelType != nil {
		f, fErr := fleet.ParseFuelType(*p.FuelType)
		err = errors.Join(err, fErr)
		patch.fuelType = &f
	}
	if p.Status != nil {
		s, sErr := fleet.ParseStatus(*p.Status)
		err = errors.Join(err, sErr)
		patch.status = &s
	}
	if p.DriverUserID != nil {
		id, idErr := parseDriverUserID(*p.DriverUserID)
		err = errors.Join(err, idErr)
		patch.driverUserID = id
	}

	return patch, err
}

func (p vehiclePatch) apply(spec fleet.Spec) fleet.Spec {
	if p.params.PlateNumber != nil {
		spec.PlateNumber = *p.params.PlateNumber
	}
	if p.vehicleType != nil {
		spec.Type = *p.vehicleType
	}
	if p.params.Capacity != nil {
		spec.Capacity = *p.params.Capacity
	}
	if p.fuelType != nil {
		spec.FuelType = *p.fuelType
	}
	if p.params.Year != nil {
		spec.Year = *p.params.Year
	}
	if p.params.LastMaintenance != nil {
		spec.LastMaintenance = p.params.LastMaintenance
	}
	if p.params.NextMaintenance != nil {
		spec.NextMaintenance = p.params.NextMaintenance
	}
	return spec
}

func (p vehiclePatch) applyDriver(driver fleet.Driver) fleet.Driver {
	if p.params.DriverName != nil {
		driver.Name = *p.params.DriverName
	}
	if p.params.DriverUserID != nil {
		driver.UserID = p.driverUserID
	}
	return driver
}
