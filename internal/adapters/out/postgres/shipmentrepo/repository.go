package shipmentrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// ActiveStatuses are the stored status values of shipments that hold a vehicle.
func ActiveStatuses() []string {
	return []string{shipment.Pending.String(), shipment.InTransit.String()}
}

// Add saves a new shipment to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "shipment "+dto.ID)
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// Update saves every column of an existing shipment, including cleared ones.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, "shipment "+dto.ID)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", dto.ID)
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// Delete removes an existing shipment.
func (r *GormShipmentRepository) Delete(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id)
	if result.Error != nil {
		return pgerr.Translate(result.Error, "shipment "+id)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id)
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

// Get retrieves a shipment by code and locks the row for the current transaction.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.Code) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, pgerr.Translate(err, "shipment "+id.String())
	}

	return toDomain(dto)
}

// HasActiveForVehicle reports whether a Pending or In Transit shipment references the vehicle.
func (r *GormShipmentRepository) HasActiveForVehicle(ctx context.Context, vehicleID kernel.Code) (bool, error) {
	if err := vehicleID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("fleet_id = ? AND status IN ?", vehicleID.String(), ActiveStatuses()).
		Count(&count).Error
	if err != nil {
		return false, pgerr.Translate(err, "shipments")
	}

	return count > 0, nil
}

// ActiveVehicleIDs returns the vehicle codes referenced by active shipments.
func (r *GormShipmentRepository) ActiveVehicleIDs(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("fleet_id IS NOT NULL AND status IN ?", ActiveStatuses()).
		Distinct().
		Pluck("fleet_id", &ids).Error
	if err != nil {
		return nil, pgerr.Translate(err, "shipments")
	}

	held := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		held[id] = struct{}{}
	}
	return held, nil
}
