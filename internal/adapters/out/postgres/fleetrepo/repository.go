package fleetrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/fleet"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVehicleRepository implements ports.VehicleRepository using GORM.
type GormVehicleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormVehicleRepository(db *gorm.DB, tracker aggregateTracker) *GormVehicleRepository {
	return &GormVehicleRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormVehicleRepository) Add(ctx context.Context, aggregate *fleet.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "vehicle with plate number "+dto.PlateNumber)
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

func (r *GormVehicleRepository) Update(ctx context.Context, aggregate *fleet.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VehicleDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, "vehicle with plate number "+dto.PlateNumber)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", dto.ID)
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

func (r *GormVehicleRepository) Delete(ctx context.Context, id kernel.Code) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&VehicleDTO{}, "id = ?", id.String())
	if result.Error != nil {
		return pgerr.Translate(result.Error, "vehicle "+id.String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", id.String())
	}

	return nil
}

// Get loads a vehicle with SELECT ... FOR UPDATE.
func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.Code) (*fleet.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, pgerr.Translate(err, "vehicle "+id.String())
	}

	return toDomain(dto)
}

// GetAll loads every vehicle ordered by id, locked for update.
func (r *GormVehicleRepository) GetAll(ctx context.Context) ([]*fleet.Vehicle, error) {
	var dtos []VehicleDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, "fleet")
	}

	vehicles := make([]*fleet.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}
