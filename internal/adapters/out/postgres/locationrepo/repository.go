package locationrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLocationRepository implements ports.LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) Add(ctx context.Context, aggregate *location.Location) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error, "location "+dto.ID)
}

func (r *GormLocationRepository) Update(ctx context.Context, aggregate *location.Location) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&LocationDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, "location "+dto.ID)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("location", dto.ID)
	}
	return nil
}

func (r *GormLocationRepository) Delete(ctx context.Context, id kernel.Code) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&LocationDTO{}, "id = ?", id.String())
	if result.Error != nil {
		return pgerr.Translate(result.Error, "location "+id.String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("location", id.String())
	}
	return nil
}

func (r *GormLocationRepository) Get(ctx context.Context, id kernel.Code) (*location.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("location", id.String())
		}
		return nil, pgerr.Translate(err, "location "+id.String())
	}

	return toDomain(dto)
}
