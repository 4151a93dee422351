// Package activityrepo appends audit entries to the activity_logs table.
package activityrepo

import (
	"context"
	"time"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/activity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(32);not null;index"`
	Details   string    `gorm:"type:text"`
	IPAddress string    `gorm:"type:varchar(64)"`
	Timestamp time.Time `gorm:"not null;index:,sort:desc"`
}

func (EntryDTO) TableName() string {
	return "activity_logs"
}

// GormActivityLog implements ports.ActivityLog. Entries are never updated or deleted.
type GormActivityLog struct {
	db *gorm.DB
}

func NewGormActivityLog(db *gorm.DB) *GormActivityLog {
	return &GormActivityLog{db: db}
}

func (r *GormActivityLog) Append(ctx context.Context, entry *activity.Entry) error {
	dto := EntryDTO{
		ID:        entry.ID().Bytes(),
		UserID:    entry.UserID().Bytes(),
		Action:    string(entry.Action()),
		Details:   entry.Details(),
		IPAddress: entry.IPAddress(),
		Timestamp: entry.Timestamp(),
	}
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error, "activity log entry")
}
