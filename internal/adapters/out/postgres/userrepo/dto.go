// Package userrepo persists users keyed by UUID. Usernames are unique.
package userrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email        string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(255);not null"`
	Phone        string    `gorm:"type:varchar(64)"`
	Role         string    `gorm:"type:varchar(16);not null;index"`
	IsActive     bool
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	p := u.Profile()
	return UserDTO{
		ID:           u.ID().Bytes(),
		Username:     p.Username,
		Email:        p.Email,
		FullName:     p.FullName,
		Phone:        p.Phone,
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(user.State{
		ID: id,
		Profile: user.Profile{
			Username: dto.Username,
			Email:    dto.Email,
			FullName: dto.FullName,
			Phone:    dto.Phone,
		},
		Role:         role,
		Active:       dto.IsActive,
		PasswordHash: dto.PasswordHash,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}
