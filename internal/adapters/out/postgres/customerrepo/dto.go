// Package customerrepo persists customer reference records.
package customerrepo

import (
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
)

type CustomerDTO struct {
	ID        string `gorm:"type:varchar(32);primaryKey"`
	Name      string `gorm:"type:varchar(255);not null"`
	Email     string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(64)"`
	Address   string `gorm:"type:text"`
	Company   string `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	p := c.Profile()
	return CustomerDTO{
		ID:        c.ID().String(),
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		Company:   p.Company,
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.ParseCode(kernel.CustomerPrefix, dto.ID)
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(id, customer.Profile{
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Address: dto.Address,
		Company: dto.Company,
	}, dto.CreatedAt, dto.UpdatedAt)
}
