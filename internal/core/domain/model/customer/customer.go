// Package customer holds the customer reference record. Shipments copy the
// contact fields at creation time; there is no other cross-entity invariant.
package customer

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Company string
}

type Customer struct {
	id            kernel.Code
	profile       Profile
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

func NewCustomer(id kernel.Code, profile Profile, now time.Time) (*Customer, error) {
	c := &Customer{createdAt: now, updatedAt: now, isConstructed: true}
	if err := errors.Join(c.setID(id), c.setProfile(profile)); err != nil {
		return nil, err
	}
	return c, nil
}

func RestoreCustomer(id kernel.Code, profile Profile, createdAt, updatedAt time.Time) (*Customer, error) {
	c := &Customer{createdAt: createdAt, updatedAt: updatedAt, isConstructed: true}
	if err := errors.Join(c.setID(id), c.setProfile(profile)); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.Code      { return c.id }
func (c *Customer) Profile() Profile     { return c.profile }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }

func (c *Customer) Update(profile Profile, now time.Time) error {
	if err := c.setProfile(profile); err != nil {
		return err
	}
	c.updatedAt = now
	return nil
}

func (c *Customer) setID(id kernel.Code) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if id.Prefix() != kernel.CustomerPrefix {
		return errs.NewValueIsInvalidErrorWithCause("customer id", fmt.Errorf("%s is not a customer code", id))
	}
	c.id = id
	return nil
}

func (c *Customer) setProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	p.Company = strings.TrimSpace(p.Company)

	var err error
	if p.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer name"))
	}
	if p.Email != "" {
		if _, mErr := mail.ParseAddress(p.Email); mErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("email", mErr))
		}
	}
	if err != nil {
		return err
	}

	c.profile = p
	return nil
}
