// Package location holds warehouses, branches and other named places that
// shipments travel between.
package location

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

type Type int

const (
	UnknownType Type = iota
	Warehouse
	DistributionCenter
	Branch
	CustomerLocation
)

var typeStrings = map[Type]string{
	Warehouse:          "Warehouse",
	DistributionCenter: "Distribution Center",
	Branch:             "Branch",
	CustomerLocation:   "Customer Location",
}

func ParseType(s string) (Type, error) {
	trimmed := strings.TrimSpace(s)
	for t, str := range typeStrings {
		if strings.EqualFold(str, trimmed) {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("location type", fmt.Errorf("%q is not a location type", s))
}

func (t Type) String() string {
	if str, ok := typeStrings[t]; ok {
		return str
	}
	return "Unknown"
}

// Attributes are the editable fields of a location.
type Attributes struct {
	Name             string
	City             string
	Type             Type
	Address          string
	Coordinates      kernel.GeoPoint
	Capacity         int
	CurrentOccupancy int
	Manager          string
	Active           bool
}

type Location struct {
	id            kernel.Code
	attrs         Attributes
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

func NewLocation(id kernel.Code, attrs Attributes, now time.Time) (*Location, error) {
	return RestoreLocation(id, attrs, now, now)
}

func RestoreLocation(id kernel.Code, attrs Attributes, createdAt, updatedAt time.Time) (*Location, error) {
	l := &Location{createdAt: createdAt, updatedAt: updatedAt, isConstructed: true}
	if err := errors.Join(l.setID(id), l.setAttributes(attrs)); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Location) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

func (l *Location) ID() kernel.Code        { return l.id }
func (l *Location) Attributes() Attributes { return l.attrs }
func (l *Location) CreatedAt() time.Time   { return l.createdAt }
func (l *Location) UpdatedAt() time.Time   { return l.updatedAt }
func (l *Location) Name() string           { return l.attrs.Name }
func (l *Location) Point() kernel.GeoPoint { return l.attrs.Coordinates }

func (l *Location) Update(attrs Attributes, now time.Time) error {
	if err := l.setAttributes(attrs); err != nil {
		return err
	}
	l.updatedAt = now
	return nil
}

func (l *Location) setID(id kernel.Code) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if id.Prefix() != kernel.LocationPrefix {
		return errs.NewValueIsInvalidErrorWithCause("location id", fmt.Errorf("%s is not a location code", id))
	}
	l.id = id
	return nil
}

func (l *Location) setAttributes(a Attributes) error {
	a.Name = strings.TrimSpace(a.Name)
	a.City = strings.TrimSpace(a.City)
	a.Address = strings.TrimSpace(a.Address)
	a.Manager = strings.TrimSpace(a.Manager)

	var err error
	if a.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("location name"))
	}
	if a.Address == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address"))
	}
	if _, ok := typeStrings[a.Type]; !ok {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("location type", fmt.Errorf("%d is not a location type", a.Type)))
	}
	if cErr := a.Coordinates.Validate(); cErr != nil {
		err = errors.Join(err, cErr)
	}
	if a.Capacity < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is negative", a.Capacity)))
	}
	if a.CurrentOccupancy < 0 || (a.Capacity > 0 && a.CurrentOccupancy > a.Capacity) {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("current occupancy", a.CurrentOccupancy, 0, a.Capacity))
	}
	if err != nil {
		return err
	}

	l.attrs = a
	return nil
}
