package fleet

import (
	"fmt"
	"slices"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the availability of a vehicle.
//
// Available and On Route are derived from the shipments holding the vehicle.
// Maintenance and Inactive are manual overrides the workflow never changes.
type Status int

const (
	UnknownStatus Status = iota
	Available
	OnRoute
	Maintenance
	Inactive
)

var statusStrings = map[Status]string{
	Available:   "Available",
	OnRoute:     "On Route",
	Maintenance: "Maintenance",
	Inactive:    "Inactive",
}

func ParseStatus(s string) (Status, error) { return parseEnum("vehicle status", s, statusStrings) }

func (s Status) String() string { return enumString(s, statusStrings) }

func (s Status) Validate() error { return validateEnum("vehicle status", s, statusStrings) }

// Type is the kind of vehicle.
type Type int

const (
	UnknownType Type = iota
	Truck
	Van
	Motorcycle
	Container
)

var typeStrings = map[Type]string{
	Truck:      "Truck",
	Van:        "Van",
	Motorcycle: "Motorcycle",
	Container:  "Container",
}

func ParseType(s string) (Type, error) { return parseEnum("vehicle type", s, typeStrings) }

func (t Type) String() string { return enumString(t, typeStrings) }

func (t Type) Validate() error { return validateEnum("vehicle type", t, typeStrings) }

// FuelType defaults to Diesel when not supplied.
type FuelType int

const (
	UnknownFuel FuelType = iota
	Diesel
	Petrol
	Electric
	Hybrid
)

var fuelStrings = map[FuelType]string{
	Diesel:   "Diesel",
	Petrol:   "Petrol",
	Electric: "Electric",
	Hybrid:   "Hybrid",
}

// ParseFuelType returns Diesel for an empty string.
func ParseFuelType(s string) (FuelType, error) {
	if strings.TrimSpace(s) == "" {
		return Diesel, nil
	}
	return parseEnum("fuel type", s, fuelStrings)
}

func (f FuelType) String() string { return enumString(f, fuelStrings) }

func (f FuelType) Validate() error { return validateEnum("fuel type", f, fuelStrings) }

func parseEnum[T comparable](param, s string, values map[T]string) (T, error) {
	trimmed := strings.TrimSpace(s)
	for v, str := range values {
		if strings.EqualFold(str, trimmed) {
			return v, nil
		}
	}
	var zero T
	return zero, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q is not one of %s", s, joinValues(values)))
}

func validateEnum[T comparable](param string, v T, values map[T]string) error {
	if _, ok := values[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%v is not a valid value", v))
	}
	return nil
}

func enumString[T comparable](v T, values map[T]string) string {
	if str, ok := values[v]; ok {
		return str
	}
	return "Unknown"
}

func joinValues[T comparable](values map[T]string) string {
	names := make([]string, 0, len(values))
	for _, str := range values {
		names = append(names, str)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
