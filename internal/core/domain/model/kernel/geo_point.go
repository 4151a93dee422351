package kernel

import (
	"errors"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is a WGS84 coordinate pair used to place locations on the map view.
type GeoPoint struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	var err error
	if lat < MinLatitude || lat > MaxLatitude {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude))
	}
	if lng < MinLongitude || lng > MaxLongitude {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude))
	}
	if err != nil {
		return GeoPoint{}, err
	}

	return GeoPoint{lat: lat, lng: lng, guard: guard.NewConstructorGuard()}, nil
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

func (p GeoPoint) Lng() float64 {
	return p.lng
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}
