package kernel

import (
	"fmt"
	"math"

	"fleetops/internal/pkg/errs"
)

const earthRadiusMeters = 6371000.0

// Location is a geographic point (latitude/longitude in decimal degrees).
// It is a value object: construct via NewLocation, compare with IsEqual.
//
// The zero value (0, 0) is a valid coordinate in the Gulf of Guinea, so Location
// carries a constructed flag rather than treating zero coordinates as unset.
type Location struct {
	lat float64
	lon float64

	isConstructed bool
}

// NewLocation creates a Location after validating the coordinate ranges.
func NewLocation(lat, lon float64) (Location, error) {
	if lat < -90 || lat > 90 {
		return Location{}, errs.NewValueIsOutOfRangeError("latitude", lat, -90.0, 90.0)
	}
	if lon < -180 || lon > 180 {
		return Location{}, errs.NewValueIsOutOfRangeError("longitude", lon, -180.0, 180.0)
	}

	return Location{lat: lat, lon: lon, isConstructed: true}, nil
}

// Latitude returns the latitude in decimal degrees.
func (l Location) Latitude() float64 {
	return l.lat
}

// Longitude returns the longitude in decimal degrees.
func (l Location) Longitude() float64 {
	return l.lon
}

// IsZero reports whether the location is the unconstructed zero value.
func (l Location) IsZero() bool {
	return !l.isConstructed
}

// IsEqual reports whether two locations denote the same point.
func (l Location) IsEqual(other Location) bool {
	return l.isConstructed == other.isConstructed && l.lat == other.lat && l.lon == other.lon
}

// Validate returns an error for the unconstructed zero value.
func (l Location) Validate() error {
	if !l.isConstructed {
		return errs.NewValueIsRequiredError("location must be created via NewLocation")
	}
	return nil
}

// DistanceTo returns the great-circle distance to other in meters (haversine).
func (l Location) DistanceTo(other Location) float64 {
	lat1 := l.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - l.lat) * math.Pi / 180
	dLon := (other.lon - l.lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// String renders the location as "lat,lon".
func (l Location) String() string {
	return fmt.Sprintf("%f,%f", l.lat, l.lon)
}
