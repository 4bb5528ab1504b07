package spatial

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned when a latitude or longitude is out of
// range or not a finite number.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" msgpack:"lat"`
	Lon float64 `json:"lon" msgpack:"lon"`
}

// NewGeoPoint creates a GeoPoint after validating it.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{Lat: lat, Lon: lon}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// Validate checks latitude is within [-90, 90] and longitude within
// [-180, 180].
func (p GeoPoint) Validate() error {
	if !isFinite(p.Lat) || !isFinite(p.Lon) {
		return fmt.Errorf("%w: non-finite value (lat=%v, lon=%v)", ErrInvalidCoordinate, p.Lat, p.Lon)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidCoordinate, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidCoordinate, p.Lon)
	}
	return nil
}

// Shifted returns a copy of p moved east by offset degrees of longitude.
func (p GeoPoint) Shifted(offset float64) GeoPoint {
	return GeoPoint{Lat: p.Lat, Lon: p.Lon + offset}
}

// NormalizeLongitude wraps lon into [-180, 180]. Values already inside the
// range, including both boundaries, are returned unchanged.
func NormalizeLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
