package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// DegenerateAngle is the central angle, in radians, below which two points
// are treated as coincident. The same margin from π marks a pair as
// numerically antipodal, where the great circle through them is not unique.
const DegenerateAngle = 0.001

// ErrInvalidResolution is returned when fewer than one interpolation step is requested.
var ErrInvalidResolution = errors.New("invalid interpolation resolution")

// Interpolate returns numPoints+1 points along the shortest great-circle arc
// from p1 to p2. The first point is p1 and the last is p2.
//
// Points are computed by spherical linear interpolation of the unit vectors
// of the endpoints, so every returned longitude already lies in [-180, 180]
// and a path crossing the antimeridian shows up as a jump of more than 180
// degrees between neighbours (see Split).
//
// When the endpoints are coincident or antipodal, or the central angle is not
// a number, the two endpoints are returned as is.
func Interpolate(p1, p2 GeoPoint, numPoints int) ([]GeoPoint, error) {
	if err := p1.Validate(); err != nil {
		return nil, fmt.Errorf("interpolate origin: %w", err)
	}
	if err := p2.Validate(); err != nil {
		return nil, fmt.Errorf("interpolate destination: %w", err)
	}
	if numPoints < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, numPoints)
	}

	// Take the short way round: with the far endpoint unwrapped, Δλ is never
	// more than half the globe.
	far := GeoPoint{Lat: p2.Lat, Lon: p1.Lon + ShortestLongitudeDelta(p1.Lon, p2.Lon)}
	delta := CentralAngle(p1, far)
	if math.IsNaN(delta) || delta < DegenerateAngle || math.Pi-delta < DegenerateAngle {
		return []GeoPoint{p1, p2}, nil
	}

	sinDelta := math.Sin(delta)
	v1 := s2.PointFromLatLng(s2.LatLngFromDegrees(p1.Lat, p1.Lon)).Vector
	v2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p2.Lat, p2.Lon)).Vector

	points := make([]GeoPoint, numPoints+1)
	for i := 0; i <= numPoints; i++ {
		f := float64(i) / float64(numPoints)
		a := math.Sin((1-f)*delta) / sinDelta
		b := math.Sin(f*delta) / sinDelta

		v := v1.Mul(a).Add(v2.Mul(b))
		ll := s2.LatLngFromPoint(s2.Point{Vector: v})
		pt := GeoPoint{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
		if !isFinite(pt.Lat) || !isFinite(pt.Lon) {
			return nil, fmt.Errorf("%w: non-finite point at step %d/%d", ErrInvalidCoordinate, i, numPoints)
		}
		points[i] = pt
	}

	points[0] = p1
	points[numPoints] = p2
	return points, nil
}

// ShortestLongitudeDelta returns the signed longitude change, in (-180, 180],
// that moves from lon1 to lon2 the short way round.
func ShortestLongitudeDelta(lon1, lon2 float64) float64 {
	d := lon2 - lon1
	for d > 180 {
		d -= 360
	}
	for d <= -180 {
		d += 360
	}
	return d
}
