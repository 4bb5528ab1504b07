package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceKm returns the great-circle distance between two points in kilometers.
func DistanceKm(p1, p2 GeoPoint) float64 {
	return HaversineDistance(p1.Lat, p1.Lon, p2.Lat, p2.Lon) / 1000
}

// CentralAngle returns the angle in radians subtended at the Earth's centre
// by p1 and p2, using the spherical law of cosines. The cosine argument is
// clamped to [-1, 1]; a NaN result means the inputs were not finite.
func CentralAngle(p1, p2 GeoPoint) float64 {
	phi1 := toRadians(p1.Lat)
	phi2 := toRadians(p2.Lat)
	dLambda := toRadians(p2.Lon - p1.Lon)

	c := math.Sin(phi1)*math.Sin(phi2) + math.Cos(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// Bearing calculates the initial bearing (forward azimuth) from p1 to p2.
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(p1, p2 GeoPoint) float64 {
	lat1Rad := toRadians(p1.Lat)
	lat2Rad := toRadians(p2.Lat)
	lonDiff := toRadians(p2.Lon - p1.Lon)

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)

	return math.Mod(toDegrees(math.Atan2(y, x))+360, 360)
}

// Midpoint calculates the point halfway along the great circle between p1 and p2
func Midpoint(p1, p2 GeoPoint) GeoPoint {
	a := s2.PointFromLatLng(s2.LatLngFromDegrees(p1.Lat, p1.Lon))
	b := s2.PointFromLatLng(s2.LatLngFromDegrees(p2.Lat, p2.Lon))

	mid := s2.LatLngFromPoint(s2.Interpolate(0.5, a, b))
	return GeoPoint{Lat: mid.Lat.Degrees(), Lon: mid.Lng.Degrees()}
}

// PathLength calculates the total length of a path (sequence of points) in meters
func PathLength(points []GeoPoint) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		totalDist += HaversineDistance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}

	return totalDist
}
