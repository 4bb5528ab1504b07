package spatial

import "math"

// DefaultBoundaryEpsilon keeps inserted crossing points just inside ±180 so
// the closing and opening points of adjacent segments never coincide on the
// map.
const DefaultBoundaryEpsilon = 0.001

// Segment is a run of points in which no two neighbours are more than 180
// degrees of longitude apart.
type Segment []GeoPoint

// Splitter cuts point sequences at the antimeridian.
type Splitter struct {
	// Epsilon is how far inside ±180 the inserted crossing points sit.
	// Zero places them exactly on the boundary.
	Epsilon float64
}

// NewSplitter returns a Splitter using epsilon, falling back to
// DefaultBoundaryEpsilon when epsilon is negative or not finite.
func NewSplitter(epsilon float64) *Splitter {
	if epsilon < 0 || !isFinite(epsilon) || epsilon >= 180 {
		epsilon = DefaultBoundaryEpsilon
	}
	return &Splitter{Epsilon: epsilon}
}

// Split splits points with DefaultBoundaryEpsilon.
func Split(points []GeoPoint) []Segment {
	return NewSplitter(DefaultBoundaryEpsilon).Split(points)
}

// CrossesAntimeridian reports whether the raw longitude step from a to b
// is more than half the globe, which for normalized longitudes means the
// path between them wraps past ±180.
func CrossesAntimeridian(a, b GeoPoint) bool {
	return math.Abs(b.Lon-a.Lon) > 180
}

// Split walks points in order and returns the segments between antimeridian
// crossings. Each crossing closes the current segment with a point on the
// boundary of the side being left and opens the next one with the mirrored
// point on the other side. A sequence without crossings yields a single
// segment holding the same points.
func (s *Splitter) Split(points []GeoPoint) []Segment {
	if len(points) == 0 {
		return nil
	}

	boundary := 180 - s.Epsilon
	current := Segment{points[0]}
	var segments []Segment

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if !CrossesAntimeridian(prev, cur) {
			current = append(current, cur)
			continue
		}

		t := crossingFraction(prev.Lon, cur.Lon)
		lat := prev.Lat + t*(cur.Lat-prev.Lat)

		side := 1.0
		if prev.Lon < 0 {
			side = -1
		}

		current = append(current, GeoPoint{Lat: lat, Lon: side * boundary})
		segments = append(segments, current)
		current = Segment{{Lat: lat, Lon: -side * boundary}, cur}
	}

	return append(segments, current)
}

// crossingFraction is how far from prev towards cur the boundary lies,
// measured along the wrapped longitude step.
func crossingFraction(prevLon, curLon float64) float64 {
	wrapped := 360 - math.Abs(curLon-prevLon)
	if wrapped <= 0 {
		return 0
	}
	t := (180 - math.Abs(prevLon)) / wrapped
	return math.Max(0, math.Min(1, t))
}
