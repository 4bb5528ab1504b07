package spatial

import "math"

// metersPerDegree approximates one degree of arc at the equator.
const metersPerDegree = 111320.0

// Bounds returns the south-west and north-east corners of the box that
// encloses points. Longitudes are compared as given, so replicated copies
// widen the box past ±180.
func Bounds(points []GeoPoint) (GeoPoint, GeoPoint) {
	if len(points) == 0 {
		return GeoPoint{}, GeoPoint{}
	}

	sw, ne := points[0], points[0]
	for _, p := range points[1:] {
		sw.Lat = math.Min(sw.Lat, p.Lat)
		sw.Lon = math.Min(sw.Lon, p.Lon)
		ne.Lat = math.Max(ne.Lat, p.Lat)
		ne.Lon = math.Max(ne.Lon, p.Lon)
	}
	return sw, ne
}

// Simplify reduces a segment with the Ramer-Douglas-Peucker algorithm.
// tolerance is the maximum distance in meters a dropped point may lie from
// the simplified line. The endpoints are always kept, so an antimeridian
// split point stays on its boundary. A tolerance <= 0 returns seg as is.
func Simplify(seg Segment, tolerance float64) Segment {
	if tolerance <= 0 || len(seg) < 3 {
		return seg
	}

	maxDist := 0.0
	maxIndex := 0
	last := len(seg) - 1
	for i := 1; i < last; i++ {
		if d := perpendicularDistance(seg[i], seg[0], seg[last]); d > maxDist {
			maxDist = d
			maxIndex = i
		}
	}

	if maxDist <= tolerance {
		return Segment{seg[0], seg[last]}
	}

	left := Simplify(seg[:maxIndex+1], tolerance)
	right := Simplify(seg[maxIndex:], tolerance)

	out := make(Segment, 0, len(left)+len(right)-1)
	out = append(out, left...)
	return append(out, right[1:]...)
}

// perpendicularDistance is a planar approximation in degree space, scaled
// to meters. Good enough for choosing which vertices to drop.
func perpendicularDistance(p, start, end GeoPoint) float64 {
	x0, y0 := p.Lat, p.Lon
	x1, y1 := start.Lat, start.Lon
	x2, y2 := end.Lat, end.Lon

	den := math.Hypot(y2-y1, x2-x1)
	if den == 0 {
		return HaversineDistance(p.Lat, p.Lon, start.Lat, start.Lon)
	}
	num := math.Abs((y2-y1)*x0 - (x2-x1)*y0 + x2*y1 - y2*x1)
	return num / den * metersPerDegree
}
