package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	london     = GeoPoint{Lat: 51.5, Lon: -0.1}
	newYork    = GeoPoint{Lat: 40.7, Lon: -74.0}
	tokyo      = GeoPoint{Lat: 35.7, Lon: 139.7}
	losAngeles = GeoPoint{Lat: 34.0, Lon: -118.2}
	fairbanks  = GeoPoint{Lat: 64.8, Lon: -147.7}
	moscow     = GeoPoint{Lat: 55.8, Lon: 37.6}
	sydney     = GeoPoint{Lat: -33.9, Lon: 151.2}
	auckland   = GeoPoint{Lat: -36.8, Lon: 174.8}
)

func TestInterpolate_LondonToNewYork(t *testing.T) {
	points, err := Interpolate(london, newYork, 30)
	require.NoError(t, err)

	require.Len(t, points, 31)
	assert.Equal(t, london, points[0])
	assert.Equal(t, newYork, points[30])

	// The great circle bulges north of both endpoints
	maxLat := -90.0
	for _, p := range points {
		maxLat = math.Max(maxLat, p.Lat)
		assert.GreaterOrEqual(t, p.Lon, -180.0)
		assert.LessOrEqual(t, p.Lon, 180.0)
	}
	assert.InDelta(t, 53.77, maxLat, 0.05, "arc should peak near 53.8°N")

	segments := Split(points)
	require.Len(t, segments, 1, "London to New York never reaches the antimeridian")
	assert.Equal(t, Segment(points), segments[0])
}

func TestInterpolate_TokyoToLosAngelesGoesEast(t *testing.T) {
	assert.True(t, CrossesAntimeridian(tokyo, losAngeles))

	points, err := Interpolate(tokyo, losAngeles, 100)
	require.NoError(t, err)
	require.Len(t, points, 101)

	// First step heads east over the Pacific, not west over Asia
	assert.Greater(t, points[1].Lon, tokyo.Lon)
	assert.InDelta(t, 140.51, points[1].Lon, 0.01)

	segments := Split(points)
	require.GreaterOrEqual(t, len(segments), 2)

	first, second := segments[0], segments[1]
	assert.InDelta(t, 179.999, first[len(first)-1].Lon, 1e-9)
	assert.InDelta(t, -179.999, second[0].Lon, 1e-9)
	assert.Equal(t, first[len(first)-1].Lat, second[0].Lat)
	assert.InDelta(t, 47.6, second[0].Lat, 0.1)
}

func TestInterpolate_SamePoint(t *testing.T) {
	p := GeoPoint{Lat: 10, Lon: 10}

	points, err := Interpolate(p, p, 30)
	require.NoError(t, err)
	assert.Equal(t, []GeoPoint{p, p}, points)
	assert.InDelta(t, 0, PathLength(points), 1e-6)

	segments := Split(points)
	require.Len(t, segments, 1)
	assert.Equal(t, Segment{p, p}, segments[0])

	units, err := Replicate(segments, DefaultWorldOffsets)
	require.NoError(t, err)
	require.Len(t, units, 5)
	for _, u := range units {
		assert.Equal(t, p.Lat, u.Points[0].Lat)
		assert.Equal(t, p.Lon+float64(u.Offset), u.Points[0].Lon)
	}
}

func TestInterpolate_AntipodalFallsBack(t *testing.T) {
	a := GeoPoint{Lat: 0, Lon: 0}
	b := GeoPoint{Lat: 0, Lon: 180}

	points, err := Interpolate(a, b, 30)
	require.NoError(t, err)
	assert.Equal(t, []GeoPoint{a, b}, points)
}

func TestInterpolate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		p1   GeoPoint
		p2   GeoPoint
	}{
		{"latitude too high", GeoPoint{Lat: 91, Lon: 0}, london},
		{"latitude too low", london, GeoPoint{Lat: -90.5, Lon: 0}},
		{"longitude out of range", GeoPoint{Lat: 0, Lon: 200}, london},
		{"nan", GeoPoint{Lat: math.NaN(), Lon: 0}, london},
		{"infinite", london, GeoPoint{Lat: 0, Lon: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Interpolate(tt.p1, tt.p2, 30)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}

	_, err := Interpolate(london, newYork, 0)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestInterpolate_Properties(t *testing.T) {
	pairs := []struct {
		name string
		from GeoPoint
		to   GeoPoint
	}{
		{"london-new york", london, newYork},
		{"tokyo-los angeles", tokyo, losAngeles},
		{"los angeles-tokyo", losAngeles, tokyo},
		{"fairbanks-moscow over the pole", fairbanks, moscow},
		{"sydney-auckland", sydney, auckland},
		{"equator east", GeoPoint{Lat: 0, Lon: 170}, GeoPoint{Lat: 0, Lon: -170}},
		{"meridian", GeoPoint{Lat: -60, Lon: 0}, GeoPoint{Lat: 60, Lon: 0}},
	}

	for _, pair := range pairs {
		for _, n := range []int{1, 7, 30, 100} {
			points, err := Interpolate(pair.from, pair.to, n)
			require.NoError(t, err, pair.name)

			require.Len(t, points, n+1, pair.name)
			assert.Equal(t, pair.from, points[0], pair.name)
			assert.Equal(t, pair.to, points[n], pair.name)

			want := DistanceKm(pair.from, pair.to)
			got := PathLength(points) / 1000
			assert.InDelta(t, want, got, want*0.02+0.001, "%s n=%d: path length", pair.name, n)

			segments := Split(points)
			for _, seg := range segments {
				for i := 1; i < len(seg); i++ {
					assert.LessOrEqual(t, math.Abs(seg[i].Lon-seg[i-1].Lon), 180.0, pair.name)
				}
			}
			assert.Equal(t, points, rejoin(segments), "%s n=%d: segments should rebuild the path", pair.name, n)
		}
	}
}

func TestShortestLongitudeDelta(t *testing.T) {
	assert.InDelta(t, 102.1, ShortestLongitudeDelta(139.7, -118.2), 1e-9)
	assert.InDelta(t, -102.1, ShortestLongitudeDelta(-118.2, 139.7), 1e-9)
	assert.InDelta(t, -73.9, ShortestLongitudeDelta(-0.1, -74.0), 1e-9)
	assert.Equal(t, 180.0, ShortestLongitudeDelta(0, 180))
	assert.Equal(t, 180.0, ShortestLongitudeDelta(0, -180))
}

func TestCentralAngle(t *testing.T) {
	assert.InDelta(t, 0, CentralAngle(london, london), 1e-7)
	assert.InDelta(t, math.Pi, CentralAngle(GeoPoint{Lat: 0, Lon: 0}, GeoPoint{Lat: 0, Lon: 180}), 1e-9)
	assert.InDelta(t, 5572.8, CentralAngle(london, newYork)*EarthRadiusKm, 1)
}

func TestHaversineDistance(t *testing.T) {
	assert.InDelta(t, 5572.8, DistanceKm(london, newYork), 1)
	assert.InDelta(t, 8820.9, DistanceKm(tokyo, losAngeles), 1)
	assert.Equal(t, 0.0, HaversineDistance(10, 10, 10, 10))
}

// rejoin drops the boundary points Split inserts and concatenates the rest.
func rejoin(segments []Segment) []GeoPoint {
	var out []GeoPoint
	for i, seg := range segments {
		start, end := 0, len(seg)
		if i > 0 {
			start = 1
		}
		if i < len(segments)-1 {
			end = len(seg) - 1
		}
		out = append(out, seg[start:end]...)
	}
	return out
}
