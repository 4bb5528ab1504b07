package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounds(t *testing.T) {
	sw, ne := Bounds([]GeoPoint{
		{Lat: 10, Lon: 170},
		{Lat: -5, Lon: 179.999},
		{Lat: 20, Lon: -540},
	})
	assert.Equal(t, GeoPoint{Lat: -5, Lon: -540}, sw)
	assert.Equal(t, GeoPoint{Lat: 20, Lon: 179.999}, ne)

	sw, ne = Bounds(nil)
	assert.Equal(t, GeoPoint{}, sw)
	assert.Equal(t, GeoPoint{}, ne)
}

func TestSimplify(t *testing.T) {
	points, err := Interpolate(GeoPoint{Lat: 51.47, Lon: -0.4543}, GeoPoint{Lat: 40.6413, Lon: -73.7781}, 100)
	require.NoError(t, err)
	arc := Segment(points)

	t.Run("zero tolerance keeps everything", func(t *testing.T) {
		assert.Equal(t, arc, Simplify(arc, 0))
	})

	t.Run("keeps endpoints and drops points", func(t *testing.T) {
		out := Simplify(arc, 5000)
		require.GreaterOrEqual(t, len(out), 2)
		assert.Less(t, len(out), len(arc))
		assert.Equal(t, arc[0], out[0])
		assert.Equal(t, arc[len(arc)-1], out[len(out)-1])
	})

	t.Run("huge tolerance leaves a chord", func(t *testing.T) {
		out := Simplify(arc, 1e9)
		assert.Len(t, out, 2)
	})

	t.Run("short segments untouched", func(t *testing.T) {
		seg := Segment{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}
		assert.Equal(t, seg, Simplify(seg, 1e9))
	})
}
