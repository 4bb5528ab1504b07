package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/flightarcs-backend-go/internal/flightpath"
	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
)

func buildGeometries(t *testing.T) []*flightpath.TripGeometry {
	t.Helper()
	b, err := flightpath.NewBuilder(flightpath.DefaultConfig())
	require.NoError(t, err)

	geometries, failures := b.BuildAll([]flightpath.Trip{
		{
			ID:          1,
			Origin:      spatial.GeoPoint{Lat: 51.47, Lon: -0.4543},
			Destination: spatial.GeoPoint{Lat: 40.6413, Lon: -73.7781},
			OriginCode:  "LHR",
			DestCode:    "JFK",
		},
		{
			ID:          2,
			Origin:      spatial.GeoPoint{Lat: 35.5494, Lon: 139.7798},
			Destination: spatial.GeoPoint{Lat: 33.9416, Lon: -118.4085},
			OriginCode:  "HND",
			DestCode:    "LAX",
		},
	})
	require.Empty(t, failures)
	require.Len(t, geometries, 2)
	return geometries
}

func TestFeatureCollection(t *testing.T) {
	geometries := buildGeometries(t)

	fc := FeatureCollection(geometries, nil)

	want := 0
	for _, g := range geometries {
		want += len(g.Lines) + len(g.Origins) + len(g.Destinations)
	}
	require.Len(t, fc.Features, want)

	interactive := 0
	for _, f := range fc.Features {
		if f.Properties["interactive"] == true {
			interactive++
			assert.NotEmpty(t, f.Properties["popup"])
		}
		switch f.Properties["kind"] {
		case string(spatial.KindPoint):
			assert.IsType(t, orb.Point{}, f.Geometry)
		case string(spatial.KindLine):
			assert.IsType(t, orb.LineString{}, f.Geometry)
		}
	}
	// path, origin and destination for each trip
	assert.Equal(t, 6, interactive)

	first := fc.Features[0].Geometry.(orb.LineString)
	assert.InDelta(t, -0.4543-720, first[0].Lon(), 1e-9)
	assert.InDelta(t, 51.47, first[0].Lat(), 1e-9)

	require.Len(t, fc.BBox, 4)
	assert.GreaterOrEqual(t, fc.BBox[0], -180.0)
	assert.LessOrEqual(t, fc.BBox[2], 180.0)
	assert.InDelta(t, 33.9416, fc.BBox[1], 1e-9)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"FeatureCollection"`)
	assert.Contains(t, string(raw), `"bbox":[`)
}

func TestFeatureCollection_HiddenLayers(t *testing.T) {
	geometries := buildGeometries(t)

	fc := FeatureCollection(geometries, NewLayerSet(2))
	for _, f := range fc.Features {
		assert.Equal(t, int64(1), f.Properties["trip_id"])
	}
	assert.Len(t, fc.Features, 15)
}

func TestEncodePolylines_RoundTrip(t *testing.T) {
	geometries := buildGeometries(t)

	paths := EncodePolylines(geometries, nil, 0)
	require.Len(t, paths, len(geometries[0].Segments)+len(geometries[1].Segments))

	decoded, err := DecodeSegment(paths[0].Polyline)
	require.NoError(t, err)
	require.Len(t, decoded, len(geometries[0].Segments[0]))
	for i, p := range decoded {
		assert.InDelta(t, geometries[0].Segments[0][i].Lat, p.Lat, 1e-5)
		assert.InDelta(t, geometries[0].Segments[0][i].Lon, p.Lon, 1e-5)
	}
}

func TestEncodePolylines_Tolerance(t *testing.T) {
	geometries := buildGeometries(t)

	full := EncodePolylines(geometries[:1], nil, 0)
	simplified := EncodePolylines(geometries[:1], nil, 10000)
	require.Len(t, simplified, len(full))

	decoded, err := DecodeSegment(simplified[0].Polyline)
	require.NoError(t, err)
	assert.Less(t, len(decoded), len(geometries[0].Segments[0]))
	assert.GreaterOrEqual(t, len(decoded), 2)
}

func TestEncodeSegment_Known(t *testing.T) {
	// Reference example from the encoded polyline format documentation
	seg := spatial.Segment{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", EncodeSegment(seg))
}

func TestWriteKML(t *testing.T) {
	geometries := buildGeometries(t)

	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, "My flights", geometries, NewLayerSet(1)))

	out := buf.String()
	assert.Contains(t, out, "<kml")
	assert.Contains(t, out, "<name>My flights</name>")
	assert.Contains(t, out, "<name>Trip 2</name>")
	assert.NotContains(t, out, "<name>Trip 1</name>")
	assert.Contains(t, out, "HND → LAX")
	assert.Equal(t, len(geometries[1].Segments), strings.Count(out, "<LineString>"))
}

func TestLayerSet(t *testing.T) {
	var ls LayerSet
	assert.True(t, ls.Visible(1))

	ls.Hide(3)
	ls.Hide(1)
	assert.False(t, ls.Visible(1))
	assert.Equal(t, []int64{1, 3}, ls.Hidden())

	assert.True(t, ls.Toggle(1))
	assert.False(t, ls.Toggle(2))
	assert.Equal(t, []int64{2, 3}, ls.Hidden())

	ls.Show(3)
	assert.Equal(t, []int64{2}, ls.Hidden())
}
