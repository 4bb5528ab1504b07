package render

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"github.com/jengzang/flightarcs-backend-go/internal/flightpath"
	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
)

// EncodedPath is one primary-copy segment of a trip in Google encoded
// polyline format.
type EncodedPath struct {
	TripID   int64  `json:"trip_id"`
	Segment  int    `json:"segment"`
	Polyline string `json:"polyline"`
}

// EncodePolylines encodes the segments of every visible trip. Only the
// unshifted copy is encoded; clients replicate it themselves. A positive
// tolerance, in meters, simplifies each segment before encoding.
func EncodePolylines(geometries []*flightpath.TripGeometry, layers *LayerSet, tolerance float64) []EncodedPath {
	var out []EncodedPath
	for _, g := range geometries {
		if layers != nil && !layers.Visible(g.TripID) {
			continue
		}
		for i, seg := range g.Segments {
			out = append(out, EncodedPath{
				TripID:   g.TripID,
				Segment:  i,
				Polyline: EncodeSegment(spatial.Simplify(seg, tolerance)),
			})
		}
	}
	return out
}

// EncodeSegment encodes points at the default 1e5 precision.
func EncodeSegment(seg spatial.Segment) string {
	coords := make([][]float64, 0, len(seg))
	for _, p := range seg {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodeSegment reverses EncodeSegment.
func DecodeSegment(encoded string) (spatial.Segment, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	seg := make(spatial.Segment, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		seg = append(seg, spatial.GeoPoint{Lat: c[0], Lon: c[1]})
	}
	return seg, nil
}
