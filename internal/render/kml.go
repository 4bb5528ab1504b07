package render

import (
	"fmt"
	"io"

	kml "github.com/twpayne/go-kml"

	"github.com/jengzang/flightarcs-backend-go/internal/flightpath"
	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
)

// WriteKML writes a KML document with one folder per visible trip. KML
// viewers wrap longitudes themselves, so only the primary copy of each
// unit is written.
func WriteKML(w io.Writer, name string, geometries []*flightpath.TripGeometry, layers *LayerSet) error {
	var folders []kml.Element
	for _, g := range geometries {
		if layers != nil && !layers.Visible(g.TripID) {
			continue
		}
		folders = append(folders, tripFolder(g))
	}

	doc := kml.KML(
		kml.Document(append([]kml.Element{kml.Name(name)}, folders...)...),
	)
	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to write kml: %w", err)
	}
	return nil
}

func tripFolder(g *flightpath.TripGeometry) kml.Element {
	children := []kml.Element{kml.Name(fmt.Sprintf("Trip %d", g.TripID))}

	popup := ""
	if i := spatial.PrimaryIndex(g.Lines); i >= 0 {
		popup = g.Lines[i].Popup
	}
	for i, seg := range g.Segments {
		children = append(children, kml.Placemark(
			kml.Name(fmt.Sprintf("Segment %d", i+1)),
			kml.Description(popup),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(toKMLCoordinates(seg)...),
			),
		))
	}

	children = append(children,
		markerPlacemark(g.Origins),
		markerPlacemark(g.Destinations),
	)
	return kml.Folder(children...)
}

func markerPlacemark(units []spatial.DrawableUnit) kml.Element {
	i := spatial.PrimaryIndex(units)
	if i < 0 || len(units[i].Points) == 0 {
		return kml.Placemark()
	}
	u := units[i]
	return kml.Placemark(
		kml.Name(u.Popup),
		kml.Point(kml.Coordinates(toKMLCoordinates(u.Points)...)),
	)
}

func toKMLCoordinates(points []spatial.GeoPoint) []kml.Coordinate {
	coords := make([]kml.Coordinate, 0, len(points))
	for _, p := range points {
		coords = append(coords, kml.Coordinate{Lon: p.Lon, Lat: p.Lat})
	}
	return coords
}
