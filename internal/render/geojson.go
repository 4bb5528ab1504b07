// Package render turns built trip geometry into map formats: GeoJSON,
// encoded polylines and KML. It also owns the show/hide state of trip
// layers, which the geometry core never sees.
package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/flightarcs-backend-go/internal/flightpath"
	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
)

// Feature roles written to the "role" property.
const (
	RolePath        = "path"
	RoleOrigin      = "origin"
	RoleDestination = "destination"
)

// FeatureCollection renders every visible trip as one collection: a
// LineString per segment copy and a Point per marker copy. The bbox covers
// the primary copies only.
func FeatureCollection(geometries []*flightpath.TripGeometry, layers *LayerSet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var primary []spatial.GeoPoint
	for _, g := range geometries {
		if layers != nil && !layers.Visible(g.TripID) {
			continue
		}
		appendUnits(fc, g.TripID, RolePath, g.Lines)
		appendUnits(fc, g.TripID, RoleOrigin, g.Origins)
		appendUnits(fc, g.TripID, RoleDestination, g.Destinations)
		for _, seg := range g.Segments {
			primary = append(primary, seg...)
		}
	}

	if len(primary) > 0 {
		sw, ne := spatial.Bounds(primary)
		fc.BBox = geojson.NewBBox(orb.Bound{Min: toOrbPoint(sw), Max: toOrbPoint(ne)})
	}
	return fc
}

func appendUnits(fc *geojson.FeatureCollection, tripID int64, role string, units []spatial.DrawableUnit) {
	for _, u := range units {
		geom := unitGeometry(u)
		if geom == nil {
			continue
		}

		f := geojson.NewFeature(geom)
		f.Properties["trip_id"] = tripID
		f.Properties["role"] = role
		f.Properties["kind"] = string(u.Kind)
		f.Properties["offset"] = u.Offset
		f.Properties["interactive"] = u.Interactive
		if u.Popup != "" {
			f.Properties["popup"] = u.Popup
		}
		fc.Append(f)
	}
}

func unitGeometry(u spatial.DrawableUnit) orb.Geometry {
	if len(u.Points) == 0 {
		return nil
	}
	if u.Kind == spatial.KindPoint {
		return toOrbPoint(u.Points[0])
	}

	ls := make(orb.LineString, 0, len(u.Points))
	for _, p := range u.Points {
		ls = append(ls, toOrbPoint(p))
	}
	return ls
}

// orb points are (lon, lat).
func toOrbPoint(p spatial.GeoPoint) orb.Point {
	return orb.Point{p.Lon, p.Lat}
}
