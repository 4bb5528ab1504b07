// Package flightpath turns an origin/destination pair into the geometry a
// world map needs to draw a flight: great-circle line segments cut at the
// antimeridian, plus origin and destination markers, each repeated across
// horizontally scrolled copies of the world.
package flightpath

import (
	"errors"
	"fmt"

	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
)

// Default interpolation steps. Paths crossing the antimeridian get more so
// the boundary crossing is estimated from a short step.
const (
	DefaultShortResolution    = 30
	DefaultCrossingResolution = 100
)

// ErrInvalidConfig is returned by NewBuilder for unusable settings.
var ErrInvalidConfig = errors.New("invalid flight path config")

// Trip is the input the builder needs from a stored trip.
type Trip struct {
	ID          int64
	Origin      spatial.GeoPoint
	Destination spatial.GeoPoint
	OriginCode  string
	DestCode    string
	DistanceKm  float64
	EmissionsKg float64
}

// Config holds builder settings.
type Config struct {
	ShortResolution    int
	CrossingResolution int
	// Offsets are the world copies to draw, in degrees of longitude.
	Offsets []int
	// BoundaryEpsilon is how far inside ±180 crossing points are placed.
	BoundaryEpsilon float64
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		ShortResolution:    DefaultShortResolution,
		CrossingResolution: DefaultCrossingResolution,
		Offsets:            spatial.DefaultWorldOffsets,
		BoundaryEpsilon:    spatial.DefaultBoundaryEpsilon,
	}
}

// TripGeometry is everything a renderer needs for one trip. It is never
// modified after Build returns.
type TripGeometry struct {
	TripID              int64                  `json:"trip_id" msgpack:"trip_id"`
	Resolution          int                    `json:"resolution" msgpack:"resolution"`
	CrossesAntimeridian bool                   `json:"crosses_antimeridian" msgpack:"crosses_antimeridian"`
	InitialBearing      float64                `json:"initial_bearing" msgpack:"initial_bearing"`
	Midpoint            spatial.GeoPoint       `json:"midpoint" msgpack:"midpoint"`
	Segments            []spatial.Segment      `json:"segments" msgpack:"segments"`
	Lines               []spatial.DrawableUnit `json:"lines" msgpack:"lines"`
	Origins             []spatial.DrawableUnit `json:"origins" msgpack:"origins"`
	Destinations        []spatial.DrawableUnit `json:"destinations" msgpack:"destinations"`
}

// Builder computes TripGeometry values. It holds no mutable state and is
// safe for concurrent use.
type Builder struct {
	cfg      Config
	splitter *spatial.Splitter
}

// NewBuilder validates cfg and returns a Builder.
func NewBuilder(cfg Config) (*Builder, error) {
	if cfg.ShortResolution < 1 {
		return nil, fmt.Errorf("%w: short resolution %d", ErrInvalidConfig, cfg.ShortResolution)
	}
	if cfg.CrossingResolution < 1 {
		return nil, fmt.Errorf("%w: crossing resolution %d", ErrInvalidConfig, cfg.CrossingResolution)
	}
	if err := spatial.ValidateOffsets(cfg.Offsets); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.BoundaryEpsilon < 0 || cfg.BoundaryEpsilon >= 1 {
		return nil, fmt.Errorf("%w: boundary epsilon %v outside [0, 1)", ErrInvalidConfig, cfg.BoundaryEpsilon)
	}

	cfg.Offsets = append([]int(nil), cfg.Offsets...)
	return &Builder{
		cfg:      cfg,
		splitter: &spatial.Splitter{Epsilon: cfg.BoundaryEpsilon},
	}, nil
}

// Config returns a copy of the builder settings.
func (b *Builder) Config() Config {
	cfg := b.cfg
	cfg.Offsets = append([]int(nil), b.cfg.Offsets...)
	return cfg
}

// Build computes the drawable geometry for trip. Invalid coordinates are
// reported as spatial.ErrInvalidCoordinate.
func (b *Builder) Build(trip Trip) (*TripGeometry, error) {
	if err := trip.Origin.Validate(); err != nil {
		return nil, fmt.Errorf("trip %d origin: %w", trip.ID, err)
	}
	if err := trip.Destination.Validate(); err != nil {
		return nil, fmt.Errorf("trip %d destination: %w", trip.ID, err)
	}

	crosses := spatial.CrossesAntimeridian(trip.Origin, trip.Destination)
	resolution := b.cfg.ShortResolution
	if crosses {
		resolution = b.cfg.CrossingResolution
	}

	points, err := spatial.Interpolate(trip.Origin, trip.Destination, resolution)
	if err != nil {
		return nil, fmt.Errorf("trip %d path: %w", trip.ID, err)
	}
	segments := b.splitter.Split(points)

	lines, err := spatial.Replicate(segments, b.cfg.Offsets)
	if err != nil {
		return nil, fmt.Errorf("trip %d lines: %w", trip.ID, err)
	}
	origins, err := spatial.ReplicatePoint(trip.Origin, b.cfg.Offsets)
	if err != nil {
		return nil, fmt.Errorf("trip %d origin marker: %w", trip.ID, err)
	}
	destinations, err := spatial.ReplicatePoint(trip.Destination, b.cfg.Offsets)
	if err != nil {
		return nil, fmt.Errorf("trip %d destination marker: %w", trip.ID, err)
	}

	attachPopup(lines, PathPopup(trip))
	attachPopup(origins, OriginPopup(trip))
	attachPopup(destinations, DestinationPopup(trip))

	return &TripGeometry{
		TripID:              trip.ID,
		Resolution:          resolution,
		CrossesAntimeridian: crosses,
		InitialBearing:      spatial.Bearing(trip.Origin, trip.Destination),
		Midpoint:            spatial.Midpoint(trip.Origin, trip.Destination),
		Segments:            segments,
		Lines:               lines,
		Origins:             origins,
		Destinations:        destinations,
	}, nil
}

// BuildAll builds every trip. A trip that fails is left out of the result
// and its error is returned in failures keyed by trip ID; the others are
// still built.
func (b *Builder) BuildAll(trips []Trip) (geometries []*TripGeometry, failures map[int64]error) {
	for _, trip := range trips {
		g, err := b.Build(trip)
		if err != nil {
			if failures == nil {
				failures = make(map[int64]error)
			}
			failures[trip.ID] = err
			continue
		}
		geometries = append(geometries, g)
	}
	return geometries, failures
}

func attachPopup(units []spatial.DrawableUnit, popup string) {
	if i := spatial.PrimaryIndex(units); i >= 0 {
		units[i].Popup = popup
	}
}
