package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jengzang/flightarcs-backend-go/internal/flightpath"
	"github.com/jengzang/flightarcs-backend-go/internal/metrics"
	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
)

// geometryKey includes the endpoints so an edited trip never reuses a
// stale entry.
type geometryKey struct {
	TripID      int64
	Origin      spatial.GeoPoint
	Destination spatial.GeoPoint
}

// GeometryCache memoizes built trip geometry. Entries are immutable.
type GeometryCache struct {
	lru *expirable.LRU[geometryKey, *flightpath.TripGeometry]
}

// NewGeometryCache creates a cache holding up to size entries for ttl.
// A zero ttl keeps entries until they are evicted by size.
func NewGeometryCache(size int, ttl time.Duration) *GeometryCache {
	return &GeometryCache{
		lru: expirable.NewLRU[geometryKey, *flightpath.TripGeometry](size, nil, ttl),
	}
}

func keyFor(trip flightpath.Trip) geometryKey {
	return geometryKey{TripID: trip.ID, Origin: trip.Origin, Destination: trip.Destination}
}

// Get returns a cached geometry for trip.
func (c *GeometryCache) Get(trip flightpath.Trip) (*flightpath.TripGeometry, bool) {
	g, ok := c.lru.Get(keyFor(trip))
	if ok {
		metrics.GeometryCacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.GeometryCacheLookups.WithLabelValues("miss").Inc()
	}
	return g, ok
}

// Add stores a geometry for trip.
func (c *GeometryCache) Add(trip flightpath.Trip, g *flightpath.TripGeometry) {
	c.lru.Add(keyFor(trip), g)
}

// Remove drops the entry for trip.
func (c *GeometryCache) Remove(trip flightpath.Trip) {
	c.lru.Remove(keyFor(trip))
}

// Len returns the number of cached entries.
func (c *GeometryCache) Len() int {
	return c.lru.Len()
}
