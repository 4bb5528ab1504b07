package spatial

import (
	"errors"
	"fmt"
)

// WorldWidth is the longitude span of one copy of the world.
const WorldWidth = 360

// DefaultWorldCopies is the number of extra world copies drawn on each side
// of the primary one.
const DefaultWorldCopies = 2

// DefaultWorldOffsets is {-720, -360, 0, 360, 720}.
var DefaultWorldOffsets = SymmetricOffsets(DefaultWorldCopies)

// ErrInvalidOffsets is returned for an offset set that is empty, lacks 0,
// is not symmetric around 0 or holds a value that is not a whole number of
// world widths.
var ErrInvalidOffsets = errors.New("invalid world offsets")

// UnitKind tells a renderer how to draw a DrawableUnit.
type UnitKind string

const (
	KindLine  UnitKind = "line"
	KindPoint UnitKind = "point"
)

// DrawableUnit is one copy of a piece of geometry, already shifted by Offset
// degrees of longitude. Only the primary unit is interactive.
type DrawableUnit struct {
	Kind        UnitKind   `json:"kind" msgpack:"kind"`
	Points      []GeoPoint `json:"points" msgpack:"points"`
	Offset      int        `json:"offset" msgpack:"offset"`
	Primary     bool       `json:"primary" msgpack:"primary"`
	Interactive bool       `json:"interactive" msgpack:"interactive"`
	Popup       string     `json:"popup,omitempty" msgpack:"popup,omitempty"`
}

// SymmetricOffsets returns the offsets of copies world widths on each side
// of 0, in ascending order.
func SymmetricOffsets(copies int) []int {
	if copies < 0 {
		copies = 0
	}
	offsets := make([]int, 0, 2*copies+1)
	for i := -copies; i <= copies; i++ {
		offsets = append(offsets, i*WorldWidth)
	}
	return offsets
}

// ValidateOffsets checks that offsets is a usable world copy set.
func ValidateOffsets(offsets []int) error {
	if len(offsets) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidOffsets)
	}

	seen := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		if o%WorldWidth != 0 {
			return fmt.Errorf("%w: %d is not a multiple of %d", ErrInvalidOffsets, o, WorldWidth)
		}
		if seen[o] {
			return fmt.Errorf("%w: duplicate offset %d", ErrInvalidOffsets, o)
		}
		seen[o] = true
	}
	if !seen[0] {
		return fmt.Errorf("%w: 0 is missing", ErrInvalidOffsets)
	}
	for o := range seen {
		if !seen[-o] {
			return fmt.Errorf("%w: %d has no mirror %d", ErrInvalidOffsets, o, -o)
		}
	}
	return nil
}

// Replicate produces one line unit per (offset, segment) pair, offsets in
// the outer loop. The unit for the first segment at offset 0 is the single
// primary, interactive copy.
func Replicate(segments []Segment, offsets []int) ([]DrawableUnit, error) {
	if err := ValidateOffsets(offsets); err != nil {
		return nil, err
	}

	units := make([]DrawableUnit, 0, len(segments)*len(offsets))
	for _, offset := range offsets {
		for i, seg := range segments {
			primary := offset == 0 && i == 0
			units = append(units, DrawableUnit{
				Kind:        KindLine,
				Points:      shift(seg, offset),
				Offset:      offset,
				Primary:     primary,
				Interactive: primary,
			})
		}
	}
	return units, nil
}

// ReplicatePoint produces one marker unit per offset; the copy at offset 0
// is primary.
func ReplicatePoint(point GeoPoint, offsets []int) ([]DrawableUnit, error) {
	if err := ValidateOffsets(offsets); err != nil {
		return nil, err
	}

	units := make([]DrawableUnit, 0, len(offsets))
	for _, offset := range offsets {
		units = append(units, DrawableUnit{
			Kind:        KindPoint,
			Points:      []GeoPoint{point.Shifted(float64(offset))},
			Offset:      offset,
			Primary:     offset == 0,
			Interactive: offset == 0,
		})
	}
	return units, nil
}

// PrimaryIndex returns the index of the primary unit, or -1.
func PrimaryIndex(units []DrawableUnit) int {
	for i, u := range units {
		if u.Primary {
			return i
		}
	}
	return -1
}

func shift(seg Segment, offset int) []GeoPoint {
	out := make([]GeoPoint, len(seg))
	for i, p := range seg {
		out[i] = p.Shifted(float64(offset))
	}
	return out
}
