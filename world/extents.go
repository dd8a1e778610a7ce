package world

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Extents is an axis-aligned box (xmin, xmax, ymin, ymax, zmin, zmax)
type Extents struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// NewExtents builds a box and checks min <= max on every axis
func NewExtents(xmin, xmax, ymin, ymax, zmin, zmax float64) (Extents, error) {
	e := Extents{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax, ZMin: zmin, ZMax: zmax}
	if err := e.Validate(); err != nil {
		return Extents{}, err
	}
	return e, nil
}

// ExtentsFromSlice reads the six-number [xmin, xmax, ymin, ymax, zmin, zmax] form
func ExtentsFromSlice(v []float64) (Extents, error) {
	if len(v) != 6 {
		return Extents{}, fmt.Errorf("%w: expected 6 values, got %d", ErrInvalidExtents, len(v))
	}
	return NewExtents(v[0], v[1], v[2], v[3], v[4], v[5])
}

// ExtentsFromCorners builds the box spanned by a min and a max corner
func ExtentsFromCorners(lower, upper r3.Vector) (Extents, error) {
	return NewExtents(lower.X, upper.X, lower.Y, upper.Y, lower.Z, upper.Z)
}

// Validate reports ErrInvalidExtents for non-finite values or inverted intervals
func (e Extents) Validate() error {
	for _, v := range e.Slice() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %v", ErrInvalidExtents, e.Slice())
		}
	}
	if e.XMin > e.XMax || e.YMin > e.YMax || e.ZMin > e.ZMax {
		return fmt.Errorf("%w: min exceeds max in %v", ErrInvalidExtents, e.Slice())
	}
	return nil
}

// Slice returns the six-number form
func (e Extents) Slice() []float64 {
	return []float64{e.XMin, e.XMax, e.YMin, e.YMax, e.ZMin, e.ZMax}
}

func (e Extents) Min() r3.Vector {
	return r3.Vector{X: e.XMin, Y: e.YMin, Z: e.ZMin}
}

func (e Extents) Max() r3.Vector {
	return r3.Vector{X: e.XMax, Y: e.YMax, Z: e.ZMax}
}

// Center returns the midpoint of the box
func (e Extents) Center() r3.Vector {
	return r3.Vector{
		X: (e.XMin + e.XMax) / 2,
		Y: (e.YMin + e.YMax) / 2,
		Z: (e.ZMin + e.ZMax) / 2,
	}
}

// Size returns the edge lengths along x, y and z
func (e Extents) Size() r3.Vector {
	return e.Max().Sub(e.Min())
}

// Contains checks if a point is inside or on the box
func (e Extents) Contains(p r3.Vector) bool {
	return p.X >= e.XMin && p.X <= e.XMax &&
		p.Y >= e.YMin && p.Y <= e.YMax &&
		p.Z >= e.ZMin && p.Z <= e.ZMax
}

// Overlaps checks if the interiors of two boxes intersect; touching faces do not count
func (e Extents) Overlaps(o Extents) bool {
	return e.XMin < o.XMax && o.XMin < e.XMax &&
		e.YMin < o.YMax && o.YMin < e.YMax &&
		e.ZMin < o.ZMax && o.ZMin < e.ZMax
}

// Clamp projects p onto the box. Coordinates already inside an interval are unchanged,
// so a point inside the box projects onto itself.
func (e Extents) Clamp(p r3.Vector) r3.Vector {
	return r3.Vector{
		X: clamp(p.X, e.XMin, e.XMax),
		Y: clamp(p.Y, e.YMin, e.YMax),
		Z: clamp(p.Z, e.ZMin, e.ZMax),
	}
}

// Distance is the Euclidean distance from p to the box, zero inside
func (e Extents) Distance(p r3.Vector) float64 {
	return distance(p, e.Clamp(p))
}

// distance is the Euclidean distance without overflowing the squared terms
func distance(a, b r3.Vector) float64 {
	d := a.Sub(b)
	return math.Hypot(math.Hypot(d.X, d.Y), d.Z)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round2 rounds to two decimal places, ties to even
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
