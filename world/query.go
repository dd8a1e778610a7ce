package world

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// CollisionResolution is the arc-length spacing PathCollisions samples a path at.
// Obstacle features thinner than this can slip between two samples.
const CollisionResolution = 0.001

// MaxSamples caps the number of samples InterpolatePath produces for one path
const MaxSamples = 1 << 24

// noObstacle is the projected point reported when the world has no blocks
var noObstacle = r3.Vector{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}

// ClosestPoint returns the nearest point on any block and its distance.
// With no blocks the distance is +Inf and the point is all NaN.
func (w *World) ClosestPoint(p r3.Vector) (r3.Vector, float64) {
	closest := noObstacle
	best := math.Inf(1)
	for _, b := range w.blocks {
		q := b.Extents.Clamp(p)
		d := distance(p, q)
		// strict comparison keeps the first block on ties
		if d < best {
			best = d
			closest = q
		}
	}
	return closest, best
}

// ClosestPoints runs ClosestPoint for every query point independently
func (w *World) ClosestPoints(points []r3.Vector) ([]r3.Vector, []float64) {
	closest := make([]r3.Vector, len(points))
	distances := make([]float64, len(points))
	for i, p := range points {
		closest[i], distances[i] = w.ClosestPoint(p)
	}
	return closest, distances
}

// PathLength is the total length of a polyline
func PathLength(path []r3.Vector) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i].Distance(path[i-1])
	}
	return total
}

// InterpolatePath samples a polyline at arc-length steps of resolution over [0, length).
// The end point is only included when it lands exactly on a step. A path of zero
// length yields its first waypoint alone.
func InterpolatePath(path []r3.Vector, resolution float64) ([]r3.Vector, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInvalidPath, len(path))
	}
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, fmt.Errorf("%w: resolution must be positive, got %v", ErrInvalidPath, resolution)
	}
	for i, p := range path {
		if !finite(p) {
			return nil, fmt.Errorf("%w: waypoint %d is not finite", ErrInvalidPath, i)
		}
	}

	cumdist := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		cumdist[i] = cumdist[i-1] + path[i].Distance(path[i-1])
	}
	total := cumdist[len(cumdist)-1]
	if total == 0 {
		return []r3.Vector{path[0]}, nil
	}

	count := math.Ceil(total / resolution)
	if count > MaxSamples {
		return nil, fmt.Errorf("%w: %.0f samples at resolution %v exceed %d", ErrInvalidPath, count, resolution, MaxSamples)
	}
	n := int(count)
	samples := make([]r3.Vector, 0, n)
	seg := 0
	for i := 0; i < n; i++ {
		t := float64(i) * resolution
		if t >= total {
			break
		}
		// advance to the segment containing t; zero-length segments are skipped
		for seg < len(path)-2 && (cumdist[seg+1] <= t || cumdist[seg+1] == cumdist[seg]) {
			seg++
		}
		a, b := path[seg], path[seg+1]
		span := cumdist[seg+1] - cumdist[seg]
		frac := 0.0
		if span > 0 {
			frac = (t - cumdist[seg]) / span
		}
		samples = append(samples, a.Add(b.Sub(a).Mul(frac)))
	}
	return samples, nil
}

// PathCollisions densifies the path at CollisionResolution and returns the samples
// closer than margin to any block. Samples inside or touching a block always collide,
// even with a zero margin.
func (w *World) PathCollisions(path []r3.Vector, margin float64) ([]r3.Vector, error) {
	return w.PathCollisionsAt(path, margin, CollisionResolution)
}

// PathCollisionsAt is PathCollisions with an explicit sampling resolution
func (w *World) PathCollisionsAt(path []r3.Vector, margin, resolution float64) ([]r3.Vector, error) {
	samples, err := InterpolatePath(path, resolution)
	if err != nil {
		return nil, err
	}

	_, distances := w.ClosestPoints(samples)
	collisions := make([]r3.Vector, 0)
	for i, d := range distances {
		if d < margin || d == 0 {
			collisions = append(collisions, samples[i])
		}
	}
	return collisions, nil
}
