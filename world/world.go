// Package world models a bounded 3D environment of axis-aligned obstacle blocks.
//
// A World is built once, by one of the generators or from a Record, and is
// read-only afterwards, so concurrent queries against it need no locking.
package world

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// World holds the outer bounds, the obstacle blocks and an optional start and goal
type World struct {
	bounds Extents
	blocks []Block
	start  *r3.Vector
	goal   *r3.Vector
}

// Option configures optional parts of a World
type Option func(*World) error

// WithStart sets the start point of a planning scenario
func WithStart(p r3.Vector) Option {
	return func(w *World) error {
		if !finite(p) {
			return fmt.Errorf("%w: non-finite start %v", ErrInvalidRecord, p)
		}
		w.start = &p
		return nil
	}
}

// WithGoal sets the goal point of a planning scenario
func WithGoal(p r3.Vector) Option {
	return func(w *World) error {
		if !finite(p) {
			return fmt.Errorf("%w: non-finite goal %v", ErrInvalidRecord, p)
		}
		w.goal = &p
		return nil
	}
}

// New creates a World. Blocks are validated and copied; their order is kept.
func New(bounds Extents, blocks []Block, opts ...Option) (*World, error) {
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("bounds: %w", err)
	}

	w := &World{
		bounds: bounds,
		blocks: make([]Block, 0, len(blocks)),
	}
	for i, b := range blocks {
		nb, err := NewBlock(b.Extents, b.Color)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		w.blocks = append(w.blocks, nb)
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *World) Bounds() Extents {
	return w.bounds
}

// Blocks returns a copy of the obstacle list in insertion order
func (w *World) Blocks() []Block {
	out := make([]Block, len(w.blocks))
	for i, b := range w.blocks {
		out[i] = b.clone()
	}
	return out
}

func (w *World) NumBlocks() int {
	return len(w.blocks)
}

// Start returns the start point and whether the world has one
func (w *World) Start() (r3.Vector, bool) {
	if w.start == nil {
		return r3.Vector{}, false
	}
	return *w.start, true
}

// Goal returns the goal point and whether the world has one
func (w *World) Goal() (r3.Vector, bool) {
	if w.goal == nil {
		return r3.Vector{}, false
	}
	return *w.goal, true
}

func finite(p r3.Vector) bool {
	for _, v := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
