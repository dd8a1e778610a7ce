package world

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Record is the plain serialization shape of a World
type Record struct {
	Bounds BoundsRecord  `json:"bounds" msgpack:"bounds" yaml:"bounds"`
	Blocks []BlockRecord `json:"blocks" msgpack:"blocks" yaml:"blocks"`
	Start  []float64     `json:"start,omitempty" msgpack:"start,omitempty" yaml:"start,omitempty"`
	Goal   []float64     `json:"goal,omitempty" msgpack:"goal,omitempty" yaml:"goal,omitempty"`
}

type BoundsRecord struct {
	Extents []float64 `json:"extents" msgpack:"extents" yaml:"extents"`
}

type BlockRecord struct {
	Extents []float64 `json:"extents" msgpack:"extents" yaml:"extents"`
	Color   []float64 `json:"color,omitempty" msgpack:"color,omitempty" yaml:"color,omitempty"`
}

// Record converts the World into its plain form
func (w *World) Record() Record {
	rec := Record{
		Bounds: BoundsRecord{Extents: w.bounds.Slice()},
		Blocks: make([]BlockRecord, 0, len(w.blocks)),
	}
	for _, b := range w.blocks {
		br := BlockRecord{Extents: b.Extents.Slice()}
		if b.Color != nil {
			br.Color = []float64{b.Color[0], b.Color[1], b.Color[2]}
		}
		rec.Blocks = append(rec.Blocks, br)
	}
	if w.start != nil {
		rec.Start = []float64{w.start.X, w.start.Y, w.start.Z}
	}
	if w.goal != nil {
		rec.Goal = []float64{w.goal.X, w.goal.Y, w.goal.Z}
	}
	return rec
}

// FromRecord validates a plain record and builds the World it describes
func FromRecord(rec Record) (*World, error) {
	bounds, err := ExtentsFromSlice(rec.Bounds.Extents)
	if err != nil {
		return nil, fmt.Errorf("bounds: %w", err)
	}

	blocks := make([]Block, 0, len(rec.Blocks))
	for i, br := range rec.Blocks {
		ext, err := ExtentsFromSlice(br.Extents)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		var color *Color
		if br.Color != nil {
			if len(br.Color) != 3 {
				return nil, fmt.Errorf("block %d: %w: color needs 3 values, got %d", i, ErrInvalidRecord, len(br.Color))
			}
			color = &Color{br.Color[0], br.Color[1], br.Color[2]}
		}
		blocks = append(blocks, Block{Extents: ext, Color: color})
	}

	var opts []Option
	if rec.Start != nil {
		p, err := pointFromSlice("start", rec.Start)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithStart(p))
	}
	if rec.Goal != nil {
		p, err := pointFromSlice("goal", rec.Goal)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithGoal(p))
	}

	return New(bounds, blocks, opts...)
}

func pointFromSlice(name string, v []float64) (r3.Vector, error) {
	if len(v) != 3 {
		return r3.Vector{}, fmt.Errorf("%w: %s needs 3 values, got %d", ErrInvalidRecord, name, len(v))
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}
