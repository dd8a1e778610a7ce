package config

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/golang/geo/r3"

	"motion-world/world"
)

// Generator kinds
const (
	KindEmpty        = "empty"
	KindGridForest   = "grid_forest"
	KindRandomForest = "random_forest"
	KindFixedBlock   = "fixed_block"
	KindRandomBlock  = "random_block"
)

var ErrUnknownKind = errors.New("unknown generator kind")

// GeneratorConfig selects a generator and its parameters. Fields not used by the
// chosen kind are ignored.
type GeneratorConfig struct {
	Kind        string `yaml:"kind" json:"kind"`
	Seed        int64  `yaml:"seed" json:"seed"`
	MaxAttempts int    `yaml:"max_attempts" json:"maxAttempts,omitempty"`

	// empty
	Extents []float64 `yaml:"extents" json:"extents,omitempty"`

	// grid_forest
	Rows    int     `yaml:"rows" json:"rows,omitempty"`
	Cols    int     `yaml:"cols" json:"cols,omitempty"`
	Spacing float64 `yaml:"spacing" json:"spacing,omitempty"`

	// grid_forest and random_forest
	Width  float64 `yaml:"width" json:"width,omitempty"`
	Height float64 `yaml:"height" json:"height,omitempty"`

	// random_forest
	WorldDims []float64 `yaml:"world_dims" json:"worldDims,omitempty"`
	NumTrees  int       `yaml:"num_trees" json:"numTrees,omitempty"`

	// fixed_block and random_block
	Lower       []float64 `yaml:"lower" json:"lower,omitempty"`
	Upper       []float64 `yaml:"upper" json:"upper,omitempty"`
	BlockWidth  float64   `yaml:"block_width" json:"blockWidth,omitempty"`
	BlockHeight float64   `yaml:"block_height" json:"blockHeight,omitempty"`
	NumBlocks   int       `yaml:"num_blocks" json:"numBlocks,omitempty"`
	RobotRadius float64   `yaml:"robot_radius" json:"robotRadius,omitempty"`
	Margin      float64   `yaml:"margin" json:"margin,omitempty"`
}

// DefaultGenerator is a small random_block scenario
func DefaultGenerator() GeneratorConfig {
	return GeneratorConfig{
		Kind:        KindRandomBlock,
		Seed:        1,
		MaxAttempts: world.DefaultMaxAttempts,
		Lower:       []float64{-5, -5, 0},
		Upper:       []float64{5, 5, 4},
		BlockWidth:  0.5,
		BlockHeight: 2,
		NumBlocks:   6,
		RobotRadius: 0.25,
		Margin:      0.2,
	}
}

// Clone returns a copy that shares no slices with c
func (c GeneratorConfig) Clone() GeneratorConfig {
	c.Extents = append([]float64(nil), c.Extents...)
	c.WorldDims = append([]float64(nil), c.WorldDims...)
	c.Lower = append([]float64(nil), c.Lower...)
	c.Upper = append([]float64(nil), c.Upper...)
	return c
}

// BlockParams converts the block fields
func (c GeneratorConfig) BlockParams() (world.BlockParams, error) {
	lower, err := vector("lower", c.Lower)
	if err != nil {
		return world.BlockParams{}, err
	}
	upper, err := vector("upper", c.Upper)
	if err != nil {
		return world.BlockParams{}, err
	}
	return world.BlockParams{
		Lower:       lower,
		Upper:       upper,
		BlockWidth:  c.BlockWidth,
		BlockHeight: c.BlockHeight,
		NumBlocks:   c.NumBlocks,
		RobotRadius: c.RobotRadius,
		Margin:      c.Margin,
	}, nil
}

// Generate builds the world described by the configuration. Progress goes to logger,
// which may be nil to stay silent.
func (c GeneratorConfig) Generate(logger *log.Logger) (*world.World, error) {
	switch c.Kind {
	case KindEmpty:
		ext, err := world.ExtentsFromSlice(c.Extents)
		if err != nil {
			return nil, err
		}
		return world.Empty(ext)

	case KindGridForest:
		return world.GridForest(c.Rows, c.Cols, c.Width, c.Height, c.Spacing)

	case KindRandomForest:
		dims, err := vector("world_dims", c.WorldDims)
		if err != nil {
			return nil, err
		}
		return c.generator(logger).RandomForest(dims, c.Width, c.Height, c.NumTrees)

	case KindFixedBlock:
		p, err := c.BlockParams()
		if err != nil {
			return nil, err
		}
		return world.FixedBlock(p)

	case KindRandomBlock:
		p, err := c.BlockParams()
		if err != nil {
			return nil, err
		}
		return c.generator(logger).RandomBlock(p)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
}

func (c GeneratorConfig) generator(logger *log.Logger) *world.Generator {
	g := world.NewGenerator(c.Seed)
	if c.MaxAttempts > 0 {
		g.MaxAttempts = c.MaxAttempts
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	g.Logger = logger
	return g
}

func vector(name string, v []float64) (r3.Vector, error) {
	if len(v) != 3 {
		return r3.Vector{}, fmt.Errorf("%w: %s needs 3 values, got %d", world.ErrInvalidParams, name, len(v))
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}
