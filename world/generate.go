package world

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/golang/geo/r3"
)

// DefaultMaxAttempts bounds every rejection-sampling loop of a Generator
const DefaultMaxAttempts = 100000

// MaxBlocks is the largest number of blocks a generator will place
const MaxBlocks = 1 << 16

// Generator builds randomized worlds from its own seeded random source.
// It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand

	// MaxAttempts caps the candidates drawn for each block, start and goal placement
	MaxAttempts int
	Logger      *log.Logger
}

// NewGenerator returns a Generator whose output is reproducible for a given seed
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:         rand.New(rand.NewSource(seed)),
		MaxAttempts: DefaultMaxAttempts,
		Logger:      log.Default(),
	}
}

// Quiet discards the generator's progress logging
func (g *Generator) Quiet() *Generator {
	g.Logger = log.New(io.Discard, "", 0)
	return g
}

func (g *Generator) logf(format string, args ...interface{}) {
	if g.Logger != nil {
		g.Logger.Printf(format, args...)
	}
}

func (g *Generator) maxAttempts() int {
	if g.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return g.MaxAttempts
}

// uniform draws from [lo, hi)
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// Empty returns bounded space without obstacles
func Empty(extents Extents) (*World, error) {
	return New(extents, nil)
}

// GridForest places rows×cols square vertical blocks on a regular lattice. Rows stack
// along y and columns along x; the bounds fit the lattice tightly.
func GridForest(rows, cols int, width, height, spacing float64) (*World, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: grid needs at least one row and column, got %dx%d", ErrInvalidParams, rows, cols)
	}
	if rows > MaxBlocks/cols {
		return nil, fmt.Errorf("%w: %dx%d grid exceeds %d blocks", ErrInvalidParams, rows, cols, MaxBlocks)
	}
	if !(width > 0) || !(height > 0) || !(spacing >= 0) {
		return nil, fmt.Errorf("%w: width %v, height %v, spacing %v", ErrInvalidParams, width, height, spacing)
	}

	xMax := float64(cols-1)*spacing + width
	yMax := float64(rows-1)*spacing + width
	bounds := Extents{XMax: xMax, YMax: yMax, ZMax: height}

	blocks := make([]Block, 0, rows*cols)
	for c := 0; c < cols; c++ {
		x := spacing * float64(c)
		for r := 0; r < rows; r++ {
			y := spacing * float64(r)
			blocks = append(blocks, redBlock(Extents{
				XMin: x, XMax: x + width,
				YMin: y, YMax: y + width,
				ZMin: 0, ZMax: height,
			}))
		}
	}
	return New(bounds, blocks)
}

// RandomForest scatters numTrees blocks with uniformly random (x, y) min corners inside
// [0, dims]. Trees may overlap. Extents are rounded to two decimals.
func (g *Generator) RandomForest(dims r3.Vector, treeWidth, treeHeight float64, numTrees int) (*World, error) {
	if !(dims.X > 0) || !(dims.Y > 0) || !(dims.Z > 0) {
		return nil, fmt.Errorf("%w: world dimensions must be positive, got %v", ErrInvalidParams, dims)
	}
	if !(treeWidth > 0) || !(treeHeight > 0) || numTrees < 0 || numTrees > MaxBlocks {
		return nil, fmt.Errorf("%w: tree width %v, height %v, count %d", ErrInvalidParams, treeWidth, treeHeight, numTrees)
	}

	bounds := Extents{XMax: dims.X, YMax: dims.Y, ZMax: dims.Z}

	// all x corners are drawn before the y corners
	xs := make([]float64, numTrees)
	for i := range xs {
		xs[i] = g.uniform(0, dims.X)
	}
	ys := make([]float64, numTrees)
	for i := range ys {
		ys[i] = g.uniform(0, dims.Y)
	}

	w, h := treeWidth, treeHeight
	blocks := make([]Block, 0, numTrees)
	for i := 0; i < numTrees; i++ {
		blocks = append(blocks, redBlock(Extents{
			XMin: round2(xs[i]), XMax: round2(xs[i] + w),
			YMin: round2(ys[i]), YMax: round2(ys[i] + w),
			ZMin: 0, ZMax: round2(h),
		}))
	}

	world, err := New(bounds, blocks)
	if err != nil {
		return nil, err
	}
	g.logf("🌲 Random forest: %d trees in %.2f x %.2f x %.2f", numTrees, dims.X, dims.Y, dims.Z)
	return world, nil
}

// fixedLayout is the deterministic four-block regression scenario
var fixedLayout = []Extents{
	{XMin: -1.5, XMax: -1, YMin: -1, YMax: -0.5, ZMin: 0, ZMax: 2},
	{XMin: 0, XMax: 0.5, YMin: -1, YMax: -0.5, ZMin: 0, ZMax: 2},
	{XMin: 1.5, XMax: 2, YMin: 1, YMax: 1.5, ZMin: 0, ZMax: 2},
	{XMin: 1.5, XMax: 2, YMin: -1, YMax: -0.5, ZMin: 0, ZMax: 2},
}

var (
	fixedStart = r3.Vector{X: -1.5, Y: -1.5, Z: 0.5}
	fixedGoal  = r3.Vector{X: 2, Y: 0, Z: 1.5}
)

// FixedBlock returns the hard-coded four-block layout with a fixed start and goal.
// Only the bounds of params are used.
func FixedBlock(params BlockParams) (*World, error) {
	bounds, err := ExtentsFromCorners(params.Lower, params.Upper)
	if err != nil {
		return nil, fmt.Errorf("bounds: %w", err)
	}

	blocks := make([]Block, 0, len(fixedLayout))
	for _, e := range fixedLayout {
		blocks = append(blocks, redBlock(e))
	}
	return New(bounds, blocks, WithStart(fixedStart), WithGoal(fixedGoal))
}
