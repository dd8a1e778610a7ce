package world

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultBlockParams() BlockParams {
	return BlockParams{
		Lower:       r3.Vector{X: -5, Y: -5, Z: 0},
		Upper:       r3.Vector{X: 5, Y: 5, Z: 5},
		BlockWidth:  0.5,
		BlockHeight: 2,
		NumBlocks:   4,
		RobotRadius: 0.25,
		Margin:      0.2,
	}
}

// assertScenario checks the guarantees every RandomBlock world must hold
func assertScenario(t *testing.T, w *World, p BlockParams) {
	t.Helper()

	b := w.Bounds()
	blocks := w.Blocks()
	require.Len(t, blocks, p.NumBlocks)

	// rounding to two decimals may move a face by half a hundredth
	const tol = 0.005 + 1e-9
	for i, blk := range blocks {
		e := blk.Extents
		assert.GreaterOrEqual(t, e.XMin, b.XMin-tol, "block %d", i)
		assert.LessOrEqual(t, e.XMax, b.XMax+tol, "block %d", i)
		assert.GreaterOrEqual(t, e.YMin, b.YMin-tol, "block %d", i)
		assert.LessOrEqual(t, e.YMax, b.YMax+tol, "block %d", i)
		assert.GreaterOrEqual(t, e.ZMin, b.ZMin-tol, "block %d", i)
		assert.LessOrEqual(t, e.ZMax, b.ZMax+tol, "block %d", i)
	}
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			d := blocks[i].Extents.Center().Distance(blocks[j].Extents.Center())
			assert.GreaterOrEqual(t, d, p.MinSeparation(), "blocks %d and %d too close", i, j)
		}
	}

	start, ok := w.Start()
	require.True(t, ok)
	goal, ok := w.Goal()
	require.True(t, ok)

	_, ds := w.ClosestPoint(start)
	_, dg := w.ClosestPoint(goal)
	assert.Greater(t, ds, p.Clearance())
	assert.Greater(t, dg, p.Clearance())
	assert.Greater(t, start.Distance(goal), MinStartGoalSeparation)

	assert.Equal(t, []float64{p.Lower.X, p.Upper.X, p.Lower.Y, p.Upper.Y, p.Lower.Z, p.Upper.Z}, b.Slice())
	for _, pt := range []r3.Vector{start, goal} {
		assert.True(t, b.Contains(pt))
	}
}

func TestRandomBlock(t *testing.T) {
	p := defaultBlockParams()
	w, err := NewGenerator(1).Quiet().RandomBlock(p)
	require.NoError(t, err)
	assertScenario(t, w, p)

	for _, b := range w.Blocks() {
		size := b.Extents.Size()
		assert.InDelta(t, p.BlockWidth, size.X, 0.011)
		assert.InDelta(t, p.BlockHeight, size.Z, 0.011)
	}
}

func TestRandomBlock_Reproducible(t *testing.T) {
	p := defaultBlockParams()
	a, err := NewGenerator(99).Quiet().RandomBlock(p)
	require.NoError(t, err)
	b, err := NewGenerator(99).Quiet().RandomBlock(p)
	require.NoError(t, err)
	assert.Equal(t, a.Record(), b.Record())
}

func TestRandomBlock_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))

	for i := 0; i < 60; i++ {
		half := 4 + rng.Float64()*6
		p := BlockParams{
			Lower:       r3.Vector{X: -half, Y: -half, Z: 0},
			Upper:       r3.Vector{X: half, Y: half, Z: 2 + rng.Float64()*6},
			BlockWidth:  0.2 + rng.Float64()*0.8,
			BlockHeight: 0.5 + rng.Float64()*1.5,
			NumBlocks:   1 + rng.Intn(8),
			RobotRadius: rng.Float64() * 0.3,
			Margin:      rng.Float64() * 0.3,
		}
		require.NoError(t, p.Validate())

		g := NewGenerator(int64(i)).Quiet()
		g.MaxAttempts = 20000
		w, err := g.RandomBlock(p)
		if err != nil {
			// an exhausted budget is the only acceptable failure
			assert.ErrorIs(t, err, ErrGenerationFailed, "case %d", i)
			continue
		}
		assertScenario(t, w, p)
	}
}

func TestRandomBlock_BudgetExhausted(t *testing.T) {
	p := defaultBlockParams()
	p.Lower = r3.Vector{X: 0, Y: 0, Z: 0}
	p.Upper = r3.Vector{X: 2, Y: 2, Z: 2}
	p.NumBlocks = 5 // separation is ~2.3, so a second block can never fit

	g := NewGenerator(3).Quiet()
	g.MaxAttempts = 500
	_, err := g.RandomBlock(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "block", genErr.Stage)
	assert.Equal(t, 1, genErr.Index)
	assert.Equal(t, 500, genErr.Attempts)
}

func TestRandomBlock_GoalSeparationUnreachable(t *testing.T) {
	p := BlockParams{
		Lower:       r3.Vector{X: 0, Y: 0, Z: 0},
		Upper:       r3.Vector{X: 1.5, Y: 1.5, Z: 1.5},
		BlockWidth:  0.1,
		BlockHeight: 0.1,
		NumBlocks:   1,
	}
	// the whole box diagonal is below MinStartGoalSeparation
	g := NewGenerator(5).Quiet()
	g.MaxAttempts = 200
	_, err := g.RandomBlock(p)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "goal", genErr.Stage)
}

func TestRandomBlock_ManyBlocksSmallBudget(t *testing.T) {
	p := defaultBlockParams()
	p.NumBlocks = MaxBlocks
	g := NewGenerator(5).Quiet()
	g.MaxAttempts = 10

	_, err := g.RandomBlock(p)
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr), "got %v", err)
	assert.Equal(t, "block", genErr.Stage)
}

func TestRandomBlock_InvalidParams(t *testing.T) {
	cases := map[string]func(*BlockParams){
		"no blocks":       func(p *BlockParams) { p.NumBlocks = 0 },
		"too many blocks": func(p *BlockParams) { p.NumBlocks = 1 << 60 },
		"inverted bounds": func(p *BlockParams) { p.Lower.X, p.Upper.X = p.Upper.X, p.Lower.X },
		"block too wide":  func(p *BlockParams) { p.BlockWidth = 20 },
		"negative margin": func(p *BlockParams) { p.Margin = -1 },
		"clearance fills": func(p *BlockParams) { p.RobotRadius = 3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := defaultBlockParams()
			mutate(&p)
			_, err := NewGenerator(1).Quiet().RandomBlock(p)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}
