package world

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	ext := Extents{XMin: -1, XMax: 1, YMin: -2, YMax: 2, ZMin: 0, ZMax: 3}
	w, err := Empty(ext)
	require.NoError(t, err)

	assert.Equal(t, ext, w.Bounds())
	assert.Zero(t, w.NumBlocks())
	_, ok := w.Start()
	assert.False(t, ok)

	_, err = Empty(Extents{XMin: 1})
	assert.ErrorIs(t, err, ErrInvalidExtents)
}

func TestGridForest(t *testing.T) {
	w, err := GridForest(2, 2, 0.5, 3.0, 2.0)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 2.5, 0, 2.5, 0, 3.0}, w.Bounds().Slice())
	blocks := w.Blocks()
	require.Len(t, blocks, 4)

	// columns (x) outer, rows (y) inner
	assert.Equal(t, Extents{XMin: 0, XMax: 0.5, YMin: 0, YMax: 0.5, ZMax: 3}, blocks[0].Extents)
	assert.Equal(t, Extents{XMin: 0, XMax: 0.5, YMin: 2, YMax: 2.5, ZMax: 3}, blocks[1].Extents)
	assert.Equal(t, Extents{XMin: 2, XMax: 2.5, YMin: 0, YMax: 0.5, ZMax: 3}, blocks[2].Extents)
	for _, b := range blocks {
		require.NotNil(t, b.Color)
		assert.Equal(t, Red, *b.Color)
	}
}

func TestGridForest_Rectangular(t *testing.T) {
	w, err := GridForest(4, 3, 0.5, 3.0, 2.0)
	require.NoError(t, err)

	assert.Equal(t, 12, w.NumBlocks())
	assert.Equal(t, []float64{0, 4.5, 0, 6.5, 0, 3.0}, w.Bounds().Slice())
	assert.Empty(t, w.OverlappingBlocks())
}

func TestGridForest_InvalidParams(t *testing.T) {
	_, err := GridForest(0, 2, 0.5, 3, 2)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = GridForest(2, 2, -0.5, 3, 2)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = GridForest(1<<32, 1<<32, 0.5, 3, 2)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = GridForest(MaxBlocks, 2, 0.5, 3, 2)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestRandomForest_TooManyTrees(t *testing.T) {
	_, err := NewGenerator(1).Quiet().RandomForest(r3.Vector{X: 10, Y: 10, Z: 5}, 0.5, 3, MaxBlocks+1)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestRandomForest(t *testing.T) {
	dims := r3.Vector{X: 10, Y: 8, Z: 5}
	w, err := NewGenerator(42).Quiet().RandomForest(dims, 0.5, 3.0, 20)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 10, 0, 8, 0, 5}, w.Bounds().Slice())
	require.Equal(t, 20, w.NumBlocks())
	for _, b := range w.Blocks() {
		e := b.Extents
		assert.True(t, e.XMin >= 0 && e.XMin <= 10)
		assert.True(t, e.YMin >= 0 && e.YMin <= 8)
		assert.Equal(t, 0.0, e.ZMin)
		assert.Equal(t, 3.0, e.ZMax)
		assert.InDelta(t, 0.5, e.XMax-e.XMin, 0.011)
		assert.Equal(t, e.XMin, round2(e.XMin), "extents are rounded to two decimals")
	}
}

func TestRandomForest_SameSeedSameWorld(t *testing.T) {
	dims := r3.Vector{X: 10, Y: 10, Z: 4}
	a, err := NewGenerator(7).Quiet().RandomForest(dims, 1, 2, 15)
	require.NoError(t, err)
	b, err := NewGenerator(7).Quiet().RandomForest(dims, 1, 2, 15)
	require.NoError(t, err)

	assert.Equal(t, a.Record(), b.Record())
}

func TestFixedBlock(t *testing.T) {
	w, err := FixedBlock(BlockParams{
		Lower:       r3.Vector{X: -2, Y: -2, Z: 0},
		Upper:       r3.Vector{X: 3, Y: 2, Z: 2},
		BlockWidth:  99,
		NumBlocks:   42,
		RobotRadius: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{-2, 3, -2, 2, 0, 2}, w.Bounds().Slice())
	require.Equal(t, 4, w.NumBlocks())
	assert.Equal(t, []float64{1.5, 2, -1, -0.5, 0, 2}, w.Blocks()[3].Extents.Slice())

	start, ok := w.Start()
	require.True(t, ok)
	assert.Equal(t, r3.Vector{X: -1.5, Y: -1.5, Z: 0.5}, start)
	goal, ok := w.Goal()
	require.True(t, ok)
	assert.Equal(t, r3.Vector{X: 2, Y: 0, Z: 1.5}, goal)
}
