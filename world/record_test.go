package world

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_RoundTrip(t *testing.T) {
	w, err := FixedBlock(BlockParams{Lower: r3.Vector{X: -2, Y: -2}, Upper: r3.Vector{X: 3, Y: 2, Z: 2}})
	require.NoError(t, err)

	rec := w.Record()
	assert.Equal(t, []float64{-2, 3, -2, 2, 0, 2}, rec.Bounds.Extents)
	assert.Equal(t, []float64{1, 0, 0}, rec.Blocks[0].Color)
	assert.Equal(t, []float64{-1.5, -1.5, 0.5}, rec.Start)

	back, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, w.Blocks(), back.Blocks())
	assert.Equal(t, rec, back.Record())
}

func TestFromRecord_OptionalFields(t *testing.T) {
	w, err := FromRecord(Record{
		Bounds: BoundsRecord{Extents: []float64{0, 1, 0, 1, 0, 1}},
		Blocks: []BlockRecord{{Extents: []float64{0.2, 0.4, 0.2, 0.4, 0, 1}}},
	})
	require.NoError(t, err)

	assert.Nil(t, w.Blocks()[0].Color)
	_, ok := w.Goal()
	assert.False(t, ok)
}

func TestFromRecord_Invalid(t *testing.T) {
	bounds := BoundsRecord{Extents: []float64{0, 1, 0, 1, 0, 1}}

	_, err := FromRecord(Record{Bounds: BoundsRecord{Extents: []float64{0, 1}}})
	assert.ErrorIs(t, err, ErrInvalidExtents)

	_, err = FromRecord(Record{Bounds: bounds, Blocks: []BlockRecord{{Extents: []float64{1, 0, 0, 1, 0, 1}}}})
	assert.ErrorIs(t, err, ErrInvalidExtents)

	_, err = FromRecord(Record{Bounds: bounds, Blocks: []BlockRecord{{Extents: []float64{0, 1, 0, 1, 0, 1}, Color: []float64{1, 0}}}})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = FromRecord(Record{Bounds: bounds, Start: []float64{0, 0}})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestWorld_BlocksAreCopies(t *testing.T) {
	w, err := GridForest(1, 1, 1, 1, 1)
	require.NoError(t, err)

	blocks := w.Blocks()
	blocks[0].Extents.XMax = 100
	blocks[0].Color[1] = 1

	assert.Equal(t, 1.0, w.Blocks()[0].Extents.XMax)
	assert.Equal(t, Red, *w.Blocks()[0].Color)
}
