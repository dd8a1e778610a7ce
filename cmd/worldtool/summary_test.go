package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motion-world/internal/config"
	"motion-world/world"
	"motion-world/worldio"
)

func TestParsePath(t *testing.T) {
	path, err := parsePath(" 0,0,0; 1, 2.5 ,3 ")
	require.NoError(t, err)
	assert.Equal(t, []r3.Vector{{}, {X: 1, Y: 2.5, Z: 3}}, path)

	for _, bad := range []string{"", "1,2", "1,2,x", "0,0,0;"} {
		_, err := parsePath(bad)
		assert.ErrorIs(t, err, world.ErrInvalidPath, bad)
	}
}

func TestPrintSummary(t *testing.T) {
	w, err := world.GridForest(1, 2, 1, 1, 0.5)
	require.NoError(t, err)

	var buf bytes.Buffer
	printSummary(&buf, w)
	out := buf.String()
	assert.Contains(t, out, "Blocks: 2")
	assert.Contains(t, out, "1 overlapping block pairs")
	assert.Contains(t, out, "0 <-> 1")
	assert.NotContains(t, out, "Start:")
}

func TestGenerateAction(t *testing.T) {
	out := filepath.Join(t.TempDir(), "world.msgpack")
	gc := config.DefaultGenerator()
	gc.Kind = config.KindFixedBlock

	require.NoError(t, generateAction(gc, out))

	w, err := worldio.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 4, w.NumBlocks())
	goal, ok := w.Goal()
	require.True(t, ok)
	assert.Equal(t, r3.Vector{X: 2, Y: 0, Z: 1.5}, goal)
}
