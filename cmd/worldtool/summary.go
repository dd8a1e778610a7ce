package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"motion-world/world"
)

// parsePath reads waypoints written as "x,y,z;x,y,z;..."
func parsePath(s string) ([]r3.Vector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: no waypoints given", world.ErrInvalidPath)
	}
	var path []r3.Vector
	for i, wp := range strings.Split(s, ";") {
		parts := strings.Split(wp, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: waypoint %d %q needs 3 coordinates", world.ErrInvalidPath, i, wp)
		}
		var xyz [3]float64
		for j, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: waypoint %d: %v", world.ErrInvalidPath, i, err)
			}
			xyz[j] = v
		}
		path = append(path, r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	return path, nil
}

func printSummary(out io.Writer, w *world.World) {
	b := w.Bounds()
	fmt.Fprintln(out, "========================================")
	fmt.Fprintf(out, "Bounds: [%.2f, %.2f] x [%.2f, %.2f] x [%.2f, %.2f]\n",
		b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax)
	fmt.Fprintf(out, "Blocks: %d\n", w.NumBlocks())
	for i, blk := range w.Blocks() {
		fmt.Fprintf(out, "  %3d  %v", i, blk.Extents.Slice())
		if blk.Color != nil {
			fmt.Fprintf(out, "  color %v", *blk.Color)
		}
		fmt.Fprintln(out)
	}
	if p, ok := w.Start(); ok {
		fmt.Fprintf(out, "Start:  (%.2f, %.2f, %.2f)\n", p.X, p.Y, p.Z)
	}
	if p, ok := w.Goal(); ok {
		fmt.Fprintf(out, "Goal:   (%.2f, %.2f, %.2f)\n", p.X, p.Y, p.Z)
	}

	overlaps := w.OverlappingBlocks()
	if len(overlaps) == 0 {
		fmt.Fprintln(out, "✅ No overlapping blocks")
	} else {
		fmt.Fprintf(out, "ℹ️  %d overlapping block pairs\n", len(overlaps))
		for _, pair := range overlaps {
			fmt.Fprintf(out, "     %d <-> %d\n", pair[0], pair[1])
		}
	}
	fmt.Fprintln(out, "========================================")
}
