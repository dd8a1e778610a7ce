package world

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/r3"
)

// MinStartGoalSeparation is the straight-line distance a random goal must exceed from the start
const MinStartGoalSeparation = 3.0

// BlockParams parameterizes RandomBlock and FixedBlock
type BlockParams struct {
	Lower       r3.Vector // min corner of the world
	Upper       r3.Vector // max corner of the world
	BlockWidth  float64   // square cross section along x and y
	BlockHeight float64   // extent along z
	NumBlocks   int
	RobotRadius float64
	Margin      float64
}

// Clearance is the distance start and goal keep from every obstacle surface
func (p BlockParams) Clearance() float64 {
	return p.RobotRadius + p.Margin
}

// MinSeparation is the center-to-center distance kept between any two blocks. It takes
// the block's full xy diagonal twice, so it is conservative rather than exact.
func (p BlockParams) MinSeparation() float64 {
	w := p.BlockWidth
	return 2*math.Sqrt(2*w*w) + 2*p.RobotRadius + 2*p.Margin
}

// Validate checks the parameters leave every sampling range non-empty
func (p BlockParams) Validate() error {
	if !finite(p.Lower) || !finite(p.Upper) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidParams)
	}
	if p.Lower.X >= p.Upper.X || p.Lower.Y >= p.Upper.Y || p.Lower.Z >= p.Upper.Z {
		return fmt.Errorf("%w: lower %v must be below upper %v", ErrInvalidParams, p.Lower, p.Upper)
	}
	if !(p.BlockWidth > 0) || !(p.BlockHeight > 0) {
		return fmt.Errorf("%w: block size %vx%v", ErrInvalidParams, p.BlockWidth, p.BlockHeight)
	}
	if p.NumBlocks < 1 || p.NumBlocks > MaxBlocks {
		return fmt.Errorf("%w: need between 1 and %d blocks, got %d", ErrInvalidParams, MaxBlocks, p.NumBlocks)
	}
	if !(p.RobotRadius >= 0) || !(p.Margin >= 0) {
		return fmt.Errorf("%w: robot radius %v and margin %v must not be negative", ErrInvalidParams, p.RobotRadius, p.Margin)
	}

	size := p.Upper.Sub(p.Lower)
	if size.X < p.BlockWidth || size.Y < p.BlockWidth || size.Z < p.BlockHeight {
		return fmt.Errorf("%w: block %vx%v does not fit in %v", ErrInvalidParams, p.BlockWidth, p.BlockHeight, size)
	}
	c := 2 * p.Clearance()
	if size.X <= c || size.Y <= c || size.Z <= c {
		return fmt.Errorf("%w: clearance %v leaves no room for start and goal in %v", ErrInvalidParams, p.Clearance(), size)
	}
	return nil
}

// RandomBlock places non-crowding blocks of equal size inside the bounds, then picks a
// start and a goal that keep the robot clearance from every block and lie more than
// MinStartGoalSeparation apart. Every placement gives up after MaxAttempts draws with a
// *GenerationError.
func (g *Generator) RandomBlock(params BlockParams) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	maxAttempts := g.maxAttempts()
	g.logf("🧱 Generating %d random blocks (%.2f x %.2f)...", params.NumBlocks, params.BlockWidth, params.BlockHeight)

	bounds := Extents{
		XMin: params.Lower.X, XMax: params.Upper.X,
		YMin: params.Lower.Y, YMax: params.Upper.Y,
		ZMin: params.Lower.Z, ZMax: params.Upper.Z,
	}

	minSep := params.MinSeparation()
	prealloc := params.NumBlocks
	if prealloc > maxAttempts {
		prealloc = maxAttempts
	}
	blocks := make([]Block, 0, prealloc)
	centers := make([]r3.Vector, 0, prealloc)
	totalAttempts := 0

	for len(blocks) < params.NumBlocks {
		placed := false
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			totalAttempts++
			ext := g.blockExtents(params)
			center := ext.Center()
			if tooClose(center, centers, minSep) {
				continue
			}
			blocks = append(blocks, redBlock(ext))
			centers = append(centers, center)
			placed = true
			break
		}
		if !placed {
			g.logf("   ⚠️  Gave up on block %d after %d attempts", len(blocks), maxAttempts)
			return nil, &GenerationError{Stage: "block", Index: len(blocks), Attempts: maxAttempts}
		}
	}

	obstacles, err := New(bounds, blocks)
	if err != nil {
		return nil, err
	}

	clearance := params.Clearance()
	start, ok := g.samplePoint(obstacles, params, func(p r3.Vector, d float64) bool {
		return d > clearance
	})
	if !ok {
		g.logf("   ⚠️  No start point after %d attempts", maxAttempts)
		return nil, &GenerationError{Stage: "start", Attempts: maxAttempts}
	}

	goal, ok := g.samplePoint(obstacles, params, func(p r3.Vector, d float64) bool {
		return d > clearance && p.Distance(start) > MinStartGoalSeparation
	})
	if !ok {
		g.logf("   ⚠️  No goal point after %d attempts", maxAttempts)
		return nil, &GenerationError{Stage: "goal", Attempts: maxAttempts}
	}

	obstacles.start = &start
	obstacles.goal = &goal

	g.logf("   ✅ Placed %d blocks in %d draws, start %.2f,%.2f,%.2f goal %.2f,%.2f,%.2f (%s)",
		len(blocks), totalAttempts, start.X, start.Y, start.Z, goal.X, goal.Y, goal.Z,
		time.Since(startTime).Round(time.Microsecond))
	return obstacles, nil
}

// blockExtents draws a block center that keeps the whole block inside the bounds.
// Extents are rounded to two decimals before the block is tested, so the stored
// geometry is what satisfies the separation.
func (g *Generator) blockExtents(p BlockParams) Extents {
	w, h := p.BlockWidth, p.BlockHeight
	x := g.uniform(p.Lower.X+w/2, p.Upper.X-w/2)
	y := g.uniform(p.Lower.Y+w/2, p.Upper.Y-w/2)
	z := g.uniform(p.Lower.Z+h/2, p.Upper.Z-h/2)
	return Extents{
		XMin: round2(x - w/2), XMax: round2(x + w/2),
		YMin: round2(y - w/2), YMax: round2(y + w/2),
		ZMin: round2(z - h/2), ZMax: round2(z + h/2),
	}
}

func tooClose(c r3.Vector, centers []r3.Vector, minSep float64) bool {
	for _, o := range centers {
		if c.Distance(o) < minSep {
			return true
		}
	}
	return false
}

// samplePoint draws points inside the bounds shrunk by the clearance until accept holds
// for the point and its nearest-obstacle distance
func (g *Generator) samplePoint(w *World, p BlockParams, accept func(r3.Vector, float64) bool) (r3.Vector, bool) {
	c := p.Clearance()
	for attempt := 0; attempt < g.maxAttempts(); attempt++ {
		pt := r3.Vector{
			X: g.uniform(p.Lower.X+c, p.Upper.X-c),
			Y: g.uniform(p.Lower.Y+c, p.Upper.Y-c),
			Z: g.uniform(p.Lower.Z+c, p.Upper.Z-c),
		}
		if _, d := w.ClosestPoint(pt); accept(pt, d) {
			return pt, true
		}
	}
	return r3.Vector{}, false
}
